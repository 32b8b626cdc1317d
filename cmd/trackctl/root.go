package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	authToken string
)

var rootCmd = &cobra.Command{
	Use:   "trackctl",
	Short: "Command-line client for the Tracklite issue tracker",
	Long: `trackctl talks to a running Tracklite API server.

The server address comes from --server or the TRACKCTL_SERVER environment
variable; the auth token from --token or TRACKCTL_TOKEN.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("TRACKCTL_SERVER", "http://localhost:8080"), "Tracklite server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("TRACKCTL_TOKEN"), "Bearer token for authenticated endpoints")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(tagCmd)
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
