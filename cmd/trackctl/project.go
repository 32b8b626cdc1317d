package main

import (
	"github.com/spf13/cobra"
	"github.com/tracklite/dto"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out struct {
			Data dto.ProjectListResponse `json:"data"`
		}
		if err := newClient().do("GET", "/projects", nil, &out); err != nil {
			return err
		}
		return printJSON(out.Data)
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out struct {
			Data interface{} `json:"data"`
		}
		req := dto.CreateProjectRequest{Name: args[0]}
		if err := newClient().do("POST", "/projects", req, &out); err != nil {
			return err
		}
		return printJSON(out.Data)
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project and all of its issues",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().do("DELETE", "/projects/"+args[0], nil, nil)
	},
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}
