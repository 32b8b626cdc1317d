package main

import (
	"github.com/spf13/cobra"
	"github.com/tracklite/dto"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags with their issue usage counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out struct {
			Data []dto.TagUsage `json:"data"`
		}
		if err := newClient().do("GET", "/tags", nil, &out); err != nil {
			return err
		}
		return printJSON(out.Data)
	},
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a tag everywhere, merging when the new name exists",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.RenameTagRequest{OldName: args[0], NewName: args[1]}
		return newClient().do("POST", "/tags/rename", req, nil)
	},
}

var tagCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove orphaned tags (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out struct {
			Data dto.CleanupTagsResponse `json:"data"`
		}
		if err := newClient().do("POST", "/tags/cleanup", nil, &out); err != nil {
			return err
		}
		return printJSON(out.Data)
	},
}

func init() {
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagRenameCmd)
	tagCmd.AddCommand(tagCleanupCmd)
}
