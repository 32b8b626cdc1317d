package main

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tracklite/dto"
)

var (
	issueProject     string
	issueDescription string
	issueLog         string
	issueSummary     string
	issuePriority    string
	issueStatus      string
	issueAssignee    string
	issueTags        []string
	issueAutoTags    bool
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Manage issues",
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if issueProject != "" {
			query.Set("projectId", issueProject)
		}
		if issuePriority != "" {
			query.Set("priority", issuePriority)
		}
		if issueStatus != "" {
			query.Set("status", issueStatus)
		}
		if issueAssignee != "" {
			query.Set("assignee", issueAssignee)
		}
		if len(issueTags) > 0 {
			query.Set("tags", strings.Join(issueTags, ","))
		}

		path := "/issues"
		if encoded := query.Encode(); encoded != "" {
			path += "?" + encoded
		}
		var out struct {
			Data dto.IssueListResponse `json:"data"`
		}
		if err := newClient().do("GET", path, nil, &out); err != nil {
			return err
		}
		return printJSON(out.Data)
	},
}

var issueCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.CreateIssueRequest{
			ProjectID:   issueProject,
			Title:       args[0],
			Description: issueDescription,
			Log:         issueLog,
			Summary:     issueSummary,
			Priority:    issuePriority,
			Status:      issueStatus,
			Assignee:    issueAssignee,
			Tags:        issueTags,
			AutoTags:    issueAutoTags,
		}
		var out struct {
			Data interface{} `json:"data"`
		}
		if err := newClient().do("POST", "/issues", req, &out); err != nil {
			return err
		}
		return printJSON(out.Data)
	},
}

var issueAssignCmd = &cobra.Command{
	Use:   "auto-assign <id>",
	Short: "Run the assignee suggestion engine for an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out struct {
			Data dto.AutoAssignResponse `json:"data"`
		}
		if err := newClient().do("POST", "/issues/"+args[0]+"/auto-assign", nil, &out); err != nil {
			return err
		}
		return printJSON(out.Data)
	},
}

var issueDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().do("DELETE", "/issues/"+args[0], nil, nil)
	},
}

func init() {
	issueListCmd.Flags().StringVar(&issueProject, "project", "", "Filter by project ID")
	issueListCmd.Flags().StringVar(&issuePriority, "priority", "", "Filter by priority")
	issueListCmd.Flags().StringVar(&issueStatus, "status", "", "Filter by status")
	issueListCmd.Flags().StringVar(&issueAssignee, "assignee", "", "Filter by assignee")
	issueListCmd.Flags().StringSliceVar(&issueTags, "tag", nil, "Filter by tag (repeatable)")

	issueCreateCmd.Flags().StringVar(&issueProject, "project", "", "Project ID (required)")
	issueCreateCmd.Flags().StringVar(&issueDescription, "description", "", "Issue description")
	issueCreateCmd.Flags().StringVar(&issueLog, "log", "", "Attached log text")
	issueCreateCmd.Flags().StringVar(&issueSummary, "summary", "", "Issue summary")
	issueCreateCmd.Flags().StringVar(&issuePriority, "priority", "medium", "Priority: low, medium, high")
	issueCreateCmd.Flags().StringVar(&issueStatus, "status", "", "Status: open, in_progress, closed")
	issueCreateCmd.Flags().StringVar(&issueAssignee, "assignee", "", "Assignee identifier")
	issueCreateCmd.Flags().StringSliceVar(&issueTags, "tag", nil, "Tag name (repeatable)")
	issueCreateCmd.Flags().BoolVar(&issueAutoTags, "auto-tags", false, "Augment tags with the keyword heuristic")
	_ = issueCreateCmd.MarkFlagRequired("project")

	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issueCreateCmd)
	issueCmd.AddCommand(issueAssignCmd)
	issueCmd.AddCommand(issueDeleteCmd)
}
