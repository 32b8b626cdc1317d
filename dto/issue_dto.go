package dto

import (
	"github.com/tracklite/models"
)

// CreateIssueRequest represents the request payload for creating an issue.
// Status defaults to open and Priority is required. When AutoTags is set the
// keyword heuristic augments the supplied tag list.
type CreateIssueRequest struct {
	ProjectID   string   `json:"projectId" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Log         string   `json:"log"`
	Summary     string   `json:"summary"`
	Priority    string   `json:"priority" binding:"required"`
	Status      string   `json:"status"`
	Assignee    string   `json:"assignee"`
	Tags        []string `json:"tags"`
	AutoTags    bool     `json:"autoTags"`
}

// UpdateIssueRequest is a partial-update payload: only fields present in the
// JSON body are applied. A field provided as null resets it to its zero
// value (e.g. clearing the assignee).
type UpdateIssueRequest struct {
	Title       Optional[string]   `json:"title"`
	Description Optional[string]   `json:"description"`
	Log         Optional[string]   `json:"log"`
	Summary     Optional[string]   `json:"summary"`
	Priority    Optional[string]   `json:"priority"`
	Status      Optional[string]   `json:"status"`
	Assignee    Optional[string]   `json:"assignee"`
	Tags        Optional[[]string] `json:"tags"`
}

// IssueFilter represents the conjunctive filter set for listing issues.
// Pointer fields distinguish "not filtered" from "filtered by zero value".
type IssueFilter struct {
	Skip         int
	Limit        int
	Assignee     *string
	Priority     *string
	Status       *string
	Title        *string
	ProjectID    *string
	Tags         []string
	TagsMatchAll bool
}

// IssueListResponse represents paginated issue list response
type IssueListResponse struct {
	Issues     []models.Issue `json:"issues"`
	TotalCount int64          `json:"totalCount"`
	Skip       int            `json:"skip"`
	Limit      int            `json:"limit"`
}

// SuggestTagsRequest carries the free-text fields the keyword heuristic
// classifies.
type SuggestTagsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Log         string `json:"log"`
}

// SuggestTagsResponse lists the suggested tag names in category order.
type SuggestTagsResponse struct {
	Tags []string `json:"tags"`
}

// AutoAssignResponse reports whether the suggestion engine assigned anyone.
type AutoAssignResponse struct {
	Assigned bool   `json:"assigned"`
	Assignee string `json:"assignee,omitempty"`
}
