package dto

import (
	"time"

	"github.com/tracklite/models"
)

// CreateProjectRequest represents the request payload for creating a new project
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// ProjectResponse represents the standard response format for a project
type ProjectResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	IssueCount int64     `json:"issueCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ProjectListResponse represents paginated project list response
type ProjectListResponse struct {
	Projects   []models.Project `json:"projects"`
	TotalCount int64            `json:"totalCount"`
	Skip       int              `json:"skip"`
	Limit      int              `json:"limit"`
}
