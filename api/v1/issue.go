package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/services"
)

// IssueController handles issue-related API endpoints
type IssueController struct {
	issueService *services.IssueService
	suggester    services.Suggester
}

// NewIssueController creates a new issue controller
func NewIssueController(issueService *services.IssueService, suggester services.Suggester) *IssueController {
	return &IssueController{issueService: issueService, suggester: suggester}
}

// RegisterRoutes registers issue routes
func (ctl *IssueController) RegisterRoutes(router *gin.RouterGroup) {
	issues := router.Group("/issues")
	{
		issues.GET("", ctl.ListIssues)
		issues.POST("", ctl.CreateIssue)
		issues.POST("/suggest-tags", ctl.SuggestTags)
		issues.GET("/:id", ctl.GetIssue)
		issues.PATCH("/:id", ctl.UpdateIssue)
		issues.DELETE("/:id", ctl.DeleteIssue)
		issues.POST("/:id/auto-assign", ctl.AutoAssign)
	}
}

// ListIssues retrieves issues matching the query filters
func (ctl *IssueController) ListIssues(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := dto.IssueFilter{
		Skip:         skip,
		Limit:        limit,
		TagsMatchAll: c.Query("tagsMatchAll") == "true",
	}
	if v, ok := c.GetQuery("assignee"); ok {
		filter.Assignee = &v
	}
	if v, ok := c.GetQuery("priority"); ok {
		filter.Priority = &v
	}
	if v, ok := c.GetQuery("status"); ok {
		filter.Status = &v
	}
	if v, ok := c.GetQuery("title"); ok {
		filter.Title = &v
	}
	if v, ok := c.GetQuery("projectId"); ok {
		filter.ProjectID = &v
	}
	if v, ok := c.GetQuery("tags"); ok && v != "" {
		filter.Tags = strings.Split(v, ",")
	}

	response, err := ctl.issueService.ListIssues(filter)
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": response})
}

// CreateIssue creates a new issue
func (ctl *IssueController) CreateIssue(c *gin.Context) {
	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body", "error": err.Error()})
		return
	}

	issue, err := ctl.issueService.CreateIssue(req)
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": issue})
}

// GetIssue retrieves an issue by ID
func (ctl *IssueController) GetIssue(c *gin.Context) {
	issue, err := ctl.issueService.GetIssue(c.Param("id"))
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": issue})
}

// UpdateIssue applies a partial update; only fields present in the body change
func (ctl *IssueController) UpdateIssue(c *gin.Context) {
	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body", "error": err.Error()})
		return
	}

	issue, err := ctl.issueService.UpdateIssue(c.Param("id"), req)
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": issue})
}

// DeleteIssue removes an issue
func (ctl *IssueController) DeleteIssue(c *gin.Context) {
	if err := ctl.issueService.DeleteIssue(c.Param("id")); err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Issue deleted"})
}

// AutoAssign runs the assignee suggestion engine for the issue and persists
// the result when a candidate qualifies
func (ctl *IssueController) AutoAssign(c *gin.Context) {
	response, err := ctl.issueService.AutoAssign(c.Param("id"))
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": response})
}

// SuggestTags runs the keyword heuristic over the submitted text fields
func (ctl *IssueController) SuggestTags(c *gin.Context) {
	var req dto.SuggestTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body", "error": err.Error()})
		return
	}

	tags := ctl.suggester.GenerateTags(req.Title, req.Description, req.Log)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.SuggestTagsResponse{Tags: tags}})
}
