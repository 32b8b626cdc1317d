package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/middleware"
	"github.com/tracklite/services"
)

// TagController handles tag-related API endpoints
type TagController struct {
	tagService *services.TagService
}

// NewTagController creates a new tag controller
func NewTagController(tagService *services.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// RegisterRoutes registers tag routes. Orphan cleanup is destructive and
// gated behind the admin role.
func (ctl *TagController) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", ctl.ListTags)
		tags.POST("/rename", ctl.RenameTag)
		tags.POST("/cleanup", middleware.AdminMiddleware(), ctl.CleanupTags)
	}
}

// ListTags returns every tag with its issue usage count
func (ctl *TagController) ListTags(c *gin.Context) {
	stats, err := ctl.tagService.UsageStats()
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": stats})
}

// RenameTag renames a tag everywhere, merging into an existing tag when the
// target name is already in use
func (ctl *TagController) RenameTag(c *gin.Context) {
	var req dto.RenameTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body", "error": err.Error()})
		return
	}

	if err := ctl.tagService.Rename(req); err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Tag renamed"})
}

// CleanupTags removes orphaned tags
func (ctl *TagController) CleanupTags(c *gin.Context) {
	response, err := ctl.tagService.Cleanup()
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": response})
}
