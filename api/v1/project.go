package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/services"
)

// ProjectController handles project-related API endpoints
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// RegisterRoutes registers project routes
func (ctl *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", ctl.ListProjects)
		projects.POST("", ctl.CreateProject)
		projects.GET("/:id", ctl.GetProject)
		projects.DELETE("/:id", ctl.DeleteProject)
	}
}

// ListProjects retrieves projects with pagination
func (ctl *ProjectController) ListProjects(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	response, err := ctl.projectService.ListProjects(skip, limit)
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": response})
}

// CreateProject creates a new project
func (ctl *ProjectController) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body", "error": err.Error()})
		return
	}

	project, err := ctl.projectService.CreateProject(req)
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": project})
}

// GetProject retrieves a project by ID
func (ctl *ProjectController) GetProject(c *gin.Context) {
	project, err := ctl.projectService.GetProject(c.Param("id"))
	if err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": project})
}

// DeleteProject removes a project and all of its issues
func (ctl *ProjectController) DeleteProject(c *gin.Context) {
	if err := ctl.projectService.DeleteProject(c.Param("id")); err != nil {
		c.JSON(errs.StatusCode(err), gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Project deleted"})
}
