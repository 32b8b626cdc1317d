package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/tracklite/middleware"
	"github.com/tracklite/repositories"
	"github.com/tracklite/services"
	"gorm.io/gorm"
)

// RegisterRoutes wires repositories, services and controllers onto the v1
// API group. Dependencies are constructed here and passed down explicitly;
// nothing lives in package globals.
func RegisterRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	projectRepo := repositories.NewProjectRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	statsRepo := repositories.NewStatsRepository(db)
	userRepo := repositories.NewUserRepository(db)

	suggestionService := services.NewSuggestionService(issueRepo, statsRepo)
	projectService := services.NewProjectService(projectRepo)
	issueService := services.NewIssueService(db, projectRepo, issueRepo, tagRepo, suggestionService)
	tagService := services.NewTagService(tagRepo)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	NewAuthController(authService).RegisterRoutes(router)

	// Tracker endpoints - protected by AuthMiddleware
	authRouter := router.Group("")
	authRouter.Use(middleware.AuthMiddleware(authService))
	NewProjectController(projectService).RegisterRoutes(authRouter)
	NewIssueController(issueService, suggestionService).RegisterRoutes(authRouter)
	NewTagController(tagService).RegisterRoutes(authRouter)
}
