package services

import (
	"fmt"
	"strings"

	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/models"
	"github.com/tracklite/repositories"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo *repositories.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProject creates a new project. Name uniqueness is checked
// case-insensitively here on top of the case-sensitive unique index.
func (s *ProjectService) CreateProject(req dto.CreateProjectRequest) (models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Project{}, errs.NewInvalidInput("project name cannot be empty")
	}

	taken, err := s.projectRepo.NameTaken(name)
	if err != nil {
		return models.Project{}, err
	}
	if taken {
		return models.Project{}, errs.NewAlreadyExists(fmt.Sprintf("project name %q already in use", name))
	}

	project := models.Project{Name: name}
	if err := s.projectRepo.Create(&project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// GetProject retrieves a project with its issue count.
func (s *ProjectService) GetProject(id string) (dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return dto.ProjectResponse{}, err
	}
	count, err := s.projectRepo.CountIssues(id)
	if err != nil {
		return dto.ProjectResponse{}, err
	}
	return dto.ProjectResponse{
		ID:         project.ID,
		Name:       project.Name,
		IssueCount: count,
		CreatedAt:  project.CreatedAt,
	}, nil
}

// ListProjects retrieves projects with pagination.
func (s *ProjectService) ListProjects(skip, limit int) (dto.ProjectListResponse, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if skip < 0 {
		skip = 0
	}

	projects, total, err := s.projectRepo.FindAll(skip, limit)
	if err != nil {
		return dto.ProjectListResponse{}, err
	}
	return dto.ProjectListResponse{
		Projects:   projects,
		TotalCount: total,
		Skip:       skip,
		Limit:      limit,
	}, nil
}

// DeleteProject removes a project and cascades over its issues. Tag rows are
// never deleted here.
func (s *ProjectService) DeleteProject(id string) error {
	return s.projectRepo.Delete(id)
}
