package repositories

import (
	"errors"
	"fmt"

	"github.com/tracklite/errs"
	"github.com/tracklite/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindAll retrieves projects ordered by creation time with pagination.
func (r *ProjectRepository) FindAll(skip, limit int) ([]models.Project, int64, error) {
	var total int64
	query := r.db.Model(&models.Project{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.Order("created_at, id").Offset(skip).Limit(limit).Find(&projects).Error
	return projects, total, err
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(id string) (models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, errs.NewNotFound(fmt.Sprintf("project %q not found", id))
	}
	return project, err
}

// NameTaken reports whether a project name is already in use, compared
// case-insensitively. The unique index on name stays case-sensitive; this
// check is the application-level tightening.
func (r *ProjectRepository) NameTaken(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error
	return count > 0, err
}

// Exists checks if a project exists.
func (r *ProjectRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(project *models.Project) error {
	err := r.db.Create(project).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewAlreadyExists(fmt.Sprintf("project name %q already in use", project.Name))
	}
	return err
}

// Delete removes a project, cascading over its issues and their tag links.
// Tag rows are left in place, possibly orphaned. The datastore-level CASCADE
// constraints cover the same ground; the explicit statements keep the
// behavior identical on databases where the constraints are not enforced.
func (r *ProjectRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound(fmt.Sprintf("project %q not found", id))
			}
			return err
		}
		if err := tx.Exec(
			"DELETE FROM issue_tags WHERE issue_id IN (SELECT id FROM issues WHERE project_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Issue{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}

// CountIssues counts the issues owned by a project.
func (r *ProjectRepository) CountIssues(id string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Issue{}).Where("project_id = ?", id).Count(&count).Error
	return count, err
}
