package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/models"
	"github.com/tracklite/utils"
	"gorm.io/gorm"
)

// IssueRepository handles database operations for issues, including the
// per-project duplicate detection and the conjunctive list filter.
type IssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository instance
func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *IssueRepository) WithTx(tx *gorm.DB) *IssueRepository {
	return &IssueRepository{db: tx}
}

// FindByID retrieves an issue with its tags loaded.
func (r *IssueRepository) FindByID(id string) (models.Issue, error) {
	var issue models.Issue
	err := r.db.Preload("Tags").First(&issue, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Issue{}, errs.NewNotFound(fmt.Sprintf("issue %q not found", id))
	}
	return issue, err
}

// Create inserts a new issue row. Tag links are handled separately through
// the tag repository so both share the caller's transaction.
func (r *IssueRepository) Create(issue *models.Issue) error {
	return r.db.Omit("Tags").Create(issue).Error
}

// Update persists the given column values and stamps updated_at. The issue
// struct is refreshed with the new timestamp.
func (r *IssueRepository) Update(issue *models.Issue, fields map[string]interface{}) error {
	now := time.Now()
	fields["updated_at"] = now
	if err := r.db.Model(&models.Issue{}).Where("id = ?", issue.ID).Updates(fields).Error; err != nil {
		return err
	}
	issue.UpdatedAt = &now
	return nil
}

// Delete removes an issue and its tag links. Tag rows stay behind, possibly
// orphaned.
func (r *IssueRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM issue_tags WHERE issue_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Issue{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound(fmt.Sprintf("issue %q not found", id))
		}
		return nil
	})
}

// HasDuplicate reports whether another issue in the same project carries an
// identical field tuple and an identical tag set. excludeID skips the issue
// being updated so saving an issue unchanged is not a conflict.
func (r *IssueRepository) HasDuplicate(issue models.Issue, tagIDs []string, excludeID string) (bool, error) {
	query := r.db.Preload("Tags").Where(
		"project_id = ? AND title = ? AND description = ? AND log = ? AND summary = ? AND priority = ? AND status = ? AND assignee = ?",
		issue.ProjectID, issue.Title, issue.Description, issue.Log, issue.Summary,
		issue.Priority, issue.Status, issue.Assignee,
	)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var candidates []models.Issue
	if err := query.Find(&candidates).Error; err != nil {
		return false, err
	}

	want := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		want[id] = true
	}
	for _, candidate := range candidates {
		if len(candidate.Tags) != len(want) {
			continue
		}
		match := true
		for _, tag := range candidate.Tags {
			if !want[tag.ID] {
				match = false
				break
			}
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// FindWithFilter lists issues matching the conjunctive filter, ordered by
// creation time, with skip/limit applied after filtering. Field filters are
// exact-match; tag filters match on normalized names, either any-of or
// all-of depending on TagsMatchAll. A tag filter entry that normalizes to ""
// is InvalidInput.
func (r *IssueRepository) FindWithFilter(filter dto.IssueFilter) ([]models.Issue, int64, error) {
	query := r.db.Model(&models.Issue{})

	if filter.ProjectID != nil {
		query = query.Where("issues.project_id = ?", *filter.ProjectID)
	}
	if filter.Assignee != nil {
		query = query.Where("issues.assignee = ?", *filter.Assignee)
	}
	if filter.Priority != nil {
		query = query.Where("issues.priority = ?", *filter.Priority)
	}
	if filter.Status != nil {
		query = query.Where("issues.status = ?", *filter.Status)
	}
	if filter.Title != nil {
		query = query.Where("issues.title = ?", *filter.Title)
	}

	if len(filter.Tags) > 0 {
		names := make([]string, 0, len(filter.Tags))
		for _, name := range filter.Tags {
			n := utils.NormalizeTagName(name)
			if n == "" {
				return nil, 0, errs.NewInvalidInput(fmt.Sprintf("tag filter %q is empty after normalization", name))
			}
			names = append(names, n)
		}
		names = utils.DedupeNormalized(names)
		linked := r.db.Table("issue_tags it").
			Select("it.issue_id").
			Joins("JOIN tags t ON t.id = it.tag_id").
			Where("t.name IN ?", names)
		if filter.TagsMatchAll {
			linked = linked.Group("it.issue_id").Having("COUNT(DISTINCT t.name) = ?", len(names))
		}
		query = query.Where("issues.id IN (?)", linked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []models.Issue
	err := query.
		Preload("Tags").
		Order("issues.created_at, issues.id").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&issues).Error
	return issues, total, err
}

// SetAssignee writes the assignee and stamps updated_at. Used by auto-assign;
// concurrent calls on the same issue are last-writer-wins.
func (r *IssueRepository) SetAssignee(id, assignee string) error {
	return r.db.Model(&models.Issue{}).Where("id = ?", id).Updates(map[string]interface{}{
		"assignee":   assignee,
		"updated_at": time.Now(),
	}).Error
}
