package repositories

import (
	"errors"
	"fmt"

	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/models"
	"github.com/tracklite/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository handles database operations for tags: get-or-create,
// rename-with-merge, orphan cleanup and usage statistics.
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository {
	return &TagRepository{db: tx}
}

// GetOrCreate resolves the given free-text names to tag rows, creating the
// ones that do not exist yet. Names are normalized first; a name that
// normalizes to "" is a hard InvalidInput error and nothing is created.
// The result preserves the input order of first occurrence and holds exactly
// one entry per distinct normalized name.
func (r *TagRepository) GetOrCreate(names []string) ([]models.Tag, error) {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		n := utils.NormalizeTagName(name)
		if n == "" {
			return nil, errs.NewInvalidInput(fmt.Sprintf("tag name %q is empty after normalization", name))
		}
		normalized = append(normalized, n)
	}
	normalized = utils.DedupeNormalized(normalized)

	tags := make([]models.Tag, 0, len(normalized))
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range normalized {
			tag, err := getOrCreateOne(tx, name)
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// getOrCreateOne resolves a single normalized name. A concurrent insert of
// the same name loses against the unique index on tags.name; the loser
// re-reads the winner's row instead of failing. The insert skips on conflict
// rather than erroring, since a unique violation would abort the enclosing
// postgres transaction and poison the re-read.
func getOrCreateOne(tx *gorm.DB, name string) (models.Tag, error) {
	var tag models.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tag{}, err
	}

	tag = models.Tag{Name: name}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tag)
	if result.Error != nil {
		return models.Tag{}, result.Error
	}
	if result.RowsAffected == 0 {
		var existing models.Tag
		if err := tx.Where("name = ?", name).First(&existing).Error; err != nil {
			return models.Tag{}, err
		}
		return existing, nil
	}
	return tag, nil
}

// ReplaceIssueTags sets the issue's tag links to exactly the set resolved
// from names, applying both additions and removals. Tag rows are never
// deleted here, even when a previously linked tag becomes orphaned.
func (r *TagRepository) ReplaceIssueTags(issue *models.Issue, names []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := r.WithTx(tx).GetOrCreate(names)
		if err != nil {
			return err
		}
		if err := tx.Model(issue).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		issue.Tags = tags
		return nil
	})
}

// FindByName retrieves a tag by its normalized name.
func (r *TagRepository) FindByName(name string) (models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", utils.NormalizeTagName(name)).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tag{}, errs.NewNotFound(fmt.Sprintf("tag %q not found", name))
	}
	return tag, err
}

// RenameEverywhere renames the tag matching oldName to newName. When a tag
// already exists under the new normalized name the two identities merge:
// every issue linked to the old tag is re-linked to the surviving tag and
// the old row is deleted. Renaming a tag to its own normalized name is a
// no-op. The whole operation runs in one transaction so readers never
// observe the intermediate link state.
func (r *TagRepository) RenameEverywhere(oldName, newName string) error {
	oldNorm := utils.NormalizeTagName(oldName)
	newNorm := utils.NormalizeTagName(newName)
	if oldNorm == "" || newNorm == "" {
		return errs.NewInvalidInput("tag name is empty after normalization")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var oldTag models.Tag
		if err := tx.Where("name = ?", oldNorm).First(&oldTag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound(fmt.Sprintf("tag %q not found", oldName))
			}
			return err
		}

		if oldNorm == newNorm {
			return nil
		}

		var newTag models.Tag
		err := tx.Where("name = ?", newNorm).First(&newTag).Error
		switch {
		case err == nil:
			// Merge. Drop links that would become duplicates, re-point the
			// rest, then remove the old tag row.
			if err := tx.Exec(
				"DELETE FROM issue_tags WHERE tag_id = ? AND issue_id IN (SELECT issue_id FROM issue_tags WHERE tag_id = ?)",
				oldTag.ID, newTag.ID,
			).Error; err != nil {
				return err
			}
			if err := tx.Exec(
				"UPDATE issue_tags SET tag_id = ? WHERE tag_id = ?",
				newTag.ID, oldTag.ID,
			).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Tag{}, "id = ?", oldTag.ID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Plain rename, identity and links preserved.
			return tx.Model(&oldTag).Update("name", newNorm).Error
		default:
			return err
		}
	})
}

// RemoveOrphans deletes every tag with zero linked issues and returns the
// number removed. The scan and delete share one transaction so a tag that
// gains a link concurrently is not swept away.
func (r *TagRepository) RemoveOrphans() (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Exec("DELETE FROM tags WHERE id NOT IN (SELECT tag_id FROM issue_tags)")
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	return removed, err
}

// UsageStats returns one row per existing tag with the count of distinct
// linked issues. Orphaned tags appear with a zero count.
func (r *TagRepository) UsageStats() ([]dto.TagUsage, error) {
	var stats []dto.TagUsage
	err := r.db.Raw(`
		SELECT t.name AS tag_name, COUNT(DISTINCT it.issue_id) AS issue_count
		FROM tags t
		LEFT JOIN issue_tags it ON it.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY t.name`).Scan(&stats).Error
	return stats, err
}
