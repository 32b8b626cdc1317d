package repositories

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/tracklite/database"
	"github.com/tracklite/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database. The pool is pinned
// to a single connection because every SQLite :memory: connection is its own
// database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, name string) models.Project {
	t.Helper()
	project := models.Project{Name: name}
	require.NoError(t, db.Create(&project).Error)
	return project
}

type issueSeed struct {
	Title    string
	Priority models.IssuePriority
	Status   models.IssueStatus
	Assignee string
	Tags     []string
}

func seedIssue(t *testing.T, db *gorm.DB, projectID string, seed issueSeed) models.Issue {
	t.Helper()
	if seed.Priority == "" {
		seed.Priority = models.PriorityMedium
	}
	if seed.Status == "" {
		seed.Status = models.StatusOpen
	}
	issue := models.Issue{
		ProjectID: projectID,
		Title:     seed.Title,
		Priority:  seed.Priority,
		Status:    seed.Status,
		Assignee:  seed.Assignee,
	}
	require.NoError(t, db.Omit("Tags").Create(&issue).Error)
	if len(seed.Tags) > 0 {
		tags, err := NewTagRepository(db).GetOrCreate(seed.Tags)
		require.NoError(t, err)
		require.NoError(t, db.Model(&issue).Association("Tags").Replace(&tags))
		issue.Tags = tags
	}
	return issue
}

func tagCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	return count
}
