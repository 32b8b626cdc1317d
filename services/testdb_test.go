package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/tracklite/database"
	"github.com/tracklite/models"
	"github.com/tracklite/repositories"
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

type serviceHarness struct {
	db          *gorm.DB
	projects    *ProjectService
	issues      *IssueService
	tags        *TagService
	suggestions *SuggestionService
}

func newHarness(t *testing.T) *serviceHarness {
	t.Helper()
	db := newTestDB(t)
	projectRepo := repositories.NewProjectRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	suggestions := NewSuggestionService(issueRepo, statsRepo)
	return &serviceHarness{
		db:          db,
		projects:    NewProjectService(projectRepo),
		issues:      NewIssueService(db, projectRepo, issueRepo, tagRepo, suggestions),
		tags:        NewTagService(tagRepo),
		suggestions: suggestions,
	}
}

func (h *serviceHarness) seedProject(t *testing.T, name string) models.Project {
	t.Helper()
	project := models.Project{Name: name}
	require.NoError(t, h.db.Create(&project).Error)
	return project
}

type issueSeed struct {
	Title    string
	Priority models.IssuePriority
	Status   models.IssueStatus
	Assignee string
	Tags     []string
}

func (h *serviceHarness) seedIssue(t *testing.T, projectID string, seed issueSeed) models.Issue {
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
	require.NoError(t, h.db.Omit("Tags").Create(&issue).Error)
	if len(seed.Tags) > 0 {
		tags, err := repositories.NewTagRepository(h.db).GetOrCreate(seed.Tags)
		require.NoError(t, err)
		require.NoError(t, h.db.Model(&issue).Association("Tags").Replace(&tags))
		issue.Tags = tags
	}
	return issue
}
