package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/models"
)

func TestCreateProject(t *testing.T) {
	t.Run("trims the name", func(t *testing.T) {
		h := newHarness(t)

		project, err := h.projects.CreateProject(dto.CreateProjectRequest{Name: "  Tracker  "})
		require.NoError(t, err)
		assert.Equal(t, "Tracker", project.Name)
		assert.NotEmpty(t, project.ID)
	})

	t.Run("blank name is InvalidInput", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.projects.CreateProject(dto.CreateProjectRequest{Name: "   "})
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})

	t.Run("name conflicts are case-insensitive", func(t *testing.T) {
		h := newHarness(t)
		h.seedProject(t, "Tracker")

		_, err := h.projects.CreateProject(dto.CreateProjectRequest{Name: "tracker"})
		require.Error(t, err)
		assert.True(t, errs.IsAlreadyExists(err))
	})
}

func TestGetProject(t *testing.T) {
	h := newHarness(t)
	project := h.seedProject(t, "alpha")
	h.seedIssue(t, project.ID, issueSeed{Title: "one"})
	h.seedIssue(t, project.ID, issueSeed{Title: "two"})

	resp, err := h.projects.GetProject(project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, resp.ID)
	assert.EqualValues(t, 2, resp.IssueCount)

	_, err = h.projects.GetProject("no-such-id")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteProject(t *testing.T) {
	h := newHarness(t)
	project := h.seedProject(t, "alpha")
	h.seedIssue(t, project.ID, issueSeed{Title: "one", Tags: []string{"bug"}})

	require.NoError(t, h.projects.DeleteProject(project.ID))

	var issueCount int64
	require.NoError(t, h.db.Model(&models.Issue{}).Count(&issueCount).Error)
	assert.EqualValues(t, 0, issueCount)

	// The tag survives as an orphan until cleanup.
	stats, err := h.tags.UsageStats()
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "bug", stats[0].TagName)
	assert.EqualValues(t, 0, stats[0].IssueCount)

	cleaned, err := h.tags.Cleanup()
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleaned.Removed)

	require.Error(t, h.projects.DeleteProject(project.ID))
}
