package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracklite/errs"
	"github.com/tracklite/models"
)

func TestGenerateTags(t *testing.T) {
	h := newHarness(t)

	cases := []struct {
		name        string
		title       string
		description string
		log         string
		want        []string
	}{
		{
			name:  "no keywords",
			title: "general question about licensing",
			want:  []string{},
		},
		{
			name:  "single category",
			title: "login crash on submit",
			want:  []string{"bug"},
		},
		{
			name:        "multiple categories in fixed order",
			title:       "slow page load",
			description: "the api call behind the form times out",
			want:        []string{"frontend", "backend", "performance"},
		},
		{
			name: "log field is scanned too",
			log:  "panic: database connection refused",
			want: []string{"backend"},
		},
		{
			name:  "matching is case-insensitive",
			title: "ERROR in BUTTON handler",
			want:  []string{"bug", "frontend"},
		},
		{
			name:  "substring matches count",
			title: "rebuilding the guide",
			want:  []string{"frontend"}, // "guide" contains "ui"
		},
		{
			name:  "each category appears once",
			title: "error error bug crash broken",
			want:  []string{"bug"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := h.suggestions.GenerateTags(tc.title, tc.description, tc.log)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSuggestAssigneePolicyGate(t *testing.T) {
	h := newHarness(t)
	project := h.seedProject(t, "alpha")
	h.seedIssue(t, project.ID, issueSeed{Title: "history", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})

	cases := []struct {
		name     string
		tags     []string
		status   models.IssueStatus
		priority models.IssuePriority
	}{
		{"not open", []string{"bug"}, models.StatusClosed, models.PriorityHigh},
		{"in progress", []string{"bug"}, models.StatusInProgress, models.PriorityHigh},
		{"not high priority", []string{"bug"}, models.StatusOpen, models.PriorityMedium},
		{"no tags", nil, models.StatusOpen, models.PriorityHigh},
		{"only blank tags", []string{"   "}, models.StatusOpen, models.PriorityHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assignee, err := h.suggestions.SuggestAssignee(tc.tags, tc.status, tc.priority)
			require.NoError(t, err)
			assert.Equal(t, "", assignee)
		})
	}
}

func TestSuggestAssigneeScoring(t *testing.T) {
	t.Run("higher success rate wins", func(t *testing.T) {
		h := newHarness(t)
		project := h.seedProject(t, "alpha")
		// ann resolved 2/2 bug issues, bob 1/2.
		h.seedIssue(t, project.ID, issueSeed{Title: "a1", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})
		h.seedIssue(t, project.ID, issueSeed{Title: "a2", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})
		h.seedIssue(t, project.ID, issueSeed{Title: "b1", Status: models.StatusClosed, Assignee: "bob", Tags: []string{"bug"}})
		h.seedIssue(t, project.ID, issueSeed{Title: "b2", Status: models.StatusClosed, Assignee: "bob", Tags: []string{"ui"}})
		h.seedIssue(t, project.ID, issueSeed{Title: "b3", Assignee: "bob", Tags: []string{"bug"}})

		assignee, err := h.suggestions.SuggestAssignee([]string{"bug"}, models.StatusOpen, models.PriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, "ann", assignee)
	})

	t.Run("open workload drags the score down", func(t *testing.T) {
		h := newHarness(t)
		project := h.seedProject(t, "alpha")
		// ann: 100% on bug but buried under open work. bob: 50% and free.
		h.seedIssue(t, project.ID, issueSeed{Title: "a1", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})
		for i := 0; i < 6; i++ {
			h.seedIssue(t, project.ID, issueSeed{Title: string(rune('c' + i)), Assignee: "ann"})
		}
		h.seedIssue(t, project.ID, issueSeed{Title: "b1", Status: models.StatusClosed, Assignee: "bob", Tags: []string{"bug"}})
		h.seedIssue(t, project.ID, issueSeed{Title: "b2", Status: models.StatusClosed, Assignee: "bob", Tags: []string{"bug", "ui"}})
		h.seedIssue(t, project.ID, issueSeed{Title: "b3", Status: models.StatusClosed, Assignee: "bob", Tags: []string{"ui"}})
		// bob still needs sub-100% history on bug.
		h.seedIssue(t, project.ID, issueSeed{Title: "b4", Status: models.StatusInProgress, Assignee: "bob", Tags: []string{"bug"}})

		// ann: 100 - 10*6 = 40. bob: (2/3)*100 - 10*1 = 56.67.
		assignee, err := h.suggestions.SuggestAssignee([]string{"bug"}, models.StatusOpen, models.PriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, "bob", assignee)
	})

	t.Run("rate is averaged only over tags with history", func(t *testing.T) {
		h := newHarness(t)
		project := h.seedProject(t, "alpha")
		h.seedIssue(t, project.ID, issueSeed{Title: "a1", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})

		// "performance" has no history at all; it must not dilute ann's rate.
		assignee, err := h.suggestions.SuggestAssignee([]string{"bug", "performance"}, models.StatusOpen, models.PriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, "ann", assignee)
	})

	t.Run("exact ties go to the lexicographically smallest assignee", func(t *testing.T) {
		h := newHarness(t)
		project := h.seedProject(t, "alpha")
		h.seedIssue(t, project.ID, issueSeed{Title: "z1", Status: models.StatusClosed, Assignee: "zoe", Tags: []string{"bug"}})
		h.seedIssue(t, project.ID, issueSeed{Title: "a1", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})

		assignee, err := h.suggestions.SuggestAssignee([]string{"bug"}, models.StatusOpen, models.PriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, "ann", assignee)
	})

	t.Run("candidate tags are normalized before lookup", func(t *testing.T) {
		h := newHarness(t)
		project := h.seedProject(t, "alpha")
		h.seedIssue(t, project.ID, issueSeed{Title: "a1", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})

		assignee, err := h.suggestions.SuggestAssignee([]string{"  BUG  "}, models.StatusOpen, models.PriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, "ann", assignee)
	})

	t.Run("no history at all yields no suggestion", func(t *testing.T) {
		h := newHarness(t)

		assignee, err := h.suggestions.SuggestAssignee([]string{"bug"}, models.StatusOpen, models.PriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, "", assignee)
	})

	t.Run("a negative score still beats no candidate", func(t *testing.T) {
		h := newHarness(t)
		project := h.seedProject(t, "alpha")
		// ann: 0/1 resolved plus an open pile, score well below zero.
		h.seedIssue(t, project.ID, issueSeed{Title: "a1", Status: models.StatusInProgress, Assignee: "ann", Tags: []string{"bug"}})

		assignee, err := h.suggestions.SuggestAssignee([]string{"bug"}, models.StatusOpen, models.PriorityHigh)
		require.NoError(t, err)
		assert.Equal(t, "ann", assignee)
	})
}

func TestAutoAssign(t *testing.T) {
	t.Run("persists the suggested assignee", func(t *testing.T) {
		h := newHarness(t)
		project := h.seedProject(t, "alpha")
		h.seedIssue(t, project.ID, issueSeed{Title: "history", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})
		target := h.seedIssue(t, project.ID, issueSeed{Title: "new crash", Priority: models.PriorityHigh, Tags: []string{"bug"}})

		assigned, assignee, err := h.suggestions.AutoAssign(target.ID)
		require.NoError(t, err)
		assert.True(t, assigned)
		assert.Equal(t, "ann", assignee)

		reloaded, err := h.issues.GetIssue(target.ID)
		require.NoError(t, err)
		assert.Equal(t, "ann", reloaded.Assignee)
		require.NotNil(t, reloaded.UpdatedAt)
	})

	t.Run("non-qualifying issue is left untouched", func(t *testing.T) {
		h := newHarness(t)
		project := h.seedProject(t, "alpha")
		h.seedIssue(t, project.ID, issueSeed{Title: "history", Status: models.StatusClosed, Assignee: "ann", Tags: []string{"bug"}})
		target := h.seedIssue(t, project.ID, issueSeed{Title: "minor", Priority: models.PriorityLow, Tags: []string{"bug"}})

		assigned, assignee, err := h.suggestions.AutoAssign(target.ID)
		require.NoError(t, err)
		assert.False(t, assigned)
		assert.Equal(t, "", assignee)

		reloaded, err := h.issues.GetIssue(target.ID)
		require.NoError(t, err)
		assert.Equal(t, "", reloaded.Assignee)
		assert.Nil(t, reloaded.UpdatedAt)
	})

	t.Run("unknown issue is NotFound", func(t *testing.T) {
		h := newHarness(t)

		_, _, err := h.suggestions.AutoAssign("no-such-id")
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}
