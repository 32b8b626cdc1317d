package services

import (
	"sort"
	"strings"

	"github.com/tracklite/models"
	"github.com/tracklite/repositories"
	"github.com/tracklite/utils"
)

// Suggester is the capability interface for the tracker's two automation
// heuristics. Implementations are swappable variants; the HTTP layer and the
// issue service depend on this interface, not on a concrete engine.
type Suggester interface {
	// GenerateTags proposes tag names from the issue's free-text fields.
	GenerateTags(title, description, log string) []string
	// SuggestAssignee proposes an assignee for the given tag/status/priority
	// combination, or "" when no candidate qualifies. "" is a normal
	// outcome, not an error.
	SuggestAssignee(tags []string, status models.IssueStatus, priority models.IssuePriority) (string, error)
	// AutoAssign runs SuggestAssignee for an issue's own state and persists
	// the result. Returns whether an assignment was made and to whom.
	AutoAssign(issueID string) (bool, string, error)
}

// tagKeywords maps tag categories to the keywords that trigger them.
// Matching is substring-based over the concatenated lowercased text, so
// "building" matches the "ui" keyword. Category order is fixed to keep the
// output deterministic.
var tagKeywords = []struct {
	tag      string
	keywords []string
}{
	{"bug", []string{"error", "bug", "fail", "crash", "broken", "issue"}},
	{"frontend", []string{"ui", "frontend", "interface", "button", "form", "page"}},
	{"backend", []string{"backend", "server", "api", "database", "db"}},
	{"performance", []string{"slow", "performance", "timeout", "lag"}},
}

// workloadPenalty is subtracted from a candidate's mean success rate for
// each currently open issue on their plate.
const workloadPenalty = 10.0

// SuggestionService implements Suggester on top of the stats aggregation
// queries and the issue repository.
type SuggestionService struct {
	issueRepo *repositories.IssueRepository
	statsRepo *repositories.StatsRepository
}

var _ Suggester = (*SuggestionService)(nil)

// NewSuggestionService creates a new suggestion service instance
func NewSuggestionService(issueRepo *repositories.IssueRepository, statsRepo *repositories.StatsRepository) *SuggestionService {
	return &SuggestionService{issueRepo: issueRepo, statsRepo: statsRepo}
}

// GenerateTags classifies the concatenated text fields against the fixed
// keyword lists. Each category contributes its tag at most once regardless
// of how many of its keywords match.
func (s *SuggestionService) GenerateTags(title, description, log string) []string {
	text := strings.ToLower(title + " " + description + " " + log)

	tags := make([]string, 0, len(tagKeywords))
	for _, category := range tagKeywords {
		for _, keyword := range category.keywords {
			if strings.Contains(text, keyword) {
				tags = append(tags, category.tag)
				break
			}
		}
	}
	return tags
}

// SuggestAssignee scores every assignee with history on at least one of the
// given tags and returns the best. The engine only activates for open,
// high-priority issues; anything else is not auto-triaged.
//
// Per candidate: for each input tag with total > 0, success rate is
// 100*resolved/total; pairs with zero total are skipped, not counted as
// zero. A candidate with no qualifying tag is excluded. The raw score is the
// mean of the qualifying rates minus workloadPenalty per open issue.
// Candidates are evaluated in lexicographic order, so on an exact score tie
// the lexicographically smallest assignee wins.
func (s *SuggestionService) SuggestAssignee(tags []string, status models.IssueStatus, priority models.IssuePriority) (string, error) {
	if status != models.StatusOpen || priority != models.PriorityHigh {
		return "", nil
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if n := utils.NormalizeTagName(tag); n != "" {
			names = append(names, n)
		}
	}
	names = utils.DedupeNormalized(names)
	if len(names) == 0 {
		return "", nil
	}

	stats, err := s.statsRepo.TagStats(names)
	if err != nil {
		return "", err
	}
	if len(stats) == 0 {
		return "", nil
	}
	workloads, err := s.statsRepo.Workloads()
	if err != nil {
		return "", err
	}

	candidates := make([]string, 0, len(stats))
	for assignee := range stats {
		candidates = append(candidates, assignee)
	}
	sort.Strings(candidates)

	best := ""
	bestScore := 0.0
	for _, assignee := range candidates {
		var rateSum float64
		rated := 0
		for _, tag := range names {
			stat, ok := stats[assignee][tag]
			if !ok || stat.Total == 0 {
				continue
			}
			rateSum += 100 * float64(stat.Resolved) / float64(stat.Total)
			rated++
		}
		if rated == 0 {
			continue
		}
		score := rateSum/float64(rated) - workloadPenalty*float64(workloads[assignee])
		if best == "" || score > bestScore {
			best = assignee
			bestScore = score
		}
	}
	return best, nil
}

// AutoAssign loads the issue, runs the suggestion for its own tags, status
// and priority, and persists the assignee when one is suggested. This is the
// single suggestion operation with a side effect; concurrent calls on the
// same issue are last-writer-wins.
func (s *SuggestionService) AutoAssign(issueID string) (bool, string, error) {
	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		return false, "", err
	}

	assignee, err := s.SuggestAssignee(issue.TagNames(), issue.Status, issue.Priority)
	if err != nil {
		return false, "", err
	}
	if assignee == "" {
		return false, "", nil
	}

	if err := s.issueRepo.SetAssignee(issue.ID, assignee); err != nil {
		return false, "", err
	}
	return true, assignee, nil
}
