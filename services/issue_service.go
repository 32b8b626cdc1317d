package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/tracklite/dto"
	"github.com/tracklite/errs"
	"github.com/tracklite/models"
	"github.com/tracklite/repositories"
	"gorm.io/gorm"
)

const (
	maxTitleLength   = 100
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// IssueService handles business logic for issues: validation, tag
// resolution, duplicate detection and partial updates.
type IssueService struct {
	db          *gorm.DB
	projectRepo *repositories.ProjectRepository
	issueRepo   *repositories.IssueRepository
	tagRepo     *repositories.TagRepository
	suggester   Suggester
}

// NewIssueService creates a new issue service instance
func NewIssueService(
	db *gorm.DB,
	projectRepo *repositories.ProjectRepository,
	issueRepo *repositories.IssueRepository,
	tagRepo *repositories.TagRepository,
	suggester Suggester,
) *IssueService {
	return &IssueService{
		db:          db,
		projectRepo: projectRepo,
		issueRepo:   issueRepo,
		tagRepo:     tagRepo,
		suggester:   suggester,
	}
}

func validateTitle(title string) error {
	if length := utf8.RuneCountInString(title); length < 1 || length > maxTitleLength {
		return errs.NewInvalidInput(fmt.Sprintf("title must be 1-%d characters, got %d", maxTitleLength, length))
	}
	return nil
}

// CreateIssue validates the request, resolves tags (optionally augmented by
// the keyword heuristic), rejects per-project duplicates and persists the
// issue. Everything runs in one transaction.
func (s *IssueService) CreateIssue(req dto.CreateIssueRequest) (models.Issue, error) {
	if err := validateTitle(req.Title); err != nil {
		return models.Issue{}, err
	}
	priority := models.IssuePriority(req.Priority)
	if !priority.Valid() {
		return models.Issue{}, errs.NewInvalidInput(fmt.Sprintf("priority %q is not one of low, medium, high", req.Priority))
	}
	status := models.StatusOpen
	if req.Status != "" {
		status = models.IssueStatus(req.Status)
		if !status.Valid() {
			return models.Issue{}, errs.NewInvalidInput(fmt.Sprintf("status %q is not one of open, in_progress, closed", req.Status))
		}
	}

	exists, err := s.projectRepo.Exists(req.ProjectID)
	if err != nil {
		return models.Issue{}, err
	}
	if !exists {
		return models.Issue{}, errs.NewNotFound(fmt.Sprintf("project %q not found", req.ProjectID))
	}

	tagNames := req.Tags
	if req.AutoTags {
		tagNames = append(tagNames, s.suggester.GenerateTags(req.Title, req.Description, req.Log)...)
	}

	issue := models.Issue{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Log:         req.Log,
		Summary:     req.Summary,
		Priority:    priority,
		Status:      status,
		Assignee:    req.Assignee,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		tagRepo := s.tagRepo.WithTx(tx)
		issueRepo := s.issueRepo.WithTx(tx)

		tags, err := tagRepo.GetOrCreate(tagNames)
		if err != nil {
			return err
		}
		tagIDs := make([]string, 0, len(tags))
		for _, tag := range tags {
			tagIDs = append(tagIDs, tag.ID)
		}

		duplicate, err := issueRepo.HasDuplicate(issue, tagIDs, "")
		if err != nil {
			return err
		}
		if duplicate {
			return errs.NewAlreadyExists("an identical issue already exists in this project")
		}

		if err := issueRepo.Create(&issue); err != nil {
			return err
		}
		if err := tx.Model(&issue).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		issue.Tags = tags
		return nil
	})
	if err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

// GetIssue retrieves an issue with its tags.
func (s *IssueService) GetIssue(id string) (models.Issue, error) {
	return s.issueRepo.FindByID(id)
}

// UpdateIssue applies a partial update: only fields present in the payload
// change. The prospective state is validated and checked against the
// per-project duplicate rule (excluding the issue itself) before anything is
// written, and updated_at is stamped on every effective mutation.
func (s *IssueService) UpdateIssue(id string, req dto.UpdateIssueRequest) (models.Issue, error) {
	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		return models.Issue{}, err
	}

	patched := issue
	fields := make(map[string]interface{})

	if req.Title.Set {
		if !req.Title.Valid {
			return models.Issue{}, errs.NewInvalidInput("title cannot be null")
		}
		patched.Title = req.Title.Value
		fields["title"] = patched.Title
	}
	if req.Description.Set {
		patched.Description = req.Description.Value // null clears
		fields["description"] = patched.Description
	}
	if req.Log.Set {
		patched.Log = req.Log.Value
		fields["log"] = patched.Log
	}
	if req.Summary.Set {
		patched.Summary = req.Summary.Value
		fields["summary"] = patched.Summary
	}
	if req.Priority.Set {
		if !req.Priority.Valid {
			return models.Issue{}, errs.NewInvalidInput("priority cannot be null")
		}
		patched.Priority = models.IssuePriority(req.Priority.Value)
		fields["priority"] = patched.Priority
	}
	if req.Status.Set {
		if !req.Status.Valid {
			return models.Issue{}, errs.NewInvalidInput("status cannot be null")
		}
		patched.Status = models.IssueStatus(req.Status.Value)
		fields["status"] = patched.Status
	}
	if req.Assignee.Set {
		patched.Assignee = req.Assignee.Value // null unassigns
		fields["assignee"] = patched.Assignee
	}

	if err := validateTitle(patched.Title); err != nil {
		return models.Issue{}, err
	}
	if !patched.Priority.Valid() {
		return models.Issue{}, errs.NewInvalidInput(fmt.Sprintf("priority %q is not one of low, medium, high", patched.Priority))
	}
	if !patched.Status.Valid() {
		return models.Issue{}, errs.NewInvalidInput(fmt.Sprintf("status %q is not one of open, in_progress, closed", patched.Status))
	}

	if len(fields) == 0 && !req.Tags.Set {
		return issue, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		tagRepo := s.tagRepo.WithTx(tx)
		issueRepo := s.issueRepo.WithTx(tx)

		var tags []models.Tag
		if req.Tags.Set {
			var targetNames []string
			if req.Tags.Valid {
				targetNames = req.Tags.Value
			}
			tags, err = tagRepo.GetOrCreate(targetNames)
			if err != nil {
				return err
			}
		} else {
			tags = issue.Tags
		}
		tagIDs := make([]string, 0, len(tags))
		for _, tag := range tags {
			tagIDs = append(tagIDs, tag.ID)
		}

		duplicate, err := issueRepo.HasDuplicate(patched, tagIDs, issue.ID)
		if err != nil {
			return err
		}
		if duplicate {
			return errs.NewAlreadyExists("an identical issue already exists in this project")
		}

		if err := issueRepo.Update(&patched, fields); err != nil {
			return err
		}
		if req.Tags.Set {
			if err := tx.Model(&patched).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}
		patched.Tags = tags
		return nil
	})
	if err != nil {
		return models.Issue{}, err
	}
	return patched, nil
}

// DeleteIssue removes an issue and its tag links.
func (s *IssueService) DeleteIssue(id string) error {
	return s.issueRepo.Delete(id)
}

// ListIssues lists issues matching the filter. A filter on a nonexistent
// project is NotFound rather than an empty result.
func (s *IssueService) ListIssues(filter dto.IssueFilter) (dto.IssueListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Priority != nil && !models.IssuePriority(*filter.Priority).Valid() {
		return dto.IssueListResponse{}, errs.NewInvalidInput(fmt.Sprintf("priority %q is not one of low, medium, high", *filter.Priority))
	}
	if filter.Status != nil && !models.IssueStatus(*filter.Status).Valid() {
		return dto.IssueListResponse{}, errs.NewInvalidInput(fmt.Sprintf("status %q is not one of open, in_progress, closed", *filter.Status))
	}

	if filter.ProjectID != nil {
		exists, err := s.projectRepo.Exists(*filter.ProjectID)
		if err != nil {
			return dto.IssueListResponse{}, err
		}
		if !exists {
			return dto.IssueListResponse{}, errs.NewNotFound(fmt.Sprintf("project %q not found", *filter.ProjectID))
		}
	}

	issues, total, err := s.issueRepo.FindWithFilter(filter)
	if err != nil {
		return dto.IssueListResponse{}, err
	}
	return dto.IssueListResponse{
		Issues:     issues,
		TotalCount: total,
		Skip:       filter.Skip,
		Limit:      filter.Limit,
	}, nil
}

// AutoAssign delegates to the suggestion engine.
func (s *IssueService) AutoAssign(issueID string) (dto.AutoAssignResponse, error) {
	assigned, assignee, err := s.suggester.AutoAssign(issueID)
	if err != nil {
		return dto.AutoAssignResponse{}, err
	}
	return dto.AutoAssignResponse{Assigned: assigned, Assignee: assignee}, nil
}
