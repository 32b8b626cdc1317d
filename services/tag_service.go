package services

import (
	"github.com/tracklite/dto"
	"github.com/tracklite/repositories"
)

// TagService exposes the tag lifecycle operations to the API layer.
type TagService struct {
	tagRepo *repositories.TagRepository
}

// NewTagService creates a new tag service instance
func NewTagService(tagRepo *repositories.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// UsageStats lists every tag with its distinct issue count.
func (s *TagService) UsageStats() ([]dto.TagUsage, error) {
	return s.tagRepo.UsageStats()
}

// Rename renames a tag everywhere it is used, merging into an existing tag
// of the same normalized name.
func (s *TagService) Rename(req dto.RenameTagRequest) error {
	return s.tagRepo.RenameEverywhere(req.OldName, req.NewName)
}

// Cleanup removes all orphaned tags and reports the count.
func (s *TagService) Cleanup() (dto.CleanupTagsResponse, error) {
	removed, err := s.tagRepo.RemoveOrphans()
	if err != nil {
		return dto.CleanupTagsResponse{}, err
	}
	return dto.CleanupTagsResponse{Removed: removed}, nil
}
