package dto

// RenameTagRequest renames a tag everywhere, merging into the target tag
// when it already exists.
type RenameTagRequest struct {
	OldName string `json:"oldName" binding:"required"`
	NewName string `json:"newName" binding:"required"`
}

// TagUsage is one row of the tag usage statistics: a tag and how many
// distinct issues carry it. Orphaned tags appear with IssueCount zero.
type TagUsage struct {
	TagName    string `json:"tagName"`
	IssueCount int64  `json:"issueCount"`
}

// CleanupTagsResponse reports how many orphaned tags were removed.
type CleanupTagsResponse struct {
	Removed int64 `json:"removed"`
}
