package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a label applied to issues. Name always holds the normalized form
// and the unique index guarantees at most one row per normalized name, which
// is what resolves concurrent get-or-create races.
type Tag struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	// Relations
	Issues []Issue `json:"issues,omitempty" gorm:"many2many:issue_tags;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the surrogate ID.
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
