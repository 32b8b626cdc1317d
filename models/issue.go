package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssuePriority represents how urgent an issue is
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
)

// Valid reports whether the priority is one of the enumerated values.
func (p IssuePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// IssueStatus represents the lifecycle state of an issue
type IssueStatus string

const (
	StatusOpen       IssueStatus = "open"
	StatusInProgress IssueStatus = "in_progress"
	StatusClosed     IssueStatus = "closed"
)

// Valid reports whether the status is one of the enumerated values.
func (s IssueStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Issue represents a tracked bug or task inside a project.
//
// UpdatedAt stays NULL until the first mutation; gorm's automatic update
// tracking is disabled so creation does not populate it. Every update path
// in the repositories sets it explicitly.
type Issue struct {
	ID          string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID   string        `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Title       string        `json:"title" gorm:"type:varchar(100);not null"`
	Description string        `json:"description"`
	Log         string        `json:"log"`
	Summary     string        `json:"summary"`
	Priority    IssuePriority `json:"priority" gorm:"type:varchar(10);not null;check:priority IN ('low','medium','high')"`
	Status      IssueStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open';check:status IN ('open','in_progress','closed')"`
	Assignee    string        `json:"assignee" gorm:"index"` // "" means unassigned
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   *time.Time    `json:"updatedAt" gorm:"autoUpdateTime:false;autoCreateTime:false"`

	// Relations
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Tags    []Tag   `json:"tags,omitempty" gorm:"many2many:issue_tags;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the surrogate ID.
func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// TagNames returns the names of the issue's loaded tags in link order.
func (i *Issue) TagNames() []string {
	names := make([]string, 0, len(i.Tags))
	for _, tag := range i.Tags {
		names = append(names, tag.Name)
	}
	return names
}
