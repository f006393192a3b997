package models

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalTask is one organizational sign-off routed through a sequential
// chain of approvers. Only the current approver may act on a pending task;
// a task is terminal once accepted at the last level or rejected at any.
type ApprovalTask struct {
	BaseModel
	ApprovalType      ApprovalType   `json:"approval_type" gorm:"type:varchar(50);not null;index" validate:"required"`
	ProjectID         *uuid.UUID     `json:"project_id,omitempty" gorm:"type:uuid;index"`
	GroupID           *uuid.UUID     `json:"group_id,omitempty" gorm:"type:uuid;index"`
	RequestedByID     uuid.UUID      `json:"requested_by_id" gorm:"type:uuid;not null;index" validate:"required"`
	CurrentApproverID *uuid.UUID     `json:"current_approver_id,omitempty" gorm:"type:uuid;index"`
	Level             int            `json:"level" gorm:"not null;default:1"`
	Status            ApprovalStatus `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	Comments          string         `json:"comments" gorm:"type:text"`
	ApprovedAt        *time.Time     `json:"approved_at,omitempty"`

	// Relationships
	Project         *Project      `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Group           *OfficialGroup `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	RequestedBy     User          `json:"requested_by,omitempty" gorm:"foreignKey:RequestedByID"`
	CurrentApprover *User         `json:"current_approver,omitempty" gorm:"foreignKey:CurrentApproverID"`
}

// TableName returns the table name for ApprovalTask
func (ApprovalTask) TableName() string {
	return "approval_tasks"
}

// IsTerminal reports whether the task accepts no further decisions
func (t *ApprovalTask) IsTerminal() bool {
	return t.Status.IsTerminal()
}
