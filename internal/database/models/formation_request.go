package models

import (
	"time"

	"github.com/google/uuid"
)

// Roster bounds enforced at request-creation time
const (
	MaxStudents      = 5
	MaxSupervisors   = 3
	MaxCoSupervisors = 2
)

// GroupFormationRequest is the aggregate root of a formation attempt. It is
// terminal once fully confirmed (an OfficialGroup exists) or once any
// participant has rejected.
type GroupFormationRequest struct {
	BaseModel
	GroupName        string     `json:"group_name" gorm:"not null;size:255" validate:"required,max=255"`
	CreatorID        uuid.UUID  `json:"creator_id" gorm:"type:uuid;not null;index" validate:"required"`
	DepartmentID     uuid.UUID  `json:"department_id" gorm:"type:uuid;not null;index" validate:"required"`
	CollegeID        uuid.UUID  `json:"college_id" gorm:"type:uuid;not null;index" validate:"required"`
	ProjectID        *uuid.UUID `json:"project_id,omitempty" gorm:"type:uuid;index"`
	Note             string     `json:"note" gorm:"type:text"`
	IsFullyConfirmed bool       `json:"is_fully_confirmed" gorm:"not null;default:false"`

	// Relationships
	Creator      User          `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Department   Department    `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	College      College       `json:"college,omitempty" gorm:"foreignKey:CollegeID"`
	Project      *Project      `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GroupFormationRequest
func (GroupFormationRequest) TableName() string {
	return "group_formation_requests"
}

// AllAccepted reports whether every participant has accepted
func (r *GroupFormationRequest) AllAccepted() bool {
	if len(r.Participants) == 0 {
		return false
	}
	for _, p := range r.Participants {
		if p.Status != ParticipantStatusAccepted {
			return false
		}
	}
	return true
}

// HasRejection reports whether any participant has rejected
func (r *GroupFormationRequest) HasRejection() bool {
	for _, p := range r.Participants {
		if p.Status == ParticipantStatusRejected {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the request accepts no further responses
func (r *GroupFormationRequest) IsTerminal() bool {
	return r.IsFullyConfirmed || r.HasRejection()
}

// FindParticipant returns the participant row for the given user, if any
func (r *GroupFormationRequest) FindParticipant(userID uuid.UUID) *Participant {
	for i := range r.Participants {
		if r.Participants[i].UserID == userID {
			return &r.Participants[i]
		}
	}
	return nil
}

// Participant is one invited individual's acceptance state within a
// formation request. The creator's own row is created pre-accepted.
type Participant struct {
	BaseModel
	RequestID   uuid.UUID         `json:"request_id" gorm:"type:uuid;not null;uniqueIndex:idx_request_participant,composite:user_id" validate:"required"`
	UserID      uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_request_participant,composite:request_id;index" validate:"required"`
	Role        ParticipantRole   `json:"role" gorm:"type:varchar(50);not null" validate:"required"`
	Status      ParticipantStatus `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	RespondedAt *time.Time        `json:"responded_at,omitempty"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for Participant
func (Participant) TableName() string {
	return "participants"
}
