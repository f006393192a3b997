package models

import (
	"github.com/google/uuid"
)

// OfficialGroup is the materialized outcome of a finalized formation request.
// At most one group is ever created per request.
type OfficialGroup struct {
	BaseModel
	GroupName    string     `json:"group_name" gorm:"not null;size:255" validate:"required,max=255"`
	RequestID    uuid.UUID  `json:"request_id" gorm:"type:uuid;not null;uniqueIndex" validate:"required"`
	DepartmentID uuid.UUID  `json:"department_id" gorm:"type:uuid;not null;index" validate:"required"`
	ProjectID    *uuid.UUID `json:"project_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Department  Department        `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Project     *Project          `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Members     []GroupMember     `json:"members,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Supervisors []GroupSupervisor `json:"supervisors,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for OfficialGroup
func (OfficialGroup) TableName() string {
	return "official_groups"
}

// MemberUserIDs returns the member user ids as a flat list
func (g *OfficialGroup) MemberUserIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}

// GroupMember links a student to an official group. The unique index on
// user_id is the storage-level backstop for system-wide membership
// exclusivity; the authoritative check runs inside finalize's transaction.
type GroupMember struct {
	BaseModel
	GroupID uuid.UUID `json:"group_id" gorm:"type:uuid;not null;index" validate:"required"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex" validate:"required"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for GroupMember
func (GroupMember) TableName() string {
	return "group_members"
}

// GroupSupervisor links a supervisor or co-supervisor to an official group
type GroupSupervisor struct {
	BaseModel
	GroupID uuid.UUID      `json:"group_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_supervisor,composite:user_id" validate:"required"`
	UserID  uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_supervisor,composite:group_id" validate:"required"`
	Type    SupervisorType `json:"type" gorm:"type:varchar(50);not null;default:'supervisor'"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for GroupSupervisor
func (GroupSupervisor) TableName() string {
	return "group_supervisors"
}
