package models

import (
	"github.com/google/uuid"
)

// Project represents a graduation project proposed by a group
type Project struct {
	BaseModel
	Title        string       `json:"title" gorm:"not null;size:500" validate:"required,max=500"`
	Type         string       `json:"type" gorm:"not null;size:100" validate:"required,max=100"`
	Description  string       `json:"description" gorm:"type:text"`
	State        ProjectState `json:"state" gorm:"type:varchar(50);not null;default:'pending_approval'"`
	DepartmentID *uuid.UUID   `json:"department_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
