package models

import (
	"github.com/google/uuid"
)

// User represents an actor in the system: students, supervisors and
// organizational approvers.
type User struct {
	BaseModel
	FullName     string     `json:"full_name" gorm:"not null;size:200" validate:"required,max=200"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null;size:100" validate:"required,max=100"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Role         UserRole   `json:"role" gorm:"type:varchar(50);not null;default:'student'" validate:"required"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty" gorm:"type:uuid;index"`
	CollegeID    *uuid.UUID `json:"college_id,omitempty" gorm:"type:uuid;index"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`

	// Relationships
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
	College    *College    `json:"college,omitempty" gorm:"foreignKey:CollegeID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds the given role
func (u *User) HasRole(role UserRole) bool {
	return u.Role == role
}
