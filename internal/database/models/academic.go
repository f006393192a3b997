package models

import (
	"github.com/google/uuid"
)

// College represents a college within the institution
type College struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;not null;size:200" validate:"required,max=200"`

	// Relationships
	Departments []Department `json:"departments,omitempty" gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for College
func (College) TableName() string {
	return "colleges"
}

// Department represents a department within a college
type Department struct {
	BaseModel
	CollegeID uuid.UUID `json:"college_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_college_department_name,composite:college_id;not null;size:200" validate:"required,max=200"`

	// Relationships
	College College `json:"college,omitempty" gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Department
func (Department) TableName() string {
	return "departments"
}
