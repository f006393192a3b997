package repository

import (
	"project-groups-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollegeRepository handles database operations for colleges
type CollegeRepository struct {
	db *gorm.DB
}

// NewCollegeRepository creates a new college repository
func NewCollegeRepository(db *gorm.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// Create creates a new college
func (r *CollegeRepository) Create(college *models.College) error {
	return r.db.Create(college).Error
}

// GetByID retrieves a college by ID
func (r *CollegeRepository) GetByID(id uuid.UUID) (*models.College, error) {
	var college models.College
	err := r.db.First(&college, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &college, nil
}

// GetAll retrieves all colleges
func (r *CollegeRepository) GetAll() ([]models.College, error) {
	var colleges []models.College
	err := r.db.Order("name").Find(&colleges).Error
	if err != nil {
		return nil, err
	}
	return colleges, nil
}

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create creates a new department
func (r *DepartmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(id uuid.UUID) (*models.Department, error) {
	var department models.Department
	err := r.db.First(&department, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}

// GetByCollegeID retrieves all departments of a college
func (r *DepartmentRepository) GetByCollegeID(collegeID uuid.UUID) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.Where("college_id = ?", collegeID).Order("name").Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}
