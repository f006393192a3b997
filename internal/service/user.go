package service

import (
	"errors"
	"fmt"
	"time"

	"project-groups-backend/internal/database/models"
	apperrors "project-groups-backend/internal/errors"
	"project-groups-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles user business logic
type UserService struct {
	repo      repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, validator *validator.Validate) *UserService {
	return &UserService{repo: repo, validator: validator}
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	FullName     string     `json:"full_name" validate:"required,max=200"`
	Username     string     `json:"username" validate:"required,max=100"`
	Email        string     `json:"email" validate:"required,email,max=255"`
	Role         string     `json:"role" validate:"required"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	CollegeID    *uuid.UUID `json:"college_id,omitempty"`
}

// UserResponse represents a user
type UserResponse struct {
	ID           uuid.UUID       `json:"id"`
	FullName     string          `json:"full_name"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	DepartmentID *uuid.UUID      `json:"department_id,omitempty"`
	CollegeID    *uuid.UUID      `json:"college_id,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create creates a user
func (s *UserService) Create(req *CreateUserRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	role := models.UserRole(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("role", "invalid user role")
	}

	user := &models.User{
		FullName:     req.FullName,
		Username:     req.Username,
		Email:        req.Email,
		Role:         role,
		DepartmentID: req.DepartmentID,
		CollegeID:    req.CollegeID,
		IsActive:     true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toUserResponse(user), nil
}

// GetByID retrieves a user
func (s *UserService) GetByID(id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserResponse(user), nil
}

// HasRole reports whether the user holds the given role. Inactive users
// hold no roles.
func (s *UserService) HasRole(id uuid.UUID, role models.UserRole) (bool, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	return user.IsActive && user.Role == role, nil
}

// List retrieves users, optionally filtered by role
func (s *UserService) List(role string, page, pageSize int) (*UserListResponse, error) {
	limit, offset := paginate(page, pageSize)

	var (
		users []models.User
		total int64
		err   error
	)
	if role != "" {
		userRole := models.UserRole(role)
		if !userRole.IsValid() {
			return nil, apperrors.NewValidationError("role", "invalid user role")
		}
		users, total, err = s.repo.GetByRole(userRole, limit, offset)
	} else {
		users, total, err = s.repo.GetAll(limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *toUserResponse(&users[i])
	}
	return &UserListResponse{
		Users:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:           user.ID,
		FullName:     user.FullName,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		CollegeID:    user.CollegeID,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
	}
}
