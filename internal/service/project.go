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

// ProjectService handles project business logic
type ProjectService struct {
	repo      repository.ProjectRepositoryInterface
	validator *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepositoryInterface, validator *validator.Validate) *ProjectService {
	return &ProjectService{repo: repo, validator: validator}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Title        string     `json:"title" validate:"required,max=500"`
	Type         string     `json:"type" validate:"required,max=100"`
	Description  string     `json:"description"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
}

// ProjectResponse represents a project
type ProjectResponse struct {
	ID           uuid.UUID           `json:"id"`
	Title        string              `json:"title"`
	Type         string              `json:"type"`
	Description  string              `json:"description"`
	State        models.ProjectState `json:"state"`
	DepartmentID *uuid.UUID          `json:"department_id,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create creates a project in the pending_approval state
func (s *ProjectService) Create(req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project := &models.Project{
		Title:        req.Title,
		Type:         req.Type,
		Description:  req.Description,
		State:        models.ProjectStatePendingApproval,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return toProjectResponse(project), nil
}

// GetByID retrieves a project
func (s *ProjectService) GetByID(id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return toProjectResponse(project), nil
}

// List retrieves projects, optionally filtered by state
func (s *ProjectService) List(state string, page, pageSize int) (*ProjectListResponse, error) {
	limit, offset := paginate(page, pageSize)

	var (
		projects []models.Project
		total    int64
		err      error
	)
	if state != "" {
		projectState := models.ProjectState(state)
		if !projectState.IsValid() {
			return nil, apperrors.NewValidationError("state", "invalid project state")
		}
		projects, total, err = s.repo.GetByState(projectState, limit, offset)
	} else {
		projects, total, err = s.repo.GetAll(limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *toProjectResponse(&projects[i])
	}
	return &ProjectListResponse{
		Projects: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func toProjectResponse(project *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:           project.ID,
		Title:        project.Title,
		Type:         project.Type,
		Description:  project.Description,
		State:        project.State,
		DepartmentID: project.DepartmentID,
		CreatedAt:    project.CreatedAt,
	}
}
