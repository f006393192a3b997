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

// ApprovalService routes tasks through configured role chains. Each approval
// type maps to an ordered list of approver roles; a task advances one level
// per acceptance and terminates on the final acceptance or any rejection.
type ApprovalService struct {
	uow       repository.UnitOfWork
	taskRepo  repository.ApprovalTaskRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	notifier  *NotificationService
	chains    map[models.ApprovalType][]models.UserRole
	validator *validator.Validate
}

// NewApprovalService creates a new approval service
func NewApprovalService(
	uow repository.UnitOfWork,
	taskRepo repository.ApprovalTaskRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	notifier *NotificationService,
	chains map[models.ApprovalType][]models.UserRole,
	validator *validator.Validate,
) *ApprovalService {
	return &ApprovalService{
		uow:       uow,
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		chains:    chains,
		validator: validator,
	}
}

// BuildApprovalChains converts the configured chain definitions into typed
// role sequences, rejecting unknown approval types and roles up front so a
// bad deployment fails at startup rather than mid-workflow.
func BuildApprovalChains(raw map[string][]string) (map[models.ApprovalType][]models.UserRole, error) {
	chains := make(map[models.ApprovalType][]models.UserRole, len(raw))
	for typeName, roleNames := range raw {
		approvalType := models.ApprovalType(typeName)
		if !approvalType.IsValid() {
			return nil, fmt.Errorf("unknown approval type %q in chain configuration", typeName)
		}
		if len(roleNames) == 0 {
			return nil, fmt.Errorf("approval chain for %q is empty", typeName)
		}
		roles := make([]models.UserRole, len(roleNames))
		for i, roleName := range roleNames {
			role := models.UserRole(roleName)
			if !role.IsValid() {
				return nil, fmt.Errorf("unknown role %q in approval chain for %q", roleName, typeName)
			}
			roles[i] = role
		}
		chains[approvalType] = roles
	}
	return chains, nil
}

// CreateApprovalTaskRequest represents the request to open an approval task
type CreateApprovalTaskRequest struct {
	ApprovalType models.ApprovalType `json:"approval_type" validate:"required"`
	ProjectID    *uuid.UUID          `json:"project_id,omitempty"`
	GroupID      *uuid.UUID          `json:"group_id,omitempty"`
	RequestedBy  uuid.UUID           `json:"-"`
	DepartmentID *uuid.UUID          `json:"department_id,omitempty"`
	CollegeID    *uuid.UUID          `json:"college_id,omitempty"`
	Comments     string              `json:"comments"`
}

// DecisionRequest represents an approver's decision on a pending task
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
	Comments string `json:"comments"`
}

// ApprovalTaskResponse represents an approval task
type ApprovalTaskResponse struct {
	ID                uuid.UUID             `json:"id"`
	ApprovalType      models.ApprovalType   `json:"approval_type"`
	ProjectID         *uuid.UUID            `json:"project_id,omitempty"`
	GroupID           *uuid.UUID            `json:"group_id,omitempty"`
	RequestedByID     uuid.UUID             `json:"requested_by_id"`
	CurrentApproverID *uuid.UUID            `json:"current_approver_id,omitempty"`
	Level             int                   `json:"level"`
	ChainLength       int                   `json:"chain_length"`
	Status            models.ApprovalStatus `json:"status"`
	Comments          string                `json:"comments"`
	ApprovedAt        *time.Time            `json:"approved_at,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

// ApprovalTaskListResponse represents a paginated list of approval tasks
type ApprovalTaskListResponse struct {
	Tasks    []ApprovalTaskResponse `json:"tasks"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// Create opens an approval task at level 1 of the configured chain for its
// type, resolves the first approver and notifies them. The department and
// college hints narrow approver resolution; a dean is looked up college-wide,
// a department head department-wide.
func (s *ApprovalService) Create(req *CreateApprovalTaskRequest) (*ApprovalTaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	chain, ok := s.chains[req.ApprovalType]
	if !ok {
		return nil, apperrors.ErrChainNotConfigured
	}

	approver, err := s.resolveApprover(chain[0], req.DepartmentID, req.CollegeID)
	if err != nil {
		return nil, err
	}

	var task *models.ApprovalTask
	err = s.uow.Do(func(tx *repository.TxRepositories) error {
		task = &models.ApprovalTask{
			ApprovalType:      req.ApprovalType,
			ProjectID:         req.ProjectID,
			GroupID:           req.GroupID,
			RequestedByID:     req.RequestedBy,
			CurrentApproverID: &approver.ID,
			Level:             1,
			Status:            models.ApprovalStatusPending,
			Comments:          req.Comments,
		}
		if err := tx.Approvals.Create(task); err != nil {
			return fmt.Errorf("failed to create approval task: %w", err)
		}

		relatedID := task.ID
		_, err := s.notifier.Dispatch(tx.Notifications, DispatchInput{
			RecipientID: approver.ID,
			Type:        models.NotificationTypeApprovalRequest,
			Title:       "Approval required",
			Message:     fmt.Sprintf("A %s request is waiting for your decision", req.ApprovalType),
			RelatedID:   &relatedID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.toTaskResponse(task), nil
}

// Advance applies the current approver's decision. A rejection at any level
// terminates the task and rejects the underlying project; an acceptance at
// the final level completes it and accepts the project; an acceptance at an
// earlier level moves the task to the next approver in the chain.
func (s *ApprovalService) Advance(taskID, approverID uuid.UUID, req *DecisionRequest) (*ApprovalTaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	accept := req.Decision == "accept"

	var task *models.ApprovalTask
	err := s.uow.Do(func(tx *repository.TxRepositories) error {
		var err error
		task, err = tx.Approvals.GetByID(taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrApprovalTaskNotFound
			}
			return fmt.Errorf("failed to get approval task: %w", err)
		}

		if task.IsTerminal() {
			return apperrors.ErrTaskAlreadyTerminal
		}
		if task.CurrentApproverID == nil || *task.CurrentApproverID != approverID {
			return apperrors.ErrNotCurrentApprover
		}

		chain, ok := s.chains[task.ApprovalType]
		if !ok {
			return apperrors.ErrChainNotConfigured
		}

		if err := s.notifier.MarkReadByRelation(tx.Notifications, task.ID, approverID); err != nil {
			return err
		}
		if req.Comments != "" {
			task.Comments = req.Comments
		}

		if !accept {
			task.Status = models.ApprovalStatusRejected
			task.CurrentApproverID = nil
			if err := tx.Approvals.Update(task); err != nil {
				return fmt.Errorf("failed to update approval task: %w", err)
			}
			if task.ProjectID != nil {
				if err := tx.Projects.UpdateState(*task.ProjectID, models.ProjectStateRejected); err != nil {
					return fmt.Errorf("failed to reject project: %w", err)
				}
			}
			return s.notifyRequester(tx, task, "Request rejected",
				fmt.Sprintf("Your %s request was rejected at level %d", task.ApprovalType, task.Level))
		}

		if task.Level >= len(chain) {
			now := time.Now()
			task.Status = models.ApprovalStatusAccepted
			task.ApprovedAt = &now
			task.CurrentApproverID = nil
			if err := tx.Approvals.Update(task); err != nil {
				return fmt.Errorf("failed to update approval task: %w", err)
			}
			if task.ProjectID != nil {
				if err := tx.Projects.UpdateState(*task.ProjectID, models.ProjectStateAccepted); err != nil {
					return fmt.Errorf("failed to accept project: %w", err)
				}
			}
			return s.notifyRequester(tx, task, "Request approved",
				fmt.Sprintf("Your %s request passed the full approval chain", task.ApprovalType))
		}

		next, err := s.resolveApproverTx(tx.Users, chain[task.Level], task)
		if err != nil {
			return err
		}
		task.Level++
		task.CurrentApproverID = &next.ID
		if err := tx.Approvals.Update(task); err != nil {
			return fmt.Errorf("failed to update approval task: %w", err)
		}

		relatedID := task.ID
		_, err = s.notifier.Dispatch(tx.Notifications, DispatchInput{
			RecipientID: next.ID,
			Type:        models.NotificationTypeApprovalRequest,
			Title:       "Approval required",
			Message:     fmt.Sprintf("A %s request advanced to you for a level %d decision", task.ApprovalType, task.Level),
			RelatedID:   &relatedID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.toTaskResponse(task), nil
}

// GetByID retrieves an approval task
func (s *ApprovalService) GetByID(id uuid.UUID) (*ApprovalTaskResponse, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApprovalTaskNotFound
		}
		return nil, fmt.Errorf("failed to get approval task: %w", err)
	}
	return s.toTaskResponse(task), nil
}

// ListForApprover returns the tasks currently waiting on the given approver
func (s *ApprovalService) ListForApprover(approverID uuid.UUID, page, pageSize int) (*ApprovalTaskListResponse, error) {
	limit, offset := paginate(page, pageSize)
	tasks, total, err := s.taskRepo.GetByApproverID(approverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval tasks: %w", err)
	}
	return s.toTaskListResponse(tasks, total, page, pageSize), nil
}

// ListForRequester returns the tasks opened by the given requester
func (s *ApprovalService) ListForRequester(requesterID uuid.UUID, page, pageSize int) (*ApprovalTaskListResponse, error) {
	limit, offset := paginate(page, pageSize)
	tasks, total, err := s.taskRepo.GetByRequestedByID(requesterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval tasks: %w", err)
	}
	return s.toTaskListResponse(tasks, total, page, pageSize), nil
}

func (s *ApprovalService) notifyRequester(tx *repository.TxRepositories, task *models.ApprovalTask, title, message string) error {
	relatedID := task.ID
	_, err := s.notifier.Dispatch(tx.Notifications, DispatchInput{
		RecipientID: task.RequestedByID,
		Type:        models.NotificationTypeSystem,
		Title:       title,
		Message:     message,
		RelatedID:   &relatedID,
	})
	return err
}

func (s *ApprovalService) resolveApprover(role models.UserRole, departmentID, collegeID *uuid.UUID) (*models.User, error) {
	// department heads are scoped to a department, deans to a college
	scopeDept := departmentID
	if role == models.UserRoleDean {
		scopeDept = nil
	}
	approver, err := s.userRepo.GetApproverByRole(role, scopeDept, collegeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApproverNotFound
		}
		return nil, fmt.Errorf("failed to resolve approver: %w", err)
	}
	return approver, nil
}

func (s *ApprovalService) resolveApproverTx(users repository.UserRepositoryInterface, role models.UserRole, task *models.ApprovalTask) (*models.User, error) {
	// scope the next approver by the requester's organizational placement
	requester, err := users.GetByID(task.RequestedByID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve requester: %w", err)
	}
	departmentID := requester.DepartmentID
	collegeID := requester.CollegeID
	if role == models.UserRoleDean {
		departmentID = nil
	}
	approver, err := users.GetApproverByRole(role, departmentID, collegeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApproverNotFound
		}
		return nil, fmt.Errorf("failed to resolve approver: %w", err)
	}
	return approver, nil
}

func (s *ApprovalService) toTaskResponse(task *models.ApprovalTask) *ApprovalTaskResponse {
	chainLength := 0
	if chain, ok := s.chains[task.ApprovalType]; ok {
		chainLength = len(chain)
	}
	return &ApprovalTaskResponse{
		ID:                task.ID,
		ApprovalType:      task.ApprovalType,
		ProjectID:         task.ProjectID,
		GroupID:           task.GroupID,
		RequestedByID:     task.RequestedByID,
		CurrentApproverID: task.CurrentApproverID,
		Level:             task.Level,
		ChainLength:       chainLength,
		Status:            task.Status,
		Comments:          task.Comments,
		ApprovedAt:        task.ApprovedAt,
		CreatedAt:         task.CreatedAt,
	}
}

func (s *ApprovalService) toTaskListResponse(tasks []models.ApprovalTask, total int64, page, pageSize int) *ApprovalTaskListResponse {
	responses := make([]ApprovalTaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *s.toTaskResponse(&tasks[i])
	}
	return &ApprovalTaskListResponse{
		Tasks:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
