package service

import (
	"project-groups-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// FormationServiceInterface defines the interface for formation request operations
type FormationServiceInterface interface {
	Create(req *CreateFormationRequest) (*FormationRequestResponse, error)
	GetByID(id uuid.UUID) (*FormationRequestResponse, error)
	Respond(requestID, userID uuid.UUID, req *RespondRequest) (*RespondOutcome, error)
	Finalize(requestID uuid.UUID) (*uuid.UUID, bool, error)
	MyGroup(userID uuid.UUID) (*MyGroupResponse, error)
}

// ApprovalServiceInterface defines the interface for approval task operations
type ApprovalServiceInterface interface {
	Create(req *CreateApprovalTaskRequest) (*ApprovalTaskResponse, error)
	Advance(taskID, approverID uuid.UUID, req *DecisionRequest) (*ApprovalTaskResponse, error)
	GetByID(id uuid.UUID) (*ApprovalTaskResponse, error)
	ListForApprover(approverID uuid.UUID, page, pageSize int) (*ApprovalTaskListResponse, error)
	ListForRequester(requesterID uuid.UUID, page, pageSize int) (*ApprovalTaskListResponse, error)
}

// NotificationServiceInterface defines the interface for notification operations
type NotificationServiceInterface interface {
	List(recipientID uuid.UUID, page, pageSize int) (*NotificationListResponse, error)
	MarkRead(id, recipientID uuid.UUID) error
	MarkAllRead(recipientID uuid.UUID) error
	Delete(id, recipientID uuid.UUID) error
}

// GroupServiceInterface defines the interface for official group operations
type GroupServiceInterface interface {
	GetByID(id uuid.UUID) (*GroupResponse, error)
	GetAll(page, pageSize int) (*GroupListResponse, error)
	LinkProject(groupID, projectID, actorID uuid.UUID) (*GroupResponse, error)
}

// ProjectServiceInterface defines the interface for project operations
type ProjectServiceInterface interface {
	Create(req *CreateProjectRequest) (*ProjectResponse, error)
	GetByID(id uuid.UUID) (*ProjectResponse, error)
	List(state string, page, pageSize int) (*ProjectListResponse, error)
}

// UserServiceInterface defines the interface for user operations
type UserServiceInterface interface {
	Create(req *CreateUserRequest) (*UserResponse, error)
	GetByID(id uuid.UUID) (*UserResponse, error)
	HasRole(id uuid.UUID, role models.UserRole) (bool, error)
	List(role string, page, pageSize int) (*UserListResponse, error)
}
