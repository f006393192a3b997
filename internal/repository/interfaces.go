package repository

import (
	"project-groups-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByIDs(ids []uuid.UUID) ([]models.User, error)
	GetAll(limit, offset int) ([]models.User, int64, error)
	GetByRole(role models.UserRole, limit, offset int) ([]models.User, int64, error)
	GetApproverByRole(role models.UserRole, departmentID, collegeID *uuid.UUID) (*models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// CollegeRepositoryInterface defines the interface for college repository operations
type CollegeRepositoryInterface interface {
	Create(college *models.College) error
	GetByID(id uuid.UUID) (*models.College, error)
	GetAll() ([]models.College, error)
}

// DepartmentRepositoryInterface defines the interface for department repository operations
type DepartmentRepositoryInterface interface {
	Create(department *models.Department) error
	GetByID(id uuid.UUID) (*models.Department, error)
	GetByCollegeID(collegeID uuid.UUID) ([]models.Department, error)
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetAll(limit, offset int) ([]models.Project, int64, error)
	GetByState(state models.ProjectState, limit, offset int) ([]models.Project, int64, error)
	Update(project *models.Project) error
	UpdateState(id uuid.UUID, state models.ProjectState) error
}

// FormationRequestRepositoryInterface defines the interface for formation
// request repository operations. GetByIDForUpdate takes a row-level lock and
// is only meaningful on a transaction-scoped repository.
type FormationRequestRepositoryInterface interface {
	Create(request *models.GroupFormationRequest) error
	GetByID(id uuid.UUID) (*models.GroupFormationRequest, error)
	GetByIDForUpdate(id uuid.UUID) (*models.GroupFormationRequest, error)
	GetPendingByUserID(userID uuid.UUID) ([]models.GroupFormationRequest, error)
	GetParticipant(requestID, userID uuid.UUID) (*models.Participant, error)
	UpdateParticipant(participant *models.Participant) error
	MarkFullyConfirmed(id uuid.UUID) error
}

// GroupRepositoryInterface defines the interface for official group repository operations
type GroupRepositoryInterface interface {
	Create(group *models.OfficialGroup) error
	GetByID(id uuid.UUID) (*models.OfficialGroup, error)
	GetByRequestID(requestID uuid.UUID) (*models.OfficialGroup, error)
	GetByMemberUserID(userID uuid.UUID) (*models.OfficialGroup, error)
	GetAll(limit, offset int) ([]models.OfficialGroup, int64, error)
	GetTakenUserIDs(userIDs []uuid.UUID) ([]uuid.UUID, error)
	LinkProject(groupID, projectID uuid.UUID) error
}

// ApprovalTaskRepositoryInterface defines the interface for approval task repository operations
type ApprovalTaskRepositoryInterface interface {
	Create(task *models.ApprovalTask) error
	GetByID(id uuid.UUID) (*models.ApprovalTask, error)
	GetByApproverID(approverID uuid.UUID, limit, offset int) ([]models.ApprovalTask, int64, error)
	GetByRequestedByID(requestedByID uuid.UUID, limit, offset int) ([]models.ApprovalTask, int64, error)
	Update(task *models.ApprovalTask) error
}

// NotificationRepositoryInterface defines the interface for notification repository operations
type NotificationRepositoryInterface interface {
	Create(record *models.NotificationRecord) error
	GetByID(id uuid.UUID) (*models.NotificationRecord, error)
	GetByRecipientID(recipientID uuid.UUID, limit, offset int) ([]models.NotificationRecord, int64, error)
	CountUnread(recipientID uuid.UUID) (int64, error)
	MarkRead(id uuid.UUID) error
	MarkReadByRelation(relatedID, recipientID uuid.UUID) error
	MarkAllRead(recipientID uuid.UUID) error
	Delete(id uuid.UUID) error
}

// TxRepositories is the set of repositories bound to one open transaction.
// Everything done through it commits or rolls back together.
type TxRepositories struct {
	Users         UserRepositoryInterface
	Projects      ProjectRepositoryInterface
	Requests      FormationRequestRepositoryInterface
	Groups        GroupRepositoryInterface
	Approvals     ApprovalTaskRepositoryInterface
	Notifications NotificationRepositoryInterface
}

// UnitOfWork runs a function against a transaction-scoped repository set.
// Workflow state changes and their notification bookkeeping must share one
// unit of work so they are never observably inconsistent.
type UnitOfWork interface {
	Do(fn func(tx *TxRepositories) error) error
}
