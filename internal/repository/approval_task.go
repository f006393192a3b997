package repository

import (
	"project-groups-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalTaskRepository handles database operations for approval tasks
type ApprovalTaskRepository struct {
	db *gorm.DB
}

// NewApprovalTaskRepository creates a new approval task repository
func NewApprovalTaskRepository(db *gorm.DB) *ApprovalTaskRepository {
	return &ApprovalTaskRepository{db: db}
}

// Create creates a new approval task
func (r *ApprovalTaskRepository) Create(task *models.ApprovalTask) error {
	return r.db.Create(task).Error
}

// GetByID retrieves an approval task by ID
func (r *ApprovalTaskRepository) GetByID(id uuid.UUID) (*models.ApprovalTask, error) {
	var task models.ApprovalTask
	err := r.db.Preload("Project").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByApproverID retrieves pending tasks awaiting the given approver
func (r *ApprovalTaskRepository) GetByApproverID(approverID uuid.UUID, limit, offset int) ([]models.ApprovalTask, int64, error) {
	var tasks []models.ApprovalTask
	var total int64

	where := r.db.Model(&models.ApprovalTask{}).
		Where("current_approver_id = ? AND status = ?", approverID, models.ApprovalStatusPending)
	if err := where.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Preload("Project").Preload("RequestedBy").
		Where("current_approver_id = ? AND status = ?", approverID, models.ApprovalStatusPending).
		Limit(limit).Offset(offset).Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// GetByRequestedByID retrieves tasks submitted by the given user
func (r *ApprovalTaskRepository) GetByRequestedByID(requestedByID uuid.UUID, limit, offset int) ([]models.ApprovalTask, int64, error) {
	var tasks []models.ApprovalTask
	var total int64

	if err := r.db.Model(&models.ApprovalTask{}).Where("requested_by_id = ?", requestedByID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Preload("Project").Preload("CurrentApprover").
		Where("requested_by_id = ?", requestedByID).
		Limit(limit).Offset(offset).Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates an approval task
func (r *ApprovalTaskRepository) Update(task *models.ApprovalTask) error {
	return r.db.Save(task).Error
}
