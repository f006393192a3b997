package repository

import (
	"project-groups-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupRepository handles database operations for official groups
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create creates a new official group along with its member and supervisor rows
func (r *GroupRepository) Create(group *models.OfficialGroup) error {
	return r.db.Create(group).Error
}

// GetByID retrieves an official group with members and supervisors
func (r *GroupRepository) GetByID(id uuid.UUID) (*models.OfficialGroup, error) {
	var group models.OfficialGroup
	err := r.db.
		Preload("Members").Preload("Members.User").
		Preload("Supervisors").Preload("Supervisors.User").
		Preload("Project").
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByRequestID retrieves the official group materialized from a formation request
func (r *GroupRepository) GetByRequestID(requestID uuid.UUID) (*models.OfficialGroup, error) {
	var group models.OfficialGroup
	err := r.db.First(&group, "request_id = ?", requestID).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByMemberUserID retrieves the official group a user belongs to, if any
func (r *GroupRepository) GetByMemberUserID(userID uuid.UUID) (*models.OfficialGroup, error) {
	var member models.GroupMember
	if err := r.db.First(&member, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return r.GetByID(member.GroupID)
}

// GetAll retrieves all official groups with pagination
func (r *GroupRepository) GetAll(limit, offset int) ([]models.OfficialGroup, int64, error) {
	var groups []models.OfficialGroup
	var total int64

	if err := r.db.Model(&models.OfficialGroup{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Preload("Members").Preload("Supervisors").
		Limit(limit).Offset(offset).Order("created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

// GetTakenUserIDs returns the subset of the given user ids that already
// appear as a member of some official group
func (r *GroupRepository) GetTakenUserIDs(userIDs []uuid.UUID) ([]uuid.UUID, error) {
	var taken []uuid.UUID
	if len(userIDs) == 0 {
		return taken, nil
	}
	err := r.db.Model(&models.GroupMember{}).
		Where("user_id IN ?", userIDs).
		Pluck("user_id", &taken).Error
	if err != nil {
		return nil, err
	}
	return taken, nil
}

// LinkProject attaches a project to an official group
func (r *GroupRepository) LinkProject(groupID, projectID uuid.UUID) error {
	return r.db.Model(&models.OfficialGroup{}).
		Where("id = ?", groupID).
		Update("project_id", projectID).Error
}
