package repository

import (
	"project-groups-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormationRequestRepository handles database operations for group
// formation requests and their participants
type FormationRequestRepository struct {
	db *gorm.DB
}

// NewFormationRequestRepository creates a new formation request repository
func NewFormationRequestRepository(db *gorm.DB) *FormationRequestRepository {
	return &FormationRequestRepository{db: db}
}

// Create creates a new formation request along with its participants
func (r *FormationRequestRepository) Create(request *models.GroupFormationRequest) error {
	return r.db.Create(request).Error
}

// GetByID retrieves a formation request with its participants
func (r *FormationRequestRepository) GetByID(id uuid.UUID) (*models.GroupFormationRequest, error) {
	var request models.GroupFormationRequest
	err := r.db.Preload("Participants").Preload("Participants.User").First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByIDForUpdate retrieves a formation request holding a row-level lock on
// it for the remainder of the transaction. Participants are loaded after the
// lock is taken, so their statuses are read under mutual exclusion.
func (r *FormationRequestRepository) GetByIDForUpdate(id uuid.UUID) (*models.GroupFormationRequest, error) {
	var request models.GroupFormationRequest
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("request_id = ?", id).Find(&request.Participants).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetPendingByUserID retrieves open requests the user created or was
// invited to, newest first
func (r *FormationRequestRepository) GetPendingByUserID(userID uuid.UUID) ([]models.GroupFormationRequest, error) {
	var requests []models.GroupFormationRequest
	err := r.db.
		Preload("Participants").Preload("Participants.User").
		Where("is_fully_confirmed = ? AND (creator_id = ? OR id IN (?))",
			false, userID,
			r.db.Model(&models.Participant{}).Select("request_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetParticipant retrieves the participant row of a user on a request
func (r *FormationRequestRepository) GetParticipant(requestID, userID uuid.UUID) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.First(&participant, "request_id = ? AND user_id = ?", requestID, userID).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// UpdateParticipant persists a participant's response
func (r *FormationRequestRepository) UpdateParticipant(participant *models.Participant) error {
	return r.db.Save(participant).Error
}

// MarkFullyConfirmed flips the monotonic confirmation flag
func (r *FormationRequestRepository) MarkFullyConfirmed(id uuid.UUID) error {
	return r.db.Model(&models.GroupFormationRequest{}).
		Where("id = ?", id).
		Update("is_fully_confirmed", true).Error
}
