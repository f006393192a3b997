package repository

import (
	"time"

	"project-groups-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository handles database operations for notification records
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new notification record
func (r *NotificationRepository) Create(record *models.NotificationRecord) error {
	return r.db.Create(record).Error
}

// GetByID retrieves a notification record by ID
func (r *NotificationRepository) GetByID(id uuid.UUID) (*models.NotificationRecord, error) {
	var record models.NotificationRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByRecipientID retrieves a recipient's notifications, newest first
func (r *NotificationRepository) GetByRecipientID(recipientID uuid.UUID, limit, offset int) ([]models.NotificationRecord, int64, error) {
	var records []models.NotificationRecord
	var total int64

	if err := r.db.Model(&models.NotificationRecord{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("recipient_id = ?", recipientID).
		Limit(limit).Offset(offset).Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// CountUnread counts a recipient's unread notifications
func (r *NotificationRepository) CountUnread(recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.NotificationRecord{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks a single notification read. Idempotent: the is_read filter
// makes re-marking a no-op.
func (r *NotificationRepository) MarkRead(id uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.NotificationRecord{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// MarkReadByRelation marks the notification correlated to a workflow entity
// read for the given recipient. Idempotent.
func (r *NotificationRepository) MarkReadByRelation(relatedID, recipientID uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.NotificationRecord{}).
		Where("related_id = ? AND recipient_id = ? AND is_read = ?", relatedID, recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// MarkAllRead marks all of a recipient's notifications read. Idempotent.
func (r *NotificationRepository) MarkAllRead(recipientID uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.NotificationRecord{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// Delete deletes a notification record
func (r *NotificationRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.NotificationRecord{}, "id = ?", id).Error
}
