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

// NotificationService creates and reconciles notification records tied to
// workflow events
type NotificationService struct {
	repo      repository.NotificationRepositoryInterface
	validator *validator.Validate
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repository.NotificationRepositoryInterface, validator *validator.Validate) *NotificationService {
	return &NotificationService{
		repo:      repo,
		validator: validator,
	}
}

// DispatchInput describes one notification to create
type DispatchInput struct {
	RecipientID uuid.UUID               `validate:"required"`
	Type        models.NotificationType `validate:"required"`
	Title       string                  `validate:"required,max=255"`
	Message     string
	RelatedID   *uuid.UUID
}

// NotificationResponse represents a notification record
type NotificationResponse struct {
	ID        uuid.UUID               `json:"id"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	RelatedID *uuid.UUID              `json:"related_id,omitempty"`
	IsRead    bool                    `json:"is_read"`
	Status    string                  `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	ReadAt    *time.Time              `json:"read_at,omitempty"`
}

// NotificationListResponse represents a paginated notification list
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	Unread        int64                  `json:"unread"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// Dispatch creates a notification record through the given repository.
// Callers that mutate workflow state pass their transaction-scoped
// repository so the state change and its notification commit together.
func (s *NotificationService) Dispatch(repo repository.NotificationRepositoryInterface, in DispatchInput) (*models.NotificationRecord, error) {
	if err := s.validator.Struct(&in); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !in.Type.IsValid() {
		return nil, apperrors.NewValidationError("type", "invalid notification type")
	}

	record := &models.NotificationRecord{
		RecipientID: in.RecipientID,
		Type:        in.Type,
		Title:       in.Title,
		Message:     in.Message,
		RelatedID:   in.RelatedID,
	}
	if err := repo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return record, nil
}

// Notify creates a notification record outside any caller transaction
func (s *NotificationService) Notify(in DispatchInput) (*models.NotificationRecord, error) {
	return s.Dispatch(s.repo, in)
}

// List retrieves a recipient's notifications, newest first
func (s *NotificationService) List(recipientID uuid.UUID, page, pageSize int) (*NotificationListResponse, error) {
	limit, offset := paginate(page, pageSize)
	records, total, err := s.repo.GetByRecipientID(recipientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	unread, err := s.repo.CountUnread(recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]NotificationResponse, len(records))
	for i, record := range records {
		responses[i] = *toNotificationResponse(&record)
	}

	return &NotificationListResponse{
		Notifications: responses,
		Total:         total,
		Unread:        unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// MarkRead marks one of the recipient's notifications read. Marking an
// already-read notification again is a no-op.
func (s *NotificationService) MarkRead(id, recipientID uuid.UUID) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if record.RecipientID != recipientID {
		return apperrors.ErrNotificationNotFound
	}

	if err := s.repo.MarkRead(id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkReadByRelation marks the notification correlated to a workflow entity
// read for the given recipient. Idempotent; missing notifications are not an
// error because the recipient may be the originator who never got one.
func (s *NotificationService) MarkReadByRelation(repo repository.NotificationRepositoryInterface, relatedID, recipientID uuid.UUID) error {
	if err := repo.MarkReadByRelation(relatedID, recipientID); err != nil {
		return fmt.Errorf("failed to mark notification read by relation: %w", err)
	}
	return nil
}

// MarkAllRead marks all of a recipient's notifications read
func (s *NotificationService) MarkAllRead(recipientID uuid.UUID) error {
	if err := s.repo.MarkAllRead(recipientID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

// Delete removes one of the recipient's notifications
func (s *NotificationService) Delete(id, recipientID uuid.UUID) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if record.RecipientID != recipientID {
		return apperrors.ErrNotificationNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func toNotificationResponse(record *models.NotificationRecord) *NotificationResponse {
	status := "unread"
	if record.IsRead {
		status = "read"
	}
	return &NotificationResponse{
		ID:        record.ID,
		Type:      record.Type,
		Title:     record.Title,
		Message:   record.Message,
		RelatedID: record.RelatedID,
		IsRead:    record.IsRead,
		Status:    status,
		CreatedAt: record.CreatedAt,
		ReadAt:    record.ReadAt,
	}
}
