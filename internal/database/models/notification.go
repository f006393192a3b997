package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationRecord is a delivery/read-state log entry tied to a workflow
// event. RelatedID correlates back to the originating Participant or
// ApprovalTask so responding to that entity can mark the notification read.
type NotificationRecord struct {
	BaseModel
	RecipientID uuid.UUID        `json:"recipient_id" gorm:"type:uuid;not null;index" validate:"required"`
	Type        NotificationType `json:"type" gorm:"type:varchar(50);not null" validate:"required"`
	Title       string           `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Message     string           `json:"message" gorm:"type:text"`
	RelatedID   *uuid.UUID       `json:"related_id,omitempty" gorm:"type:uuid;index"`
	IsRead      bool             `json:"is_read" gorm:"not null;default:false"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`

	// Relationships
	Recipient User `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
}

// TableName returns the table name for NotificationRecord
func (NotificationRecord) TableName() string {
	return "notification_records"
}
