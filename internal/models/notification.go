package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"size:255;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// NotificationRecipient tracks per-employee read state. IsShown starts
// false and flips to true once the recipient marks the notification read.
type NotificationRecipient struct {
	NotificationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"notification_id"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"employee_id"`
	IsShown        bool      `gorm:"not null;default:false" json:"is_shown"`
}
