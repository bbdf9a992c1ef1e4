package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:52;not null" json:"name"`
	Date        time.Time `gorm:"not null" json:"date"`
	Place       string    `gorm:"size:52;not null" json:"place"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	EventTypeID uuid.UUID `gorm:"type:uuid;not null" json:"event_type_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner     Employee  `gorm:"foreignKey:OwnerID" json:"-"`
	EventType EventType `gorm:"foreignKey:EventTypeID" json:"-"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type EventAttendee struct {
	EventID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"event_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"employee_id"`
}
