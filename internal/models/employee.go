package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string     `gorm:"size:52;not null" json:"first_name"`
	LastName     string     `gorm:"size:52;not null" json:"last_name"`
	MiddleName   string     `gorm:"size:52" json:"middle_name"`
	DateOfBirth  time.Time  `gorm:"not null" json:"date_of_birth"`
	Email        string     `gorm:"size:150;not null;index" json:"email"`
	Phone        string     `gorm:"size:18;not null;index" json:"phone"`
	Telegram     string     `gorm:"size:25;not null;index" json:"telegram"`
	City         string     `gorm:"size:52;not null" json:"city"`
	PositionID   *uuid.UUID `gorm:"type:uuid;index" json:"position_id,omitempty"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
