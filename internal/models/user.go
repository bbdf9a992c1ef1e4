package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Username     string    `gorm:"primaryKey;size:50" json:"username"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null" json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Employee Employee   `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Role     SystemRole `gorm:"foreignKey:RoleID" json:"-"`
}
