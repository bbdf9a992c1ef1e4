package models

import (
	"github.com/google/uuid"
)

// Association rows: existence implies membership. They carry no surrogate
// id and no independent lifecycle beyond create/delete.

type EmployeeInterest struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"employee_id"`
	InterestID uuid.UUID `gorm:"type:uuid;primaryKey" json:"interest_id"`
}

type EmployeeTechnology struct {
	EmployeeID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"employee_id"`
	TechnologyID uuid.UUID `gorm:"type:uuid;primaryKey" json:"technology_id"`
	RankID       uuid.UUID `gorm:"type:uuid;not null" json:"rank_id"`
}

type EmployeeProject struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"employee_id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"role_id"`
}
