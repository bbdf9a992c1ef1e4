package types

import (
	"time"

	"github.com/google/uuid"
)

// Read-models assembled for output. These are distinct from the storage
// shapes in internal/models: the employee response nests its taxonomy
// rows, and position/department stay nil when the reference dangles.

type PositionResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type DepartmentResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type InterestResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type RankResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TechnologyResponse struct {
	ID   uuid.UUID    `json:"id"`
	Name string       `json:"name"`
	Rank RankResponse `json:"rank"`
}

type RoleResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ProjectResponse struct {
	ID   uuid.UUID    `json:"id"`
	Name string       `json:"name"`
	Role RoleResponse `json:"role"`
}

type EmployeeResponse struct {
	ID           uuid.UUID            `json:"id"`
	FirstName    string               `json:"first_name"`
	LastName     string               `json:"last_name"`
	MiddleName   string               `json:"middle_name"`
	DateOfBirth  string               `json:"date_of_birth"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Telegram     string               `json:"telegram"`
	City         string               `json:"city"`
	Position     *PositionResponse    `json:"position"`
	Department   *DepartmentResponse  `json:"department"`
	Interests    []InterestResponse   `json:"interests"`
	Technologies []TechnologyResponse `json:"technologies"`
	Projects     []ProjectResponse    `json:"projects"`
}

type EmployeeSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	City      string    `json:"city"`
}

type PaginatedEmployees struct {
	TotalCount int64              `json:"total_count"`
	TotalPages int                `json:"total_pages"`
	Skip       int                `json:"skip"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}

type EventTypeResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type EventResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Date      time.Time         `json:"date"`
	Place     string            `json:"place"`
	EventType EventTypeResponse `json:"event_type"`
	Owner     EmployeeSummary   `json:"owner"`
	Attendees []EmployeeSummary `json:"attendees"`
}

type PaginatedEvents struct {
	TotalCount int64           `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Skip       int             `json:"skip"`
	Limit      int             `json:"limit"`
	Events     []EventResponse `json:"events"`
}

type NotificationItem struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsShown   bool      `json:"is_shown"`
}

type GraphNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type GraphView struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}
