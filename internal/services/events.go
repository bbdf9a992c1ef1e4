package services

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/types"
	"gorm.io/gorm"
)

// EventScope narrows a listing to the events an employee owns or attends.
type EventScope struct {
	EmployeeID uuid.UUID
}

// ListEvents pages over events matching the free-text search across name,
// place and event-type name, newest first. A non-nil scope keeps only
// events the employee owns or attends.
func ListEvents(dbc *gorm.DB, search string, scope *EventScope, skip, limit int) (types.PaginatedEvents, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 1
	}

	buildQuery := func() *gorm.DB {
		query := dbc.Model(&models.Event{}).
			Joins("JOIN event_types ON event_types.id = events.event_type_id")

		if trimmed := strings.TrimSpace(search); trimmed != "" {
			pattern := "%" + strings.ToLower(trimmed) + "%"
			query = query.Where(
				"LOWER(events.name) LIKE ? OR LOWER(events.place) LIKE ? OR LOWER(event_types.name) LIKE ?",
				pattern, pattern, pattern,
			)
		}

		if scope != nil {
			attending := dbc.Model(&models.EventAttendee{}).
				Select("event_id").
				Where("employee_id = ?", scope.EmployeeID)
			query = query.Where("events.owner_id = ? OR events.id IN (?)", scope.EmployeeID, attending)
		}

		return query
	}

	var total int64

	if err := buildQuery().Count(&total).Error; err != nil {
		return types.PaginatedEvents{}, err
	}

	var events []models.Event

	if err := buildQuery().
		Order("events.date DESC, events.id").
		Offset(skip).
		Limit(limit).
		Find(&events).Error; err != nil {
		return types.PaginatedEvents{}, err
	}

	page := types.PaginatedEvents{
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Skip:       skip,
		Limit:      limit,
		Events:     []types.EventResponse{},
	}

	for _, event := range events {
		response, err := BuildEventResponse(dbc, event)
		if err != nil {
			return types.PaginatedEvents{}, err
		}
		page.Events = append(page.Events, response)
	}

	return page, nil
}

// BuildEventResponse assembles the event read-model: type, owner summary
// and the attendee list.
func BuildEventResponse(dbc *gorm.DB, event models.Event) (types.EventResponse, error) {
	var eventType models.EventType

	if err := dbc.First(&eventType, "id = ?", event.EventTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.EventResponse{}, &MissingReferenceError{Kind: "event type", ID: event.EventTypeID}
		}
		return types.EventResponse{}, err
	}

	var owner models.Employee

	if err := dbc.First(&owner, "id = ?", event.OwnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.EventResponse{}, &MissingReferenceError{Kind: "employee", ID: event.OwnerID}
		}
		return types.EventResponse{}, err
	}

	var attendees []models.Employee

	if err := dbc.
		Joins("JOIN event_attendees ON event_attendees.employee_id = employees.id").
		Where("event_attendees.event_id = ?", event.ID).
		Order("employees.id").
		Find(&attendees).Error; err != nil {
		return types.EventResponse{}, err
	}

	response := types.EventResponse{
		ID:        event.ID,
		Name:      event.Name,
		Date:      event.Date,
		Place:     event.Place,
		EventType: types.EventTypeResponse{ID: eventType.ID, Name: eventType.Name},
		Owner:     EmployeeSummaryOf(owner),
		Attendees: []types.EmployeeSummary{},
	}

	for _, attendee := range attendees {
		response.Attendees = append(response.Attendees, EmployeeSummaryOf(attendee))
	}

	return response, nil
}
