package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/services"
	"github.com/staffhub-dev/staffhub/internal/utils"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	Name        string      `json:"name" binding:"required"`
	Date        string      `json:"date" binding:"required"`
	Place       string      `json:"place" binding:"required"`
	EventTypeID uuid.UUID   `json:"event_type_id" binding:"required"`
	AttendeeIDs []uuid.UUID `json:"attendee_ids"`
}

type UpdateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Date        string    `json:"date" binding:"required"`
	Place       string    `json:"place" binding:"required"`
	EventTypeID uuid.UUID `json:"event_type_id" binding:"required"`
}

func CreateEvent(ctx *gin.Context) {
	ownerID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var eventType models.EventType

	if err := db.DB.First(&eventType, "id = ?", req.EventTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event type not found"})
		} else {
			log.Printf("Failed to fetch event type: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Dedupe the initial attendee list; the owner joining their own
	// event is allowed but still only yields one row.
	seen := make(map[uuid.UUID]struct{}, len(req.AttendeeIDs))
	attendees := make([]uuid.UUID, 0, len(req.AttendeeIDs))

	for _, id := range req.AttendeeIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		attendees = append(attendees, id)
	}

	for _, id := range attendees {
		var employee models.Employee

		if err := db.DB.First(&employee, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Employee " + id.String() + " not found"})
			} else {
				log.Printf("Failed to fetch employee: %v", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}
	}

	event := models.Event{
		Name:        strings.TrimSpace(req.Name),
		Date:        date,
		Place:       strings.TrimSpace(req.Place),
		OwnerID:     ownerID,
		EventTypeID: req.EventTypeID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		for _, id := range attendees {
			link := models.EventAttendee{EventID: event.ID, EmployeeID: id}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}

			if _, err := services.Notify(tx, "You have been added to event: "+event.Name, []uuid.UUID{id}); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to create event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response, err := services.BuildEventResponse(db.DB, event)

	if err != nil {
		log.Printf("Failed to build event response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

func ListEvents(ctx *gin.Context) {
	skip, limit := paginationParams(ctx)

	page, err := services.ListEvents(db.DB, ctx.Query("search"), nil, skip, limit)

	if err != nil {
		log.Printf("Event listing failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, page)
}

func ListMyEvents(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	skip, limit := paginationParams(ctx)

	scope := &services.EventScope{EmployeeID: employeeID}
	page, err := services.ListEvents(db.DB, ctx.Query("search"), scope, skip, limit)

	if err != nil {
		log.Printf("Event listing failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, page)
}

func GetEvent(ctx *gin.Context) {
	event, ok := fetchEvent(ctx)
	if !ok {
		return
	}

	response, err := services.BuildEventResponse(db.DB, event)

	if err != nil {
		log.Printf("Failed to build event response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateEvent(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, ok := fetchEvent(ctx)
	if !ok {
		return
	}

	if event.OwnerID != employeeID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the event owner can edit it"})
		return
	}

	var req UpdateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var eventType models.EventType

	if err := db.DB.First(&eventType, "id = ?", req.EventTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event type not found"})
		} else {
			log.Printf("Failed to fetch event type: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	event.Name = strings.TrimSpace(req.Name)
	event.Date = date
	event.Place = strings.TrimSpace(req.Place)
	event.EventTypeID = req.EventTypeID

	if err := db.DB.Save(&event).Error; err != nil {
		log.Printf("Failed to update event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response, err := services.BuildEventResponse(db.DB, event)

	if err != nil {
		log.Printf("Failed to build event response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteEvent(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, ok := fetchEvent(ctx)
	if !ok {
		return
	}

	if event.OwnerID != employeeID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the event owner can delete it"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventAttendee{}).Error; err != nil {
			return err
		}

		return tx.Delete(&event).Error
	})

	if err != nil {
		log.Printf("Failed to delete event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func AddAttendee(ctx *gin.Context) {
	currentID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, ok := fetchEvent(ctx)
	if !ok {
		return
	}

	if event.OwnerID != currentID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the event owner can add attendees"})
		return
	}

	employeeID, err := uuid.Parse(ctx.Query("employee_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee_id"})
		return
	}

	var employee models.Employee

	if err := db.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		} else {
			log.Printf("Failed to fetch employee: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if joinEventMember(ctx, event, employeeID, true) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Attendee added successfully"})
	}
}

func JoinEvent(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, ok := fetchEvent(ctx)
	if !ok {
		return
	}

	if joinEventMember(ctx, event, employeeID, false) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Joined event successfully"})
	}
}

func LeaveEvent(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, ok := fetchEvent(ctx)
	if !ok {
		return
	}

	var link models.EventAttendee

	err = db.DB.Where("event_id = ? AND employee_id = ?", event.ID, employeeID).First(&link).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "You are not attending this event"})
		} else {
			log.Printf("Failed to fetch attendance: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Where("event_id = ? AND employee_id = ?", event.ID, employeeID).
		Delete(&models.EventAttendee{}).Error; err != nil {
		log.Printf("Failed to remove attendance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Left event successfully"})
}

func fetchEvent(ctx *gin.Context) (models.Event, bool) {
	eventID, err := uuid.Parse(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return models.Event{}, false
	}

	var event models.Event

	if err := db.DB.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			log.Printf("Failed to fetch event: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return models.Event{}, false
	}

	return event, true
}

// joinEventMember inserts the membership row, notifying the employee when
// someone else added them. Reports false after writing an error response
// when the employee is already attending or the write fails.
func joinEventMember(ctx *gin.Context, event models.Event, employeeID uuid.UUID, notify bool) bool {
	var existing models.EventAttendee

	err := db.DB.Where("event_id = ? AND employee_id = ?", event.ID, employeeID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Already attending this event"})
		return false
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check attendance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return false
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		link := models.EventAttendee{EventID: event.ID, EmployeeID: employeeID}

		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		if !notify {
			return nil
		}

		_, err := services.Notify(tx, "You have been added to event: "+event.Name, []uuid.UUID{employeeID})
		return err
	})

	if err != nil {
		log.Printf("Failed to add attendee: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return false
	}

	return true
}
