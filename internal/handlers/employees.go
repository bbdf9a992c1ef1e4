package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/services"
	"gorm.io/gorm"
)

func SearchEmployees(ctx *gin.Context) {
	var filter services.EmployeeFilter

	if err := ctx.BindJSON(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	skip, limit := paginationParams(ctx)

	page, err := services.SearchEmployees(db.DB, filter, skip, limit)

	if err != nil {
		log.Printf("Employee search failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, page)
}

func GetEmployee(ctx *gin.Context) {
	employeeID, err := uuid.Parse(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
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

	profile, err := services.BuildEmployeeResponse(db.DB, employee)

	if err != nil {
		log.Printf("Failed to build employee response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func CreateEmployee(ctx *gin.Context) {
	var req EmployeeProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	employee, err := req.toModel()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_of_birth, expected YYYY-MM-DD"})
		return
	}

	if conflict, err := contactFieldTaken(employee, nil); err != nil {
		log.Printf("Database error when checking contact uniqueness: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	} else if conflict != "" {
		ctx.JSON(http.StatusConflict, gin.H{"error": conflict + " already in use"})
		return
	}

	if err := db.DB.Create(&employee).Error; err != nil {
		log.Printf("Failed to create employee: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	profile, err := services.BuildEmployeeResponse(db.DB, employee)

	if err != nil {
		log.Printf("Failed to build employee response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, profile)
}

func UpdateEmployee(ctx *gin.Context) {
	employeeID, err := uuid.Parse(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	var req EmployeeProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	updated, err := req.toModel()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_of_birth, expected YYYY-MM-DD"})
		return
	}

	if conflict, err := contactFieldTaken(updated, &employeeID); err != nil {
		log.Printf("Database error when checking contact uniqueness: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	} else if conflict != "" {
		ctx.JSON(http.StatusConflict, gin.H{"error": conflict + " already in use"})
		return
	}

	updated.ID = employee.ID
	updated.CreatedAt = employee.CreatedAt

	if err := db.DB.Save(&updated).Error; err != nil {
		log.Printf("Failed to update employee: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	profile, err := services.BuildEmployeeResponse(db.DB, updated)

	if err != nil {
		log.Printf("Failed to build employee response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func DeleteEmployee(ctx *gin.Context) {
	employeeID, err := uuid.Parse(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
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

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		associations := []interface{}{
			&models.EmployeeInterest{},
			&models.EmployeeTechnology{},
			&models.EmployeeProject{},
			&models.EventAttendee{},
			&models.NotificationRecipient{},
		}

		for _, association := range associations {
			if err := tx.Where("employee_id = ?", employeeID).Delete(association).Error; err != nil {
				return err
			}
		}

		// Events the employee owns go with them, so listings never hit
		// a dangling owner reference.
		var ownedEventIDs []uuid.UUID

		if err := tx.Model(&models.Event{}).
			Where("owner_id = ?", employeeID).
			Pluck("id", &ownedEventIDs).Error; err != nil {
			return err
		}

		if len(ownedEventIDs) > 0 {
			if err := tx.Where("event_id IN ?", ownedEventIDs).Delete(&models.EventAttendee{}).Error; err != nil {
				return err
			}

			if err := tx.Where("id IN ?", ownedEventIDs).Delete(&models.Event{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.User{}).Error; err != nil {
			return err
		}

		return tx.Delete(&employee).Error
	})

	if err != nil {
		log.Printf("Failed to delete employee: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// contactFieldTaken returns the name of the first contact field already
// used by another employee, or "" when all three are free. Uniqueness is
// enforced here rather than by a schema constraint.
func contactFieldTaken(employee models.Employee, excludeID *uuid.UUID) (string, error) {
	checks := []struct {
		field string
		value string
	}{
		{"email", employee.Email},
		{"phone", employee.Phone},
		{"telegram", employee.Telegram},
	}

	for _, check := range checks {
		query := db.DB.Model(&models.Employee{}).Where(check.field+" = ?", check.value)

		if excludeID != nil {
			query = query.Where("id <> ?", *excludeID)
		}

		var count int64

		if err := query.Count(&count).Error; err != nil {
			return "", err
		}

		if count > 0 {
			return check.field, nil
		}
	}

	return "", nil
}

func paginationParams(ctx *gin.Context) (int, int) {
	skip, err := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	return skip, limit
}
