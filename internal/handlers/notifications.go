package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/services"
	"github.com/staffhub-dev/staffhub/internal/utils"
	"gorm.io/gorm"
)

type CreateNotificationRequest struct {
	Content      string      `json:"content" binding:"required"`
	RecipientIDs []uuid.UUID `json:"recipient_ids" binding:"required,min=1"`
}

type MarkReadRequest struct {
	NotificationIDs []uuid.UUID `json:"notification_ids" binding:"required,min=1"`
}

func CreateNotification(ctx *gin.Context) {
	var req CreateNotificationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	for _, id := range req.RecipientIDs {
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

	notificationID, err := services.Notify(db.DB, req.Content, req.RecipientIDs)

	if err != nil {
		log.Printf("Failed to create notification: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"notification_id": notificationID})
}

func ListMyNotifications(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := services.ListNotifications(db.DB, employeeID)

	if err != nil {
		log.Printf("Failed to list notifications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"notifications": items})
}

func MarkNotificationsRead(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req MarkReadRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updated, err := services.MarkRead(db.DB, employeeID, req.NotificationIDs)

	if err != nil {
		log.Printf("Failed to mark notifications read: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"updated": updated})
}
