package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/types"
	"gorm.io/gorm"
)

// Notify writes one notification row plus one unread recipient row per
// employee, all in a single transaction. Duplicate recipient ids collapse
// to one row.
func Notify(dbc *gorm.DB, content string, recipients []uuid.UUID) (uuid.UUID, error) {
	notification := models.Notification{Content: content}

	seen := make(map[uuid.UUID]struct{}, len(recipients))
	unique := make([]uuid.UUID, 0, len(recipients))

	for _, id := range recipients {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	err := dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		if len(unique) == 0 {
			return nil
		}

		rows := make([]models.NotificationRecipient, 0, len(unique))

		for _, employeeID := range unique {
			rows = append(rows, models.NotificationRecipient{
				NotificationID: notification.ID,
				EmployeeID:     employeeID,
				IsShown:        false,
			})
		}

		return tx.Create(&rows).Error
	})

	if err != nil {
		return uuid.Nil, err
	}

	return notification.ID, nil
}

// ListNotifications returns the employee's notifications in creation order
// with their read state.
func ListNotifications(dbc *gorm.DB, employeeID uuid.UUID) ([]types.NotificationItem, error) {
	var rows []struct {
		ID        uuid.UUID
		Content   string
		CreatedAt time.Time
		IsShown   bool
	}

	err := dbc.Table("notifications").
		Select("notifications.id, notifications.content, notifications.created_at, notification_recipients.is_shown").
		Joins("JOIN notification_recipients ON notification_recipients.notification_id = notifications.id").
		Where("notification_recipients.employee_id = ?", employeeID).
		Order("notifications.created_at").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	items := make([]types.NotificationItem, 0, len(rows))

	for _, row := range rows {
		items = append(items, types.NotificationItem{
			ID:        row.ID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			IsShown:   row.IsShown,
		})
	}

	return items, nil
}

// MarkRead flips is_shown for the intersection of the caller's unread
// rows and the supplied ids; ids belonging to someone else or already
// read silently no-op. Returns the number of rows actually flipped.
func MarkRead(dbc *gorm.DB, employeeID uuid.UUID, notificationIDs []uuid.UUID) (int64, error) {
	if len(notificationIDs) == 0 {
		return 0, nil
	}

	result := dbc.Model(&models.NotificationRecipient{}).
		Where("employee_id = ? AND notification_id IN ? AND is_shown = ?", employeeID, notificationIDs, false).
		Update("is_shown", true)

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
