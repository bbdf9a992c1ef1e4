package db

import (
	"github.com/staffhub-dev/staffhub/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.SystemRole{},
		&models.Department{},
		&models.Position{},
		&models.Rank{},
		&models.Interest{},
		&models.EventType{},
		&models.Project{},
		&models.Role{},
		&models.Technology{},
		&models.Employee{},
		&models.User{},
		&models.EmployeeInterest{},
		&models.EmployeeTechnology{},
		&models.EmployeeProject{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Notification{},
		&models.NotificationRecipient{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedReferenceData inserts the baseline taxonomy rows registration
// relies on. Tables that already hold rows are left alone.
func SeedReferenceData() error {
	var roleCount int64

	if err := DB.Model(&models.SystemRole{}).Count(&roleCount).Error; err != nil {
		return err
	}

	if roleCount == 0 {
		roles := []models.SystemRole{
			{Name: "admin"},
			{Name: "employee"},
			{Name: "hr"},
		}

		if err := DB.Create(&roles).Error; err != nil {
			return err
		}
	}

	var rankCount int64

	if err := DB.Model(&models.Rank{}).Count(&rankCount).Error; err != nil {
		return err
	}

	if rankCount == 0 {
		ranks := []models.Rank{
			{Name: "Junior"},
			{Name: "Middle"},
			{Name: "Senior"},
		}

		if err := DB.Create(&ranks).Error; err != nil {
			return err
		}
	}

	return nil
}
