package services

import (
	"testing"
	"time"

	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbc, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, dbc.AutoMigrate(
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
	))

	return dbc
}

func createEmployee(t *testing.T, dbc *gorm.DB, firstName, lastName, city string) models.Employee {
	t.Helper()

	employee := models.Employee{
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		Email:       firstName + "." + lastName + "@example.com",
		Phone:       "+100000" + firstName,
		Telegram:    "@" + firstName,
		City:        city,
	}

	require.NoError(t, dbc.Create(&employee).Error)
	return employee
}

func createInterest(t *testing.T, dbc *gorm.DB, name string) models.Interest {
	t.Helper()

	interest := models.Interest{Name: name}
	require.NoError(t, dbc.Create(&interest).Error)
	return interest
}

func createRank(t *testing.T, dbc *gorm.DB, name string) models.Rank {
	t.Helper()

	rank := models.Rank{Name: name}
	require.NoError(t, dbc.Create(&rank).Error)
	return rank
}

func createRole(t *testing.T, dbc *gorm.DB, name string) models.Role {
	t.Helper()

	role := models.Role{Name: name}
	require.NoError(t, dbc.Create(&role).Error)
	return role
}

func createTechnology(t *testing.T, dbc *gorm.DB, name string) models.Technology {
	t.Helper()

	technology := models.Technology{Name: name}
	require.NoError(t, dbc.Create(&technology).Error)
	return technology
}

func createProject(t *testing.T, dbc *gorm.DB, name string) models.Project {
	t.Helper()

	project := models.Project{Name: name}
	require.NoError(t, dbc.Create(&project).Error)
	return project
}

func createEventType(t *testing.T, dbc *gorm.DB, name string) models.EventType {
	t.Helper()

	eventType := models.EventType{Name: name}
	require.NoError(t, dbc.Create(&eventType).Error)
	return eventType
}

func createEvent(t *testing.T, dbc *gorm.DB, name string, owner models.Employee, eventType models.EventType, date time.Time) models.Event {
	t.Helper()

	event := models.Event{
		Name:        name,
		Date:        date,
		Place:       "HQ",
		OwnerID:     owner.ID,
		EventTypeID: eventType.ID,
	}

	require.NoError(t, dbc.Create(&event).Error)
	return event
}
