package services

import (
	"testing"
	"time"

	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEventsNewestFirst(t *testing.T) {
	dbc := openTestDB(t)

	owner := createEmployee(t, dbc, "Anna", "Smirnova", "Moscow")
	meetup := createEventType(t, dbc, "Meetup")

	createEvent(t, dbc, "January", owner, meetup, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	createEvent(t, dbc, "March", owner, meetup, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	page, err := ListEvents(dbc, "", nil, 0, 10)
	require.NoError(t, err)

	require.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, "March", page.Events[0].Name)
	assert.Equal(t, "January", page.Events[1].Name)
}

func TestListEventsSearchCoversTypeName(t *testing.T) {
	dbc := openTestDB(t)

	owner := createEmployee(t, dbc, "Anna", "Smirnova", "Moscow")
	meetup := createEventType(t, dbc, "Meetup")
	training := createEventType(t, dbc, "Training")

	createEvent(t, dbc, "Go evening", owner, meetup, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	createEvent(t, dbc, "Onboarding", owner, training, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))

	page, err := ListEvents(dbc, "train", nil, 0, 10)
	require.NoError(t, err)

	require.Equal(t, int64(1), page.TotalCount)
	assert.Equal(t, "Onboarding", page.Events[0].Name)
}

func TestListEventsScopeKeepsOwnedAndAttended(t *testing.T) {
	dbc := openTestDB(t)

	anna := createEmployee(t, dbc, "Anna", "Smirnova", "Moscow")
	boris := createEmployee(t, dbc, "Boris", "Petrov", "Kazan")
	clara := createEmployee(t, dbc, "Clara", "Ivanova", "Tula")
	meetup := createEventType(t, dbc, "Meetup")

	owned := createEvent(t, dbc, "Owned", anna, meetup, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	attended := createEvent(t, dbc, "Attended", boris, meetup, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))
	createEvent(t, dbc, "Unrelated", clara, meetup, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, dbc.Create(&models.EventAttendee{EventID: attended.ID, EmployeeID: anna.ID}).Error)

	page, err := ListEvents(dbc, "", &EventScope{EmployeeID: anna.ID}, 0, 10)
	require.NoError(t, err)

	require.Equal(t, int64(2), page.TotalCount)

	names := []string{page.Events[0].Name, page.Events[1].Name}
	assert.ElementsMatch(t, []string{owned.Name, attended.Name}, names)
}

func TestBuildEventResponseIncludesAttendees(t *testing.T) {
	dbc := openTestDB(t)

	anna := createEmployee(t, dbc, "Anna", "Smirnova", "Moscow")
	boris := createEmployee(t, dbc, "Boris", "Petrov", "Kazan")
	meetup := createEventType(t, dbc, "Meetup")

	event := createEvent(t, dbc, "Go evening", anna, meetup, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, dbc.Create(&models.EventAttendee{EventID: event.ID, EmployeeID: boris.ID}).Error)

	response, err := BuildEventResponse(dbc, event)
	require.NoError(t, err)

	assert.Equal(t, "Meetup", response.EventType.Name)
	assert.Equal(t, anna.ID, response.Owner.ID)
	require.Len(t, response.Attendees, 1)
	assert.Equal(t, boris.ID, response.Attendees[0].ID)
}
