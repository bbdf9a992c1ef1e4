package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotificationFansOut(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "sender")
	annaID := registerUser(t, r, "anna")
	borisID := registerUser(t, r, "boris")
	senderToken := loginUser(t, r, "sender")
	annaToken := loginUser(t, r, "anna")
	borisToken := loginUser(t, r, "boris")

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/notifications", senderToken, map[string]interface{}{
		"content":       "All hands on Friday",
		"recipient_ids": []uuid.UUID{annaID, borisID},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.NotEmpty(t, decodeBody(t, recorder)["notification_id"])

	require.Len(t, listNotifications(t, r, annaToken), 1)
	require.Len(t, listNotifications(t, r, borisToken), 1)
	assert.Empty(t, listNotifications(t, r, senderToken))
}

func TestCreateNotificationRejectsUnknownRecipient(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "sender")
	senderToken := loginUser(t, r, "sender")

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/notifications", senderToken, map[string]interface{}{
		"content":       "Hello",
		"recipient_ids": []uuid.UUID{uuid.New()},
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMarkNotificationsReadIsPerRecipient(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "sender")
	annaID := registerUser(t, r, "anna")
	borisID := registerUser(t, r, "boris")
	senderToken := loginUser(t, r, "sender")
	annaToken := loginUser(t, r, "anna")
	borisToken := loginUser(t, r, "boris")

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/notifications", senderToken, map[string]interface{}{
		"content":       "Shared notice",
		"recipient_ids": []uuid.UUID{annaID, borisID},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	notificationID := decodeBody(t, recorder)["notification_id"].(string)

	recorder = performJSON(t, r, http.MethodPost, "/api/v1/notifications/read", annaToken, map[string]interface{}{
		"notification_ids": []string{notificationID},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(1), decodeBody(t, recorder)["updated"])

	annaItems := listNotifications(t, r, annaToken)
	require.Len(t, annaItems, 1)
	assert.Equal(t, true, annaItems[0]["is_shown"])

	// Boris's copy of the same notification stays unread.
	borisItems := listNotifications(t, r, borisToken)
	require.Len(t, borisItems, 1)
	assert.Equal(t, false, borisItems[0]["is_shown"])
}

func TestMarkNotificationsReadIgnoresForeignIDs(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "anna")
	annaToken := loginUser(t, r, "anna")

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/notifications/read", annaToken, map[string]interface{}{
		"notification_ids": []string{uuid.NewString()},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(0), decodeBody(t, recorder)["updated"])
}
