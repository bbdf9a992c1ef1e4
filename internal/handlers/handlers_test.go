package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/auth"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/router"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires the full HTTP surface against a fresh in-memory
// database, so tests exercise routing, middleware and handlers together.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	dbc, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db.DB = dbc
	require.NoError(t, db.MigrateDatabase())
	require.NoError(t, db.SeedReferenceData())

	return router.NewRouter()
}

func performJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, recorder *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func registerPayload(username string) map[string]interface{} {
	return map[string]interface{}{
		"username": username,
		"password": "secret-password",
		"employee": map[string]interface{}{
			"first_name":    "Test",
			"last_name":     "User",
			"date_of_birth": "1990-01-15",
			"email":         username + "@example.com",
			"phone":         "+7-" + username,
			"telegram":      "@" + username,
			"city":          "Moscow",
		},
	}
}

// registerUser creates an account over HTTP and returns the employee id.
func registerUser(t *testing.T, r *gin.Engine, username string) uuid.UUID {
	t.Helper()

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", registerPayload(username))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	employee, ok := body["employee"].(map[string]interface{})
	require.True(t, ok)

	employeeID, err := uuid.Parse(employee["id"].(string))
	require.NoError(t, err)
	return employeeID
}

func loginUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": username,
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	token, ok := decodeBody(t, recorder)["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func listNotifications(t *testing.T, r *gin.Engine, token string) []map[string]interface{} {
	t.Helper()

	recorder := performJSON(t, r, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	raw, ok := decodeBody(t, recorder)["notifications"].([]interface{})
	require.True(t, ok)

	items := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		items = append(items, item.(map[string]interface{}))
	}
	return items
}

func createEventType(t *testing.T, name string) models.EventType {
	t.Helper()

	eventType := models.EventType{Name: name}
	require.NoError(t, db.DB.Create(&eventType).Error)
	return eventType
}
