package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEmployeesOverHTTP(t *testing.T) {
	r := setupServer(t)

	aliceID := registerUser(t, r, "alice")
	registerUser(t, r, "bob")
	token := loginUser(t, r, "alice")

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/employees/search", token, map[string]interface{}{
		"emails": []string{"alice@"},
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["total_count"])

	employees := body["employees"].([]interface{})
	require.Len(t, employees, 1)
	assert.Equal(t, aliceID.String(), employees[0].(map[string]interface{})["id"])
}

func TestSearchEmployeesPaginationParams(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "alice")
	registerUser(t, r, "bob")
	registerUser(t, r, "carol")
	token := loginUser(t, r, "alice")

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/employees/search?skip=0&limit=2", token, map[string]interface{}{})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(3), body["total_count"])
	assert.Equal(t, float64(2), body["total_pages"])
	assert.Len(t, body["employees"].([]interface{}), 2)
}

func TestGetEmployeeNotFound(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "alice")
	token := loginUser(t, r, "alice")

	recorder := performJSON(t, r, http.MethodGet, "/api/v1/employees/00000000-0000-0000-0000-000000000001", token, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = performJSON(t, r, http.MethodGet, "/api/v1/employees/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateEmployeeRejectsTakenContact(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "alice")
	bobID := registerUser(t, r, "bob")
	token := loginUser(t, r, "alice")

	payload := registerPayload("bob")["employee"].(map[string]interface{})
	payload["email"] = "alice@example.com"

	recorder := performJSON(t, r, http.MethodPut, "/api/v1/employees/"+bobID.String(), token, payload)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestDeleteEmployeeRemovesAccount(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "alice")
	bobID := registerUser(t, r, "bob")
	aliceToken := loginUser(t, r, "alice")
	bobToken := loginUser(t, r, "bob")

	recorder := performJSON(t, r, http.MethodDelete, "/api/v1/employees/"+bobID.String(), aliceToken, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = performJSON(t, r, http.MethodGet, "/api/v1/employees/"+bobID.String(), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// The credential row went with the profile, so bob's token no longer
	// resolves to a user.
	recorder = performJSON(t, r, http.MethodGet, "/api/v1/auth/me", bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestDeleteEmployeeCascadesOwnedEvents(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "alice")
	bobID := registerUser(t, r, "bob")
	aliceToken := loginUser(t, r, "alice")
	bobToken := loginUser(t, r, "bob")

	meetup := createEventType(t, "Meetup")
	eventID := createEventViaAPI(t, r, bobToken, meetup.ID, nil)

	recorder := performJSON(t, r, http.MethodPost, "/api/v1/events/"+eventID.String()+"/join", aliceToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performJSON(t, r, http.MethodDelete, "/api/v1/employees/"+bobID.String(), aliceToken, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	// The owner's events went with them; the listing stays servable and
	// empty rather than tripping over a dangling owner.
	recorder = performJSON(t, r, http.MethodGet, "/api/v1/events", aliceToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(0), decodeBody(t, recorder)["total_count"])

	recorder = performJSON(t, r, http.MethodGet, "/api/v1/events/"+eventID.String(), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
