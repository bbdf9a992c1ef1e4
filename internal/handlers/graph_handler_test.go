package handlers_test

import (
	"net/http"
	"testing"

	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphUnknownTypeRejected(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "alice")
	token := loginUser(t, r, "alice")

	recorder := performJSON(t, r, http.MethodGet, "/api/v1/graph/planets", token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDepartmentGraph(t *testing.T) {
	r := setupServer(t)

	aliceID := registerUser(t, r, "alice")
	registerUser(t, r, "bob")
	token := loginUser(t, r, "alice")

	department := models.Department{Name: "Engineering"}
	require.NoError(t, db.DB.Create(&department).Error)
	require.NoError(t, db.DB.Model(&models.Employee{}).
		Where("id = ?", aliceID).
		Update("department_id", department.ID).Error)

	recorder := performJSON(t, r, http.MethodGet, "/api/v1/graph/departments", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	nodes := body["nodes"].([]interface{})
	links := body["links"].([]interface{})

	// Department node plus both employees, but only one membership edge.
	assert.Len(t, nodes, 3)
	require.Len(t, links, 1)

	link := links[0].(map[string]interface{})
	assert.Equal(t, department.ID.String(), link["source"])
	assert.Equal(t, aliceID.String(), link["target"])
}

func TestCityGraphDedupesCityNodes(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "alice")
	registerUser(t, r, "bob")
	token := loginUser(t, r, "alice")

	recorder := performJSON(t, r, http.MethodGet, "/api/v1/graph/cities", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	nodes := body["nodes"].([]interface{})
	links := body["links"].([]interface{})

	// Both registered employees live in Moscow: one city node, two
	// employee nodes, two edges.
	assert.Len(t, nodes, 3)
	assert.Len(t, links, 2)
}

func TestStackGraphLinksTechnologyHolders(t *testing.T) {
	r := setupServer(t)

	aliceID := registerUser(t, r, "alice")
	token := loginUser(t, r, "alice")

	golang := models.Technology{Name: "Golang"}
	require.NoError(t, db.DB.Create(&golang).Error)

	var senior models.Rank
	require.NoError(t, db.DB.First(&senior, "name = ?", "Senior").Error)

	require.NoError(t, db.DB.Create(&models.EmployeeTechnology{
		EmployeeID:   aliceID,
		TechnologyID: golang.ID,
		RankID:       senior.ID,
	}).Error)

	recorder := performJSON(t, r, http.MethodGet, "/api/v1/graph/stacks", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	links := body["links"].([]interface{})
	require.Len(t, links, 1)

	link := links[0].(map[string]interface{})
	assert.Equal(t, golang.ID.String(), link["source"])
	assert.Equal(t, aliceID.String(), link["target"])
}
