package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmployeeResponseWithoutReferences(t *testing.T) {
	dbc := openTestDB(t)

	employee := createEmployee(t, dbc, "Anna", "Smirnova", "Moscow")

	response, err := BuildEmployeeResponse(dbc, employee)
	require.NoError(t, err)

	assert.Nil(t, response.Position)
	assert.Nil(t, response.Department)
	assert.Empty(t, response.Interests)
	assert.Empty(t, response.Technologies)
	assert.Empty(t, response.Projects)
	assert.Equal(t, "1990-01-15", response.DateOfBirth)
}

func TestBuildEmployeeResponseDanglingDepartmentIsNil(t *testing.T) {
	dbc := openTestDB(t)

	employee := createEmployee(t, dbc, "Anna", "Smirnova", "Moscow")

	ghost := uuid.New()
	require.NoError(t, dbc.Model(&models.Employee{}).
		Where("id = ?", employee.ID).
		Update("department_id", ghost).Error)
	require.NoError(t, dbc.First(&employee, "id = ?", employee.ID).Error)

	response, err := BuildEmployeeResponse(dbc, employee)
	require.NoError(t, err)
	assert.Nil(t, response.Department)
}

func TestBuildEmployeeResponseNestedSets(t *testing.T) {
	dbc := openTestDB(t)

	employee := createEmployee(t, dbc, "Anna", "Smirnova", "Moscow")

	position := models.Position{Name: "Engineer"}
	require.NoError(t, dbc.Create(&position).Error)
	require.NoError(t, dbc.Model(&models.Employee{}).
		Where("id = ?", employee.ID).
		Update("position_id", position.ID).Error)
	require.NoError(t, dbc.First(&employee, "id = ?", employee.ID).Error)

	golang := createTechnology(t, dbc, "Golang")
	senior := createRank(t, dbc, "Senior")
	require.NoError(t, dbc.Create(&models.EmployeeTechnology{
		EmployeeID:   employee.ID,
		TechnologyID: golang.ID,
		RankID:       senior.ID,
	}).Error)

	project := createProject(t, dbc, "Directory")
	developer := createRole(t, dbc, "Developer")
	require.NoError(t, dbc.Create(&models.EmployeeProject{
		EmployeeID: employee.ID,
		ProjectID:  project.ID,
		RoleID:     developer.ID,
	}).Error)

	response, err := BuildEmployeeResponse(dbc, employee)
	require.NoError(t, err)

	require.NotNil(t, response.Position)
	assert.Equal(t, "Engineer", response.Position.Name)

	require.Len(t, response.Technologies, 1)
	assert.Equal(t, "Senior", response.Technologies[0].Rank.Name)

	require.Len(t, response.Projects, 1)
	assert.Equal(t, "Developer", response.Projects[0].Role.Name)
}
