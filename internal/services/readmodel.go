package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/types"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// BuildEmployeeResponse assembles the nested read-model for one employee:
// position, department, and the complete interest/technology/project sets.
// A dangling position or department reference yields a nil sub-object
// rather than an error.
func BuildEmployeeResponse(dbc *gorm.DB, emp models.Employee) (types.EmployeeResponse, error) {
	response := types.EmployeeResponse{
		ID:           emp.ID,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		MiddleName:   emp.MiddleName,
		DateOfBirth:  emp.DateOfBirth.Format(dateLayout),
		Email:        emp.Email,
		Phone:        emp.Phone,
		Telegram:     emp.Telegram,
		City:         emp.City,
		Interests:    []types.InterestResponse{},
		Technologies: []types.TechnologyResponse{},
		Projects:     []types.ProjectResponse{},
	}

	if emp.PositionID != nil {
		var position models.Position

		err := dbc.First(&position, "id = ?", *emp.PositionID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return types.EmployeeResponse{}, err
		}
		if err == nil {
			response.Position = &types.PositionResponse{ID: position.ID, Name: position.Name}
		}
	}

	if emp.DepartmentID != nil {
		var department models.Department

		err := dbc.First(&department, "id = ?", *emp.DepartmentID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return types.EmployeeResponse{}, err
		}
		if err == nil {
			response.Department = &types.DepartmentResponse{ID: department.ID, Name: department.Name}
		}
	}

	var interests []models.Interest

	if err := dbc.
		Joins("JOIN employee_interests ON employee_interests.interest_id = interests.id").
		Where("employee_interests.employee_id = ?", emp.ID).
		Order("interests.id").
		Find(&interests).Error; err != nil {
		return types.EmployeeResponse{}, err
	}

	for _, interest := range interests {
		response.Interests = append(response.Interests, types.InterestResponse{
			ID:   interest.ID,
			Name: interest.Name,
		})
	}

	var technologies []struct {
		ID       uuid.UUID
		Name     string
		RankID   uuid.UUID
		RankName string
	}

	if err := dbc.Table("technologies").
		Select("technologies.id, technologies.name, ranks.id AS rank_id, ranks.name AS rank_name").
		Joins("JOIN employee_technologies ON employee_technologies.technology_id = technologies.id").
		Joins("JOIN ranks ON ranks.id = employee_technologies.rank_id").
		Where("employee_technologies.employee_id = ?", emp.ID).
		Order("technologies.id").
		Scan(&technologies).Error; err != nil {
		return types.EmployeeResponse{}, err
	}

	for _, tech := range technologies {
		response.Technologies = append(response.Technologies, types.TechnologyResponse{
			ID:   tech.ID,
			Name: tech.Name,
			Rank: types.RankResponse{ID: tech.RankID, Name: tech.RankName},
		})
	}

	var projects []struct {
		ID       uuid.UUID
		Name     string
		RoleID   uuid.UUID
		RoleName string
	}

	if err := dbc.Table("projects").
		Select("projects.id, projects.name, roles.id AS role_id, roles.name AS role_name").
		Joins("JOIN employee_projects ON employee_projects.project_id = projects.id").
		Joins("JOIN roles ON roles.id = employee_projects.role_id").
		Where("employee_projects.employee_id = ?", emp.ID).
		Order("projects.id").
		Scan(&projects).Error; err != nil {
		return types.EmployeeResponse{}, err
	}

	for _, project := range projects {
		response.Projects = append(response.Projects, types.ProjectResponse{
			ID:   project.ID,
			Name: project.Name,
			Role: types.RoleResponse{ID: project.RoleID, Name: project.RoleName},
		})
	}

	return response, nil
}

func EmployeeSummaryOf(emp models.Employee) types.EmployeeSummary {
	return types.EmployeeSummary{
		ID:        emp.ID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		City:      emp.City,
	}
}
