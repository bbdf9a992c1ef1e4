package services

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/types"
	"gorm.io/gorm"
)

// EmployeeFilter is the structured search input: one named field per
// filter key. Text fields match case-insensitive substrings, OR within
// a key; id fields match exact membership. Keys combine with AND.
// FreeText is independently OR-ed across every employee text field and
// every joined taxonomy name, then ANDed with the rest.
type EmployeeFilter struct {
	FreeText      string      `json:"free_text"`
	FirstNames    []string    `json:"first_names"`
	LastNames     []string    `json:"last_names"`
	MiddleNames   []string    `json:"middle_names"`
	Emails        []string    `json:"emails"`
	Phones        []string    `json:"phones"`
	Telegrams     []string    `json:"telegrams"`
	Cities        []string    `json:"cities"`
	PositionIDs   []uuid.UUID `json:"position_ids"`
	DepartmentIDs []uuid.UUID `json:"department_ids"`
	InterestIDs   []uuid.UUID `json:"interest_ids"`
	TechnologyIDs []uuid.UUID `json:"technology_ids"`
	ProjectIDs    []uuid.UUID `json:"project_ids"`
}

var employeeTextColumns = []string{
	"employees.first_name",
	"employees.last_name",
	"employees.middle_name",
	"employees.email",
	"employees.phone",
	"employees.telegram",
	"employees.city",
}

var taxonomyTextColumns = []string{
	"interests.name",
	"technologies.name",
	"ranks.name",
	"projects.name",
	"roles.name",
}

// SearchEmployees pages over the distinct employees matching the filter.
// Joining a many-valued taxonomy can multiply rows, so both the count and
// the page are taken over DISTINCT employee ids before the read-models
// are assembled. The association sets on the returned models are complete,
// not restricted to whichever filter value matched.
func SearchEmployees(dbc *gorm.DB, filter EmployeeFilter, skip, limit int) (types.PaginatedEmployees, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 1
	}

	var total int64

	if err := buildSearchQuery(dbc, filter).
		Distinct("employees.id").
		Count(&total).Error; err != nil {
		return types.PaginatedEmployees{}, err
	}

	var ids []uuid.UUID

	if err := buildSearchQuery(dbc, filter).
		Distinct("employees.id").
		Order("employees.id").
		Offset(skip).
		Limit(limit).
		Pluck("employees.id", &ids).Error; err != nil {
		return types.PaginatedEmployees{}, err
	}

	page := types.PaginatedEmployees{
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Skip:       skip,
		Limit:      limit,
		Employees:  []types.EmployeeResponse{},
	}

	if len(ids) == 0 {
		return page, nil
	}

	var employees []models.Employee

	if err := dbc.Where("id IN ?", ids).Order("id").Find(&employees).Error; err != nil {
		return types.PaginatedEmployees{}, err
	}

	for _, emp := range employees {
		response, err := BuildEmployeeResponse(dbc, emp)
		if err != nil {
			return types.PaginatedEmployees{}, err
		}
		page.Employees = append(page.Employees, response)
	}

	return page, nil
}

func buildSearchQuery(dbc *gorm.DB, filter EmployeeFilter) *gorm.DB {
	query := dbc.Model(&models.Employee{})

	freeText := strings.TrimSpace(filter.FreeText)

	needInterests := len(filter.InterestIDs) > 0 || freeText != ""
	needTechnologies := len(filter.TechnologyIDs) > 0 || freeText != ""
	needProjects := len(filter.ProjectIDs) > 0 || freeText != ""

	if needInterests {
		query = query.
			Joins("LEFT JOIN employee_interests ON employee_interests.employee_id = employees.id").
			Joins("LEFT JOIN interests ON interests.id = employee_interests.interest_id")
	}

	if needTechnologies {
		query = query.
			Joins("LEFT JOIN employee_technologies ON employee_technologies.employee_id = employees.id").
			Joins("LEFT JOIN technologies ON technologies.id = employee_technologies.technology_id").
			Joins("LEFT JOIN ranks ON ranks.id = employee_technologies.rank_id")
	}

	if needProjects {
		query = query.
			Joins("LEFT JOIN employee_projects ON employee_projects.employee_id = employees.id").
			Joins("LEFT JOIN projects ON projects.id = employee_projects.project_id").
			Joins("LEFT JOIN roles ON roles.id = employee_projects.role_id")
	}

	query = applySubstringFilter(query, "employees.first_name", filter.FirstNames)
	query = applySubstringFilter(query, "employees.last_name", filter.LastNames)
	query = applySubstringFilter(query, "employees.middle_name", filter.MiddleNames)
	query = applySubstringFilter(query, "employees.email", filter.Emails)
	query = applySubstringFilter(query, "employees.phone", filter.Phones)
	query = applySubstringFilter(query, "employees.telegram", filter.Telegrams)
	query = applySubstringFilter(query, "employees.city", filter.Cities)

	if len(filter.PositionIDs) > 0 {
		query = query.Where("employees.position_id IN ?", filter.PositionIDs)
	}

	if len(filter.DepartmentIDs) > 0 {
		query = query.Where("employees.department_id IN ?", filter.DepartmentIDs)
	}

	if len(filter.InterestIDs) > 0 {
		query = query.Where("employee_interests.interest_id IN ?", filter.InterestIDs)
	}

	if len(filter.TechnologyIDs) > 0 {
		query = query.Where("employee_technologies.technology_id IN ?", filter.TechnologyIDs)
	}

	if len(filter.ProjectIDs) > 0 {
		query = query.Where("employee_projects.project_id IN ?", filter.ProjectIDs)
	}

	if freeText != "" {
		columns := make([]string, 0, len(employeeTextColumns)+len(taxonomyTextColumns))
		columns = append(columns, employeeTextColumns...)
		columns = append(columns, taxonomyTextColumns...)

		pattern := "%" + strings.ToLower(freeText) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))

		for _, column := range columns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}

		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	return query
}

// applySubstringFilter ANDs one filter key onto the query: the values
// OR together, each as a case-insensitive substring match.
func applySubstringFilter(query *gorm.DB, column string, values []string) *gorm.DB {
	cleaned := make([]string, 0, len(values))

	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	if len(cleaned) == 0 {
		return query
	}

	clauses := make([]string, 0, len(cleaned))
	args := make([]interface{}, 0, len(cleaned))

	for _, value := range cleaned {
		clauses = append(clauses, "LOWER("+column+") LIKE ?")
		args = append(args, "%"+strings.ToLower(value)+"%")
	}

	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
