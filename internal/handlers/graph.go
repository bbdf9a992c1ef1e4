package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/types"
)

// GetGraph projects the directory into node/link form for one of six
// fixed groupings. Employee nodes dedupe even when an employee holds
// several assignments in the same category.
func GetGraph(ctx *gin.Context) {
	var (
		view types.GraphView
		err  error
	)

	switch ctx.Param("graph_type") {
	case "departments":
		view, err = departmentGraph()
	case "roles":
		view, err = roleGraph()
	case "cities":
		view, err = cityGraph()
	case "teams":
		view, err = teamGraph()
	case "stacks":
		view, err = stackGraph()
	case "interests":
		view, err = interestGraph()
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown graph type"})
		return
	}

	if err != nil {
		log.Printf("Failed to build graph: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func employeeNodeName(emp models.Employee) string {
	return emp.LastName + " " + emp.FirstName
}

func cityNodeID(city string) string {
	return strings.ReplaceAll(city, " ", "_")
}

type graphBuilder struct {
	view  types.GraphView
	seen  map[string]struct{}
	group string
}

func newGraphBuilder(group string) *graphBuilder {
	return &graphBuilder{
		view: types.GraphView{
			Nodes: []types.GraphNode{},
			Links: []types.GraphLink{},
		},
		seen:  make(map[string]struct{}),
		group: group,
	}
}

func (b *graphBuilder) addCategoryNode(id, name string) {
	b.addNode(id, name, b.group)
}

func (b *graphBuilder) addEmployeeNode(emp models.Employee) {
	b.addNode(emp.ID.String(), employeeNodeName(emp), "employee")
}

func (b *graphBuilder) addNode(id, name, group string) {
	if _, ok := b.seen[id]; ok {
		return
	}
	b.seen[id] = struct{}{}
	b.view.Nodes = append(b.view.Nodes, types.GraphNode{ID: id, Name: name, Group: group})
}

func (b *graphBuilder) addLink(source, target string) {
	b.view.Links = append(b.view.Links, types.GraphLink{Source: source, Target: target})
}

func departmentGraph() (types.GraphView, error) {
	var departments []models.Department

	if err := db.DB.Find(&departments).Error; err != nil {
		return types.GraphView{}, err
	}

	var employees []models.Employee

	if err := db.DB.Find(&employees).Error; err != nil {
		return types.GraphView{}, err
	}

	builder := newGraphBuilder("department")

	for _, department := range departments {
		builder.addCategoryNode(department.ID.String(), department.Name)
	}

	for _, emp := range employees {
		builder.addEmployeeNode(emp)

		if emp.DepartmentID != nil {
			builder.addLink(emp.DepartmentID.String(), emp.ID.String())
		}
	}

	return builder.view, nil
}

func roleGraph() (types.GraphView, error) {
	var roles []models.Role

	if err := db.DB.Find(&roles).Error; err != nil {
		return types.GraphView{}, err
	}

	builder := newGraphBuilder("role")

	for _, role := range roles {
		builder.addCategoryNode(role.ID.String(), role.Name)
	}

	return assignmentLinks(builder, func(a models.EmployeeProject) uuid.UUID { return a.RoleID })
}

func teamGraph() (types.GraphView, error) {
	var projects []models.Project

	if err := db.DB.Find(&projects).Error; err != nil {
		return types.GraphView{}, err
	}

	builder := newGraphBuilder("project")

	for _, project := range projects {
		builder.addCategoryNode(project.ID.String(), project.Name)
	}

	return assignmentLinks(builder, func(a models.EmployeeProject) uuid.UUID { return a.ProjectID })
}

// assignmentLinks adds one employee node and one category→employee edge
// per project assignment; the category id is chosen by the caller.
func assignmentLinks(builder *graphBuilder, categoryID func(models.EmployeeProject) uuid.UUID) (types.GraphView, error) {
	var assignments []models.EmployeeProject

	if err := db.DB.Find(&assignments).Error; err != nil {
		return types.GraphView{}, err
	}

	employees, err := employeesByID()
	if err != nil {
		return types.GraphView{}, err
	}

	for _, assignment := range assignments {
		emp, ok := employees[assignment.EmployeeID]
		if !ok {
			continue
		}

		builder.addEmployeeNode(emp)
		builder.addLink(categoryID(assignment).String(), emp.ID.String())
	}

	return builder.view, nil
}

func cityGraph() (types.GraphView, error) {
	var employees []models.Employee

	if err := db.DB.Find(&employees).Error; err != nil {
		return types.GraphView{}, err
	}

	builder := newGraphBuilder("city")

	for _, emp := range employees {
		builder.addCategoryNode(cityNodeID(emp.City), emp.City)
	}

	for _, emp := range employees {
		builder.addEmployeeNode(emp)
		builder.addLink(cityNodeID(emp.City), emp.ID.String())
	}

	return builder.view, nil
}

func stackGraph() (types.GraphView, error) {
	var technologies []models.Technology

	if err := db.DB.Find(&technologies).Error; err != nil {
		return types.GraphView{}, err
	}

	var assignments []models.EmployeeTechnology

	if err := db.DB.Find(&assignments).Error; err != nil {
		return types.GraphView{}, err
	}

	employees, err := employeesByID()
	if err != nil {
		return types.GraphView{}, err
	}

	builder := newGraphBuilder("tech")

	for _, technology := range technologies {
		builder.addCategoryNode(technology.ID.String(), technology.Name)
	}

	for _, assignment := range assignments {
		emp, ok := employees[assignment.EmployeeID]
		if !ok {
			continue
		}

		builder.addEmployeeNode(emp)
		builder.addLink(assignment.TechnologyID.String(), emp.ID.String())
	}

	return builder.view, nil
}

func interestGraph() (types.GraphView, error) {
	var interests []models.Interest

	if err := db.DB.Find(&interests).Error; err != nil {
		return types.GraphView{}, err
	}

	var assignments []models.EmployeeInterest

	if err := db.DB.Find(&assignments).Error; err != nil {
		return types.GraphView{}, err
	}

	employees, err := employeesByID()
	if err != nil {
		return types.GraphView{}, err
	}

	builder := newGraphBuilder("interest")

	for _, interest := range interests {
		builder.addCategoryNode(interest.ID.String(), interest.Name)
	}

	for _, assignment := range assignments {
		emp, ok := employees[assignment.EmployeeID]
		if !ok {
			continue
		}

		builder.addEmployeeNode(emp)
		builder.addLink(assignment.InterestID.String(), emp.ID.String())
	}

	return builder.view, nil
}

func employeesByID() (map[uuid.UUID]models.Employee, error) {
	var employees []models.Employee

	if err := db.DB.Find(&employees).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Employee, len(employees))

	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	return byID, nil
}
