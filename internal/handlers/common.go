package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/models"
)

// Reference list endpoints backing dropdowns and filter pickers.

func ListCities(ctx *gin.Context) {
	var cities []string

	if err := db.DB.Model(&models.Employee{}).
		Distinct("city").
		Order("city").
		Pluck("city", &cities).Error; err != nil {
		log.Printf("Failed to list cities: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, cities)
}

func ListPositions(ctx *gin.Context) { listReference(ctx, &[]models.Position{}) }

func ListDepartments(ctx *gin.Context) { listReference(ctx, &[]models.Department{}) }

func ListProjects(ctx *gin.Context) { listReference(ctx, &[]models.Project{}) }

func ListTechnologies(ctx *gin.Context) { listReference(ctx, &[]models.Technology{}) }

func ListInterests(ctx *gin.Context) { listReference(ctx, &[]models.Interest{}) }

func ListRanks(ctx *gin.Context) { listReference(ctx, &[]models.Rank{}) }

func ListRoles(ctx *gin.Context) { listReference(ctx, &[]models.Role{}) }

func ListEventTypes(ctx *gin.Context) { listReference(ctx, &[]models.EventType{}) }

func listReference(ctx *gin.Context, dest interface{}) {
	if err := db.DB.Order("name").Find(dest).Error; err != nil {
		log.Printf("Failed to list reference data: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, dest)
}
