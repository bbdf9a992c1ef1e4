package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/services"
	"github.com/staffhub-dev/staffhub/internal/utils"
)

// Wire shapes for reconciliation batches. An item carries either "id"
// (existing row) or "name" (resolve-or-create); sending both or neither
// is rejected before the batch reaches the service.

type InterestItemRequest struct {
	ID   *uuid.UUID `json:"id"`
	Name *string    `json:"name"`
}

type TechnologyItemRequest struct {
	ID          *uuid.UUID `json:"id"`
	Name        *string    `json:"name"`
	Description string     `json:"description"`
	RankID      uuid.UUID  `json:"rank_id" binding:"required"`
}

type ProjectItemRequest struct {
	ID          *uuid.UUID `json:"id"`
	Name        *string    `json:"name"`
	Description string     `json:"description"`
	RoleID      uuid.UUID  `json:"role_id" binding:"required"`
}

type ReplaceInterestsRequest struct {
	Items []InterestItemRequest `json:"items"`
}

type ReplaceTechnologiesRequest struct {
	Items []TechnologyItemRequest `json:"items" binding:"dive"`
}

type ReplaceProjectsRequest struct {
	Items []ProjectItemRequest `json:"items" binding:"dive"`
}

func (r InterestItemRequest) toItem() (services.InterestItem, bool) {
	if (r.ID == nil) == (r.Name == nil) {
		return services.InterestItem{}, false
	}
	if r.ID != nil {
		return services.InterestItem{Existing: r.ID}, true
	}
	if *r.Name == "" {
		return services.InterestItem{}, false
	}
	return services.InterestItem{New: &services.NewInterest{Name: *r.Name}}, true
}

func (r TechnologyItemRequest) toItem() (services.TechnologyItem, bool) {
	if (r.ID == nil) == (r.Name == nil) {
		return services.TechnologyItem{}, false
	}
	if r.RankID == uuid.Nil {
		return services.TechnologyItem{}, false
	}
	if r.ID != nil {
		return services.TechnologyItem{Existing: &services.ExistingTechnology{ID: *r.ID, RankID: r.RankID}}, true
	}
	if *r.Name == "" {
		return services.TechnologyItem{}, false
	}
	return services.TechnologyItem{New: &services.NewTechnology{
		Name:        *r.Name,
		Description: r.Description,
		RankID:      r.RankID,
	}}, true
}

func (r ProjectItemRequest) toItem() (services.ProjectItem, bool) {
	if (r.ID == nil) == (r.Name == nil) {
		return services.ProjectItem{}, false
	}
	if r.RoleID == uuid.Nil {
		return services.ProjectItem{}, false
	}
	if r.ID != nil {
		return services.ProjectItem{Existing: &services.ExistingProject{ID: *r.ID, RoleID: r.RoleID}}, true
	}
	if *r.Name == "" {
		return services.ProjectItem{}, false
	}
	return services.ProjectItem{New: &services.NewProject{
		Name:        *r.Name,
		Description: r.Description,
		RoleID:      r.RoleID,
	}}, true
}

func ReplaceEmployeeInterests(ctx *gin.Context) {
	employeeID, ok := pathEmployeeID(ctx)
	if !ok {
		return
	}
	replaceInterests(ctx, employeeID)
}

func ReplaceMyInterests(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	replaceInterests(ctx, employeeID)
}

func ReplaceEmployeeTechnologies(ctx *gin.Context) {
	employeeID, ok := pathEmployeeID(ctx)
	if !ok {
		return
	}
	replaceTechnologies(ctx, employeeID)
}

func ReplaceMyTechnologies(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	replaceTechnologies(ctx, employeeID)
}

func ReplaceEmployeeProjects(ctx *gin.Context) {
	employeeID, ok := pathEmployeeID(ctx)
	if !ok {
		return
	}
	replaceProjects(ctx, employeeID)
}

func ReplaceMyProjects(ctx *gin.Context) {
	employeeID, err := utils.GetCurrentEmployeeID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	replaceProjects(ctx, employeeID)
}

func replaceInterests(ctx *gin.Context, employeeID uuid.UUID) {
	var req ReplaceInterestsRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	items := make([]services.InterestItem, 0, len(req.Items))

	for _, raw := range req.Items {
		item, ok := raw.toItem()
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Each item needs exactly one of id or name"})
			return
		}
		items = append(items, item)
	}

	if err := services.ReplaceInterests(db.DB, employeeID, items); err != nil {
		respondReconcileError(ctx, err)
		return
	}

	respondEmployeeProfile(ctx, employeeID)
}

func replaceTechnologies(ctx *gin.Context, employeeID uuid.UUID) {
	var req ReplaceTechnologiesRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	items := make([]services.TechnologyItem, 0, len(req.Items))

	for _, raw := range req.Items {
		item, ok := raw.toItem()
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Each item needs exactly one of id or name"})
			return
		}
		items = append(items, item)
	}

	if err := services.ReplaceTechnologies(db.DB, employeeID, items); err != nil {
		respondReconcileError(ctx, err)
		return
	}

	respondEmployeeProfile(ctx, employeeID)
}

func replaceProjects(ctx *gin.Context, employeeID uuid.UUID) {
	var req ReplaceProjectsRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	items := make([]services.ProjectItem, 0, len(req.Items))

	for _, raw := range req.Items {
		item, ok := raw.toItem()
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Each item needs exactly one of id or name"})
			return
		}
		items = append(items, item)
	}

	if err := services.ReplaceProjects(db.DB, employeeID, items); err != nil {
		respondReconcileError(ctx, err)
		return
	}

	respondEmployeeProfile(ctx, employeeID)
}

func pathEmployeeID(ctx *gin.Context) (uuid.UUID, bool) {
	employeeID, err := uuid.Parse(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return uuid.Nil, false
	}

	return employeeID, true
}

func respondReconcileError(ctx *gin.Context, err error) {
	var missing *services.MissingReferenceError

	switch {
	case errors.As(err, &missing):
		ctx.JSON(http.StatusNotFound, gin.H{"error": missing.Error()})
	case errors.Is(err, services.ErrInvalidItem):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateReference),
		errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrNameConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Reconciliation failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func respondEmployeeProfile(ctx *gin.Context, employeeID uuid.UUID) {
	var employee models.Employee

	if err := db.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		log.Printf("Failed to fetch employee: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	profile, err := services.BuildEmployeeResponse(db.DB, employee)

	if err != nil {
		log.Printf("Failed to build employee response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
