package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/db"
	"github.com/staffhub-dev/staffhub/internal/auth"
	"github.com/staffhub-dev/staffhub/internal/middleware"
	"github.com/staffhub-dev/staffhub/internal/models"
	"github.com/staffhub-dev/staffhub/internal/services"
	"github.com/staffhub-dev/staffhub/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultSystemRole = "employee"

// Throttle guards login against brute force. Exported so tests can swap
// in a tighter configuration.
var Throttle auth.LoginThrottle = auth.NewMemoryThrottleFromEnv()

type EmployeeProfileRequest struct {
	FirstName    string     `json:"first_name" binding:"required"`
	LastName     string     `json:"last_name" binding:"required"`
	MiddleName   string     `json:"middle_name"`
	DateOfBirth  string     `json:"date_of_birth" binding:"required"`
	Email        string     `json:"email" binding:"required,email"`
	Phone        string     `json:"phone" binding:"required"`
	Telegram     string     `json:"telegram" binding:"required"`
	City         string     `json:"city" binding:"required"`
	PositionID   *uuid.UUID `json:"position_id"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

type RegisterRequest struct {
	Username string                 `json:"username" binding:"required,min=3,max=50"`
	Password string                 `json:"password" binding:"required,min=8"`
	Employee EmployeeProfileRequest `json:"employee" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r EmployeeProfileRequest) toModel() (models.Employee, error) {
	dateOfBirth, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return models.Employee{}, err
	}

	return models.Employee{
		FirstName:    strings.TrimSpace(r.FirstName),
		LastName:     strings.TrimSpace(r.LastName),
		MiddleName:   strings.TrimSpace(r.MiddleName),
		DateOfBirth:  dateOfBirth,
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:        strings.TrimSpace(r.Phone),
		Telegram:     strings.TrimSpace(r.Telegram),
		City:         strings.TrimSpace(r.City),
		PositionID:   r.PositionID,
		DepartmentID: r.DepartmentID,
	}, nil
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var existingUser models.User

	err := db.DB.Where("username = ?", req.Username).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Username already registered"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	employee, err := req.Employee.toModel()

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_of_birth, expected YYYY-MM-DD"})
		return
	}

	if conflict, err := contactFieldTaken(employee, nil); err != nil {
		log.Printf("Database error when checking contact uniqueness: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	} else if conflict != "" {
		ctx.JSON(http.StatusConflict, gin.H{"error": conflict + " already in use"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&employee).Error; err != nil {
			return err
		}

		var role models.SystemRole

		err := tx.Where("LOWER(name) = ?", defaultSystemRole).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = models.SystemRole{Name: defaultSystemRole}
			err = tx.Create(&role).Error
		}
		if err != nil {
			return err
		}

		user := models.User{
			Username:     req.Username,
			PasswordHash: string(passwordHash),
			EmployeeID:   employee.ID,
			RoleID:       role.ID,
		}

		return tx.Create(&user).Error
	})

	if err != nil {
		log.Printf("Failed to register user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	profile, err := services.BuildEmployeeResponse(db.DB, employee)

	if err != nil {
		log.Printf("Failed to build employee response: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"username": req.Username,
		"employee": profile,
	})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	err := db.DB.Where("username = ?", req.Username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if Throttle.IsLocked(req.Username) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Account temporarily locked, try again later"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		Throttle.RegisterFailure(req.Username)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	Throttle.Clear(req.Username)

	token, err := auth.GenerateJWT(user.Username)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func Logout(ctx *gin.Context) {
	token, err := utils.GetCurrentToken(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	middleware.Blacklist.Revoke(token)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var employee models.Employee

	if err := db.DB.First(&employee, "id = ?", currentUser.EmployeeID).Error; err != nil {
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

	ctx.JSON(http.StatusOK, gin.H{
		"username": currentUser.Username,
		"employee": profile,
	})
}
