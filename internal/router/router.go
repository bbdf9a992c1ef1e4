package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/staffhub-dev/staffhub/internal/handlers"
	"github.com/staffhub-dev/staffhub/internal/middleware"
	"github.com/staffhub-dev/staffhub/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		v1 := api.Group("/v1")

		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		common := v1.Group("/common")
		{
			common.GET("/cities", handlers.ListCities)
			common.GET("/positions", handlers.ListPositions)
			common.GET("/departments", handlers.ListDepartments)
			common.GET("/projects", handlers.ListProjects)
			common.GET("/technologies", handlers.ListTechnologies)
			common.GET("/interests", handlers.ListInterests)
			common.GET("/ranks", handlers.ListRanks)
			common.GET("/roles", handlers.ListRoles)
			common.GET("/event-types", handlers.ListEventTypes)
		}

		employees := v1.Group("/employees", middleware.AuthMiddleware())
		{
			employees.POST("/search", handlers.SearchEmployees)
			employees.POST("", handlers.CreateEmployee)
			employees.GET("/:id", handlers.GetEmployee)
			employees.PUT("/:id", handlers.UpdateEmployee)
			employees.DELETE("/:id", handlers.DeleteEmployee)
			employees.PUT("/:id/interests", handlers.ReplaceEmployeeInterests)
			employees.PUT("/:id/technologies", handlers.ReplaceEmployeeTechnologies)
			employees.PUT("/:id/projects", handlers.ReplaceEmployeeProjects)
		}

		me := v1.Group("/me", middleware.AuthMiddleware())
		{
			me.PUT("/interests", handlers.ReplaceMyInterests)
			me.PUT("/technologies", handlers.ReplaceMyTechnologies)
			me.PUT("/projects", handlers.ReplaceMyProjects)
		}

		events := v1.Group("/events", middleware.AuthMiddleware())
		{
			events.POST("", handlers.CreateEvent)
			events.GET("", handlers.ListEvents)
			events.GET("/my", handlers.ListMyEvents)
			events.GET("/:id", handlers.GetEvent)
			events.PUT("/:id", handlers.UpdateEvent)
			events.DELETE("/:id", handlers.DeleteEvent)
			events.POST("/:id/attendees", handlers.AddAttendee)
			events.POST("/:id/join", handlers.JoinEvent)
			events.DELETE("/:id/leave", handlers.LeaveEvent)
		}

		notifications := v1.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.POST("", handlers.CreateNotification)
			notifications.GET("", handlers.ListMyNotifications)
			notifications.POST("/read", handlers.MarkNotificationsRead)
		}

		graph := v1.Group("/graph", middleware.AuthMiddleware())
		{
			graph.GET("/:graph_type", handlers.GetGraph)
		}
	}

	return r
}
