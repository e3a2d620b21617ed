package api

import (
	"net/http"

	"workout-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	scheduleService service.ScheduleService,
) {
	authHandler := NewAuthHandler(authService)
	scheduleHandler := NewScheduleHandler(scheduleService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		// --- Workout Catalog ---
		// GET /api/v1/workouts - static catalog a schedule can reference
		protected.GET("/workouts", scheduleHandler.GetWorkouts)

		// --- Schedule Routes ---
		scheduleGroup := protected.Group("/schedules")
		{
			// GET /api/v1/schedules?start=...&end=... (range optional)
			scheduleGroup.GET("", scheduleHandler.GetSchedules)
			// GET /api/v1/schedules/{id} - null body when absent
			scheduleGroup.GET("/:id", scheduleHandler.GetSchedule)
			// POST /api/v1/schedules - one schedule per day per user
			scheduleGroup.POST("", scheduleHandler.CreateSchedule)
			// PATCH /api/v1/schedules/{id} - partial update
			scheduleGroup.PATCH("/:id", scheduleHandler.UpdateSchedule)
			// DELETE /api/v1/schedules/{id} - reports deleted true/false
			scheduleGroup.DELETE("/:id", scheduleHandler.DeleteSchedule)
		}
	}
}
