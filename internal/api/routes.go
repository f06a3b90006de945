package api

import (
	"net/http"

	"github.com/jestephe2/rootedwellness-workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	userService service.UserService,
	progressService service.ProgressService,
	ledgerService service.LedgerService,
	catalogService service.CatalogService,
	sessionService service.SessionService,
) {
	userHandler := NewUserHandler(userService)
	programHandler := NewProgramHandler(catalogService)
	workoutHandler := NewWorkoutHandler(progressService, ledgerService, catalogService)
	adminHandler := NewAdminHandler(sessionService, catalogService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// --- User Routes ---
		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/init", userHandler.Init)
			userGroup.POST("/onboard", userHandler.Onboard)
			userGroup.GET("/:email", userHandler.Profile)
		}

		// --- Program Catalog Routes (read-only) ---
		programGroup := apiV1.Group("/program")
		{
			programGroup.GET("/library", programHandler.Library)
			programGroup.GET("/variations/:variationId", programHandler.Variation)
			programGroup.GET("/variations/:variationId/weeks/:week", programHandler.Week)
			programGroup.GET("/variations/:variationId/weeks/:week/days", programHandler.Days)
			programGroup.GET("/variations/:variationId/weeks/:week/days/:day", programHandler.Day)
			programGroup.GET("/phases/:phase", programHandler.PhaseGuidance)
		}

		// --- Workout Flow Routes ---
		workoutGroup := apiV1.Group("/workouts/:email")
		{
			workoutGroup.GET("", workoutHandler.Current)
			workoutGroup.POST("/start", workoutHandler.Start)
			workoutGroup.POST("/complete", workoutHandler.Complete)
			workoutGroup.POST("/advance", workoutHandler.Advance)
			workoutGroup.POST("/restart", workoutHandler.Restart)
			workoutGroup.PUT("/week", workoutHandler.SelectWeek)
			workoutGroup.PUT("/day", workoutHandler.SelectDay)
			workoutGroup.PUT("/variation", workoutHandler.SelectVariation)
			workoutGroup.PUT("/phase", workoutHandler.SetPhase)
			workoutGroup.PUT("/days-per-week", workoutHandler.SetDaysPerWeek)
			workoutGroup.POST("/reflection", workoutHandler.SubmitReflection)
			workoutGroup.GET("/reflection", workoutHandler.LatestReflection)
			workoutGroup.POST("/logs", workoutHandler.LogWeight)
			workoutGroup.GET("/logs", workoutHandler.Logs)
			workoutGroup.GET("/logs/latest", workoutHandler.LatestWeight)
		}

		// --- Admin Routes ---
		adminGroup := apiV1.Group("/admin")
		{
			// Login is the only unauthenticated admin endpoint.
			adminGroup.POST("/login", adminHandler.Login)

			protected := adminGroup.Group("")
			protected.Use(AdminAuthMiddleware(sessionService))
			{
				protected.GET("/session", adminHandler.Session)
				protected.POST("/logout", adminHandler.Logout)

				protected.POST("/program/publish", adminHandler.Publish)
				protected.POST("/program/revert", adminHandler.Revert)
				protected.POST("/program/import", adminHandler.Import)
				protected.GET("/program/export", adminHandler.Export)
				protected.GET("/program/export/download-url", adminHandler.ExportDownloadURL)
			}
		}
	}
}
