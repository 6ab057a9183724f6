package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"fueltrack-api/config"
	"fueltrack-api/controllers"
	"fueltrack-api/database"
	"fueltrack-api/metrics"
	"fueltrack-api/middleware"
	"fueltrack-api/repositories"
	"fueltrack-api/services"
)

// SetupRoutes wires repositories, services and controllers onto r. gatherer
// backs GET /metrics; nil uses the default prometheus registry.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, m *metrics.Metrics, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	vehicleRepo := repositories.NewVehicleRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	fuelLogRepo := repositories.NewFuelLogRepository(db)
	alertRepo := repositories.NewAlertRepository(db)

	vehicleService := services.NewVehicleService(vehicleRepo, activityRepo, m, cfg.Analytics.WindowSize, cfg.Reminders.DueSoonDistance)
	activityService := services.NewActivityService(vehicleRepo, activityRepo, m)
	analyticsService := services.NewAnalyticsService(vehicleRepo, activityRepo, m, cfg.Analytics.WindowSize)
	migrationService := services.NewMigrationService(vehicleRepo, activityRepo, fuelLogRepo, m)
	alertService := services.NewAlertService(alertRepo)

	vehicleController := controllers.NewVehicleController(vehicleService)
	activityController := controllers.NewActivityController(activityService, migrationService)
	analyticsController := controllers.NewAnalyticsController(analyticsService)
	alertController := controllers.NewAlertController(alertService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// API version 1
	v1 := r.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
	})

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
	{
		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", vehicleController.GetVehicles)
			vehicles.POST("", vehicleController.CreateVehicle)
			vehicles.GET("/:id", vehicleController.GetVehicle)
			vehicles.PUT("/:id", vehicleController.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleController.DeleteVehicle)

			vehicles.GET("/:id/activities", activityController.GetVehicleActivities)
			vehicles.POST("/:id/activities", activityController.CreateActivity)
			vehicles.PUT("/:id/activities/:activityId", activityController.UpdateActivity)
			vehicles.DELETE("/:id/activities/:activityId", activityController.DeleteActivity)

			vehicles.GET("/:id/analytics", analyticsController.GetEfficiency)
		}

		activities := protected.Group("/activities")
		{
			activities.GET("", activityController.GetActivities)
			activities.GET("/service-types", activityController.GetServiceTypes)
			activities.POST("/bulk-delete", activityController.BulkDelete)
			activities.POST("/migrate-fuel-logs", activityController.MigrateFuelLogs)
		}

		alerts := protected.Group("/alerts")
		{
			alerts.GET("", alertController.GetAlerts)
			alerts.GET("/stats", alertController.GetAlertStats)
			alerts.PUT("/read-all", alertController.MarkAllAsRead)
			alerts.PUT("/:id/read", alertController.MarkAsRead)
		}
	}
}

// NewRouter builds the engine with the standard middleware chain.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RateLimit(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst))
	router.Use(middleware.ValidateJSON())
	return router
}
