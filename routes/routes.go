package routes

import (
	"servicetrack-backend/config"
	"servicetrack-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(cfg config.Config, h *controllers.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.Use(config.PerformanceLogger(log, cfg.SlowRequestThreshold))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", h.CreateCustomer)
			customers.GET("", h.GetCustomers)
			customers.GET("/:id", h.GetCustomer)
			customers.GET("/:id/appliances", h.GetCustomerAppliances)
			customers.PUT("/:id", h.UpdateCustomer)
			customers.DELETE("/:id", h.DeleteCustomer)
		}

		// Appliance routes
		appliances := api.Group("/appliances")
		{
			appliances.POST("", h.CreateAppliance)
			appliances.GET("", h.GetAppliances)
			appliances.GET("/:id", h.GetAppliance)
			appliances.PUT("/:id", h.UpdateAppliance)
			appliances.DELETE("/:id", h.DeleteAppliance)
			appliances.POST("/:id/service", h.RecordService)
		}
		api.GET("/appliance-types", h.GetApplianceTypes)

		api.GET("/reminders", h.GetUpcomingReminders)
		api.GET("/dashboard", h.GetDashboardOverview)

		// Settings routes
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.UpdateSettings)
	}

	return r
}
