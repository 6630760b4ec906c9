package routes

import (
	"example.com/acgl/services/inventory/api/handlers"
	"example.com/acgl/services/inventory/api/middleware"
	"example.com/acgl/services/inventory/config"
	"example.com/acgl/services/inventory/internal/registry"
	"example.com/acgl/services/inventory/internal/service"
	"example.com/acgl/services/inventory/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes sets up all the routes for the server. Reads are open;
// every mutating route goes through the session gate.
func SetupRoutes(r *gin.Engine, svc service.Service, sessions session.Store, sessionCfg config.SessionConfig, log *logrus.Logger) {
	// Health check
	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")

	requireSession := middleware.SessionAuth(sessions, sessionCfg.CookieName, log)

	// Auth routes
	authHandler := handlers.NewAuthHandler(svc, sessionCfg.CookieName, int(sessionCfg.TTL.Seconds()), log)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	// Dashboard
	dashboardHandler := handlers.NewDashboardHandler(svc, log)
	api.GET("/dashboard/stats", dashboardHandler.Stats)

	// Reference lists
	referenceHandler := handlers.NewReferenceHandler(svc, log)
	api.GET("/plants", referenceHandler.ListPlants)
	api.GET("/departments", referenceHandler.ListDepartments)

	// One route set per global collection, all driven by the registry
	for _, desc := range registry.All() {
		if desc.Scope != registry.ScopeGlobal {
			continue
		}
		h := handlers.NewInventoryHandler(desc, svc, log)
		grp := api.Group("/" + desc.Key)
		{
			grp.GET("", h.List)
			grp.POST("", requireSession, h.Create)
			grp.PUT("/:id", requireSession, h.Update)
			grp.DELETE("/:id", requireSession, h.Delete)
		}
	}

	// Plant-scoped roster
	plantAssetHandler := handlers.NewPlantAssetHandler(svc, log)
	api.GET("/plant-assets/:plantID", plantAssetHandler.List)
	api.POST("/plant-assets/:plantID", requireSession, plantAssetHandler.Create)
}
