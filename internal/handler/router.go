package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/athlete-load-api/internal/middleware"
	"github.com/noah-isme/athlete-load-api/internal/models"
)

// Handlers groups the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Wellness  *WellnessHandler
	Load      *LoadHandler
	Dashboard *DashboardHandler
	Reference *ReferenceHandler
	Metrics   *MetricsHandler
}

// RegisterRoutes mounts the authenticated API on api. auth must populate the
// caller's claims, normally middleware.JWT.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, auth gin.HandlerFunc) {
	secured := api.Group("")
	secured.Use(auth)

	wellness := secured.Group("/wellness")
	wellness.POST("/check-in", h.Wellness.CheckIn)
	wellness.POST("/check-out", h.Wellness.CheckOut)
	wellness.GET("", h.Wellness.List)
	wellness.GET("/key", h.Wellness.Get)
	wellness.GET("/export", h.Wellness.Export)
	wellness.DELETE("", middleware.RequireRoles(models.RoleAdmin, models.RoleDeveloper), h.Wellness.Delete)

	secured.GET("/athletes/:id/load", h.Load.AthleteReport)

	dashboard := secured.Group("/dashboard")
	dashboard.GET("/group", h.Dashboard.Group)
	dashboard.GET("/group/export", h.Dashboard.Export)

	reference := secured.Group("/reference")
	reference.GET("/athletes", h.Reference.Athletes)
	reference.GET("/competitions", h.Reference.Competitions)
	reference.GET("/catalogs/:name", h.Reference.Catalog)

	secured.GET("/system/metrics", middleware.RequireRoles(models.RoleAdmin, models.RoleDeveloper), h.Metrics.System)
}

// RegisterProbes mounts the unauthenticated health, readiness and Prometheus endpoints.
func RegisterProbes(r gin.IRoutes, h *MetricsHandler) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
}
