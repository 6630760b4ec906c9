package handlers

import (
	"net/http"

	"example.com/acgl/services/inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DashboardHandler serves the landing-page statistics
type DashboardHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(svc service.Service, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		log:     log,
	}
}

// Stats returns active-row counts for every collection
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to load dashboard stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
