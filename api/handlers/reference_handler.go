package handlers

import (
	"net/http"

	"example.com/acgl/services/inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReferenceHandler serves the plant and department reference lists
type ReferenceHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewReferenceHandler creates a new ReferenceHandler instance
func NewReferenceHandler(svc service.Service, log *logrus.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		service: svc,
		log:     log,
	}
}

// ListPlants returns the active plants ordered by name
func (h *ReferenceHandler) ListPlants(c *gin.Context) {
	plants, err := h.service.ListPlants(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to list plants")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plants":  plants,
	})
}

// ListDepartments returns the active departments ordered by name
func (h *ReferenceHandler) ListDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to list departments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"departments": departments,
	})
}
