package handlers

import (
	"net/http"
	"strconv"

	"example.com/acgl/services/inventory/api/middleware"
	"example.com/acgl/services/inventory/internal/models"
	"example.com/acgl/services/inventory/internal/registry"
	"example.com/acgl/services/inventory/internal/repository"
	"example.com/acgl/services/inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PlantAssetHandler serves the per-plant roster. It differs from the
// generic handler in two ways: the plant comes from the path, and sr_no
// values are local to that plant.
type PlantAssetHandler struct {
	desc    registry.Descriptor
	service service.Service
	log     *logrus.Logger
}

// NewPlantAssetHandler creates a new PlantAssetHandler instance
func NewPlantAssetHandler(svc service.Service, log *logrus.Logger) *PlantAssetHandler {
	desc, err := registry.Describe("plant-assets")
	if err != nil {
		// The descriptor is part of the static registry; a miss here is a
		// programming error.
		panic(err)
	}
	return &PlantAssetHandler{
		desc:    desc,
		service: svc,
		log:     log,
	}
}

func plantIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("plantID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant ID"})
		return 0, false
	}
	return uint(id), true
}

// List returns the plant's roster ordered oldest-first (sr_no ascending).
func (h *PlantAssetHandler) List(c *gin.Context) {
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	f := repository.Filters{
		Search:       c.Query("search"),
		ScopePlantID: &plantID,
	}
	if f.DepartmentID, ok = uintQuery(c, "department_id"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	rows, err := h.service.ListRecords(c.Request.Context(), h.desc, f)
	if err != nil {
		respondError(c, h.log, err, "Failed to list plant assets")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		h.desc.ResponseKey: rows,
	})
}

// Create adds an asset to the plant's roster with the plant-local sr_no.
func (h *PlantAssetHandler) Create(c *gin.Context) {
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	var rec models.PlantAsset
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.log.WithError(err).Warn("Invalid plant asset payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant asset payload"})
		return
	}
	// The path owns the plant, whatever the body says.
	rec.PlantID = plantID

	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.service.CreateRecord(c.Request.Context(), h.desc, &rec, identity); err != nil {
		respondError(c, h.log, err, "Failed to create plant asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Plant asset created successfully",
		h.desc.IDKey: rec.RecordID(),
		"sr_no":      rec.Sequence(),
	})
}
