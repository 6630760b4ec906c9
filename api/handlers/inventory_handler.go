package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"example.com/acgl/services/inventory/api/middleware"
	"example.com/acgl/services/inventory/internal/registry"
	"example.com/acgl/services/inventory/internal/repository"
	"example.com/acgl/services/inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InventoryHandler is the one handler behind every global inventory
// collection. The descriptor decides the table, the search columns, the
// response keys and the success messages; the request flow is identical.
type InventoryHandler struct {
	desc    registry.Descriptor
	service service.Service
	log     *logrus.Logger
}

// NewInventoryHandler creates a handler bound to one collection descriptor
func NewInventoryHandler(desc registry.Descriptor, svc service.Service, log *logrus.Logger) *InventoryHandler {
	return &InventoryHandler{
		desc:    desc,
		service: svc,
		log:     log,
	}
}

// uintQuery parses an optional numeric query parameter.
func uintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	id := uint(parsed)
	return &id, true
}

// List returns the active records matching the optional search text and
// foreign-key filters.
func (h *InventoryHandler) List(c *gin.Context) {
	f := repository.Filters{Search: c.Query("search")}

	var ok bool
	if f.PlantID, ok = uintQuery(c, "plant_id"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant ID"})
		return
	}
	if f.DepartmentID, ok = uintQuery(c, "department_id"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	rows, err := h.service.ListRecords(c.Request.Context(), h.desc, f)
	if err != nil {
		respondError(c, h.log, err, "Failed to list "+strings.ToLower(h.desc.Label)+"s")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		h.desc.ResponseKey: rows,
	})
}

// Create inserts a new record with a freshly allocated sr_no. The route is
// session-gated, so the identity is always present.
func (h *InventoryHandler) Create(c *gin.Context) {
	rec := h.desc.New()
	if err := c.ShouldBindJSON(rec); err != nil {
		h.log.WithError(err).Warnf("Invalid %s payload", strings.ToLower(h.desc.Label))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + strings.ToLower(h.desc.Label) + " payload",
		})
		return
	}

	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.service.CreateRecord(c.Request.Context(), h.desc, rec, identity); err != nil {
		respondError(c, h.log, err, "Failed to create "+strings.ToLower(h.desc.Label))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    h.desc.Label + " created successfully",
		h.desc.IDKey: rec.RecordID(),
		"sr_no":      rec.Sequence(),
	})
}

// Update replaces the mutable fields of an active record.
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	rec := h.desc.New()
	if err := c.ShouldBindJSON(rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + strings.ToLower(h.desc.Label) + " payload",
		})
		return
	}

	if err := h.service.UpdateRecord(c.Request.Context(), h.desc, uint(id), rec); err != nil {
		respondError(c, h.log, err, h.desc.Label+" not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": h.desc.Label + " updated successfully",
	})
}

// Delete soft-deletes a record; its sr_no is never reissued.
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	if err := h.service.DeleteRecord(c.Request.Context(), h.desc, uint(id)); err != nil {
		respondError(c, h.log, err, h.desc.Label+" not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": h.desc.Label + " deleted successfully",
	})
}
