package handlers

import (
	"net/http"

	"example.com/acgl/services/inventory/internal/registry"
	"example.com/acgl/services/inventory/internal/repository"
	"example.com/acgl/services/inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// respondError maps a service or store failure to its HTTP status. Store
// internals never reach the response body; the log entry carries them.
func respondError(c *gin.Context, log *logrus.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, registry.ErrUnknownEntity):
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown entity type"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fallback})
	case errors.Is(err, repository.ErrConstraint):
		c.JSON(http.StatusConflict, gin.H{"error": fallback})
	default:
		log.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
