package handlers

import (
	"net/http"
	"strings"

	"example.com/acgl/services/inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles login and logout requests
type AuthHandler struct {
	service    service.Service
	cookieName string
	cookieTTL  int
	log        *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(svc service.Service, cookieName string, cookieTTLSeconds int, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service:    svc,
		cookieName: cookieName,
		cookieTTL:  cookieTTLSeconds,
		log:        log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles credential checks and session creation
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Username and password are required",
		})
		return
	}

	identity, token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err, "Login failed")
		return
	}

	c.SetCookie(h.cookieName, token, h.cookieTTL, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":        identity.UserID,
			"username":  identity.Username,
			"user_type": identity.UserType,
			"full_name": identity.FullName,
		},
	})
}

// Logout discards the session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.log.WithError(err).Warn("Failed to discard session")
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
