package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ningrum77/puskesmas-bok/pkg/ai"
	"github.com/ningrum77/puskesmas-bok/pkg/auth"
	"github.com/ningrum77/puskesmas-bok/pkg/config"
	"github.com/ningrum77/puskesmas-bok/pkg/database"
	"github.com/ningrum77/puskesmas-bok/pkg/store"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Store *store.Store
	DB    *gorm.DB
	Cfg   *config.Config
	AI    *ai.Client
}

// AuthMiddleware verifies the JWT token and records who is calling. Every
// route behind it accepts both roles; RequireAdmin narrows to mutations.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects guest tokens. Guests can read everything but change
// nothing.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != auth.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuditMiddleware records every mutating request after it ran, one row per
// call. Reads are not logged.
func (h *Handler) AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}
		actor := c.GetString("username")
		if actor == "" {
			actor = "anonymous"
		}

		_ = h.DB.Create(&database.AuditLog{
			Actor:    actor,
			Method:   c.Request.Method,
			Path:     c.Request.URL.Path,
			Status:   c.Writer.Status(),
			ClientIP: c.ClientIP(),
		}).Error
	}
}

// Login exchanges the shared admin password for an admin token.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := auth.Authenticate(h.DB, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(account.Username, auth.RoleAdmin, h.tokenTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer", "role": auth.RoleAdmin})
}

// GuestLogin issues a read-only token without a password.
func (h *Handler) GuestLogin(c *gin.Context) {
	token, err := auth.CreateToken("tamu", auth.RoleGuest, h.tokenTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer", "role": auth.RoleGuest})
}

// ChangePassword replaces the shared admin password.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new password must be at least 6 characters"})
		return
	}

	if _, err := auth.Authenticate(h.DB, req.CurrentPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := auth.ChangePassword(h.DB, req.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not change password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// GetState returns the whole snapshot, the single payload the frontend loads
// on startup.
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Snapshot())
}

func (h *Handler) tokenTTL() time.Duration {
	if h.Cfg != nil && h.Cfg.JWT.ExpireHours > 0 {
		return time.Duration(h.Cfg.JWT.ExpireHours) * time.Hour
	}
	return 72 * time.Hour
}

func errNotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, store.ErrNotFound)...)
}

// writeStoreError maps the store's sentinel errors onto HTTP statuses.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrReferenced):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
