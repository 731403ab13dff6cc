package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/folio/internal/domain"
)

// SessionStore holds the admin marker forwarded to the content API.
type SessionStore interface {
	SetMarker(ctx context.Context, marker string) error
	Marker(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

type SessionRequest struct {
	Marker string `json:"marker" binding:"required"`
}

type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// SetupSessionRoutes lets the site record and drop the admin marker.
func SetupSessionRoutes(router *gin.Engine, store SessionStore) {
	session := router.Group("/api/session")

	session.GET("", func(c *gin.Context) {
		_, ok, err := store.Marker(c.Request.Context())
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "Failed to read admin marker", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, SessionResponse{Authenticated: ok})
	})

	session.PUT("", func(c *gin.Context) {
		var req SessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
			return
		}
		if err := store.SetMarker(c.Request.Context(), req.Marker); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrInvalidInput) {
				status = http.StatusBadRequest
			}
			c.JSON(status, ErrorResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, SessionResponse{Authenticated: true})
	})

	session.DELETE("", func(c *gin.Context) {
		if err := store.Clear(c.Request.Context()); err != nil {
			slog.ErrorContext(c.Request.Context(), "Failed to clear admin marker", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, SessionResponse{Authenticated: false})
	})
}
