package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth rejects requests without one of keys as a Bearer token.
func APIKeyAuth(keys []string) gin.HandlerFunc {
	valid := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if v := strings.TrimSpace(k); v != "" {
			valid[v] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			c.Header("WWW-Authenticate", `Bearer realm="folio"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		if _, ok := valid[token]; !ok {
			c.Header("WWW-Authenticate", `Bearer realm="folio", error="invalid_token"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid token"})
			return
		}
		c.Next()
	}
}

// HandlePanics answers a recovered panic with the usual error body.
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "Recovered from panic", "path", c.FullPath(), "panic", fmt.Sprint(recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "Something went wrong!"})
	}
}
