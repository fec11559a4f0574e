// README: Firebase bearer-token auth middleware.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourplan/internal/infra"
)

const callerUIDKey = "caller_uid"

// Auth rejects requests without a valid "Authorization: Bearer <id token>" header
// and stores the caller's UID on the gin context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "missing bearer token"})
			return
		}
		id, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			slog.WarnContext(c.Request.Context(), "id token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
			return
		}
		c.Set(callerUIDKey, id.UID)
		c.Next()
	}
}

// CallerUID returns the verified UID, or "" when the route is not behind Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}
