package middleware

import (
	"net/http"
	"strings"

	"github.com/handleme/gallery/api/common"
	"github.com/handleme/gallery/internal/auth"
	"github.com/gin-gonic/gin"
)

// ContextEmailKey holds the authenticated moderator email in the gin context.
const ContextEmailKey = "session_email"

// AuthRequired gates moderation routes behind a Bearer session token.
// No session means a plain 401; there is no finer-grained authorization.
func AuthRequired(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			common.RespondError(c, http.StatusUnauthorized, "unauthenticated")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			common.RespondError(c, http.StatusUnauthorized, "unauthenticated")
			c.Abort()
			return
		}

		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
