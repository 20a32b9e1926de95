package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// TokenKey is the gin context key holding the normalized bearer token
const TokenKey = "bearer_token"

// NormalizeBearer strips an optional "Bearer " prefix from an Authorization
// header value, returning the bare token. Idempotent: normalizing an already
// bare token is a no-op.
func NormalizeBearer(header string) string {
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(header)
}

// RequireBearer rejects requests without an Authorization header before any
// upstream call is made. The token is opaque: it is never decoded or
// validated locally, only normalized and re-attached on the outbound call.
func RequireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.TrimSpace(header) == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		token := NormalizeBearer(header)
		if token == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		c.Set(TokenKey, token)
		c.Next()
	}
}

// Token retrieves the normalized bearer token from the gin context
func Token(c *gin.Context) string {
	return c.GetString(TokenKey)
}
