package middleware

import (
	"net/http"

	"boardhub/internal/auth"

	"github.com/gin-gonic/gin"
)

// CredentialKey holds the raw bearer token. Services verify it themselves on every call.
const CredentialKey = "credential"

// BearerRequired rejects requests without an Authorization bearer token.
func BearerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "missing credential"})
			return
		}
		c.Set(CredentialKey, token)
		c.Next()
	}
}
