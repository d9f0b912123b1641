package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"washline/services/auth"
	"washline/utils"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	ContextUsername     = "username"
	ContextSessionToken = "sessionToken"
)

// SessionAuth guards a route group with bearer-token session
// validation. Requests without a valid, unexpired session are rejected
// with 401.
func SessionAuth(authService auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		session, err := authService.Verify(c.Request.Context(), token)
		if err != nil {
			utils.JSONError(c, utils.StatusOf(err), utils.MessageOf(err))
			return
		}
		c.Set(ContextUsername, session.Username)
		c.Set(ContextSessionToken, token)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
