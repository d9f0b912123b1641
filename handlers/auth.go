package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"washline/middleware"
	"washline/services/auth"
	"washline/utils"
)

// AuthHandler serves the login/logout/verify endpoints.
type AuthHandler struct {
	Service auth.AuthService
}

// LoginHandler handles POST /auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.Service.Login(c.Request.Context(), strings.TrimSpace(req.Passcode))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// LogoutHandler handles POST /auth/logout. The route is behind the
// session guard, which stashes the raw token in the context.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	token := c.GetString(middleware.ContextSessionToken)
	if err := h.Service.Logout(c.Request.Context(), token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// VerifyHandler handles GET /auth/verify. It answers 200 for a live
// session and 401 otherwise, never an error shape, so clients can poll
// it cheaply.
func (h *AuthHandler) VerifyHandler(c *gin.Context) {
	var token string
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	session, err := h.Service.Verify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"authenticated": false,
			"message":       "Unauthorized",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      session.Username,
		"expiresAt":     session.ExpiresAt,
	})
}
