package api

import (
	"net/http"
	"strings"

	"github.com/jestephe2/rootedwellness-workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// Constants for context keys
const (
	ContextSessionKey = "adminSession"
)

// Route the UI should send unauthenticated admins to.
const adminLoginPath = "/admin/login"

// AdminAuthMiddleware creates a Gin middleware that guards admin routes.
// An absent or expired session yields a 401 carrying the login redirect,
// so the client can route the user back to the login screen.
func AdminAuthMiddleware(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortToLogin(c, "Authorization header with a Bearer token is required")
			return
		}

		session, err := sessions.Current(c.Request.Context(), token)
		if err != nil {
			if err == service.ErrSessionAbsent {
				abortToLogin(c, "Admin session is missing or expired")
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve admin session")
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func abortToLogin(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    message,
		"redirect": adminLoginPath,
	})
}
