package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ininahazwe/mfwa-memorial/auth"
)

// SessionCookie carries the session token between requests.
const SessionCookie = "memorial_session"

// TokenFromRequest reads the session token from the cookie, falling
// back to a bearer Authorization header for non-browser clients.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAdmin guards a route group with the session gate. Every
// request runs a full Check so a revoked session loses access on its
// next request, not at some token expiry.
func RequireAdmin(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := gate.Check(c.Request.Context(), TokenFromRequest(c))

		switch result.Status {
		case auth.StatusAuthenticated:
			c.Next()
		case auth.StatusDenied:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      result.Reason,
				"redirectTo": result.RedirectTo,
			})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"redirectTo": result.RedirectTo,
			})
		}
	}
}
