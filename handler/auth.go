package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ininahazwe/mfwa-memorial/auth"
	"github.com/ininahazwe/mfwa-memorial/metrics"
	"github.com/ininahazwe/mfwa-memorial/middleware"
)

type AuthHandler struct {
	gate       *auth.Gate
	sessionTTL time.Duration
}

func NewAuthHandler(gate *auth.Gate, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{gate: gate, sessionTTL: sessionTTL}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	result := h.gate.Login(c.Request.Context(), req.Email, req.Password)

	switch result.Status {
	case auth.StatusAuthenticated:
		metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
		c.SetCookie(middleware.SessionCookie, result.Token, int(h.sessionTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"redirectTo": result.RedirectTo})
	case auth.StatusDenied:
		metrics.AuthAttemptsTotal.WithLabelValues("login", "denied").Inc()
		log.Printf("[WARN] Login denied for %s: %s", req.Email, result.Reason)
		c.JSON(http.StatusForbidden, gin.H{"error": result.Reason})
	default:
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failed").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": result.Reason})
	}
}

func (h *AuthHandler) Check(c *gin.Context) {
	result := h.gate.Check(c.Request.Context(), middleware.TokenFromRequest(c))

	switch result.Status {
	case auth.StatusAuthenticated:
		c.JSON(http.StatusOK, gin.H{"authenticated": true})
	case auth.StatusDenied:
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusForbidden, gin.H{
			"authenticated": false,
			"error":         result.Reason,
			"redirectTo":    result.RedirectTo,
		})
	default:
		c.JSON(http.StatusUnauthorized, gin.H{
			"authenticated": false,
			"redirectTo":    result.RedirectTo,
		})
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	result := h.gate.Logout(c.Request.Context(), middleware.TokenFromRequest(c))
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"redirectTo": result.RedirectTo})
}

func (h *AuthHandler) Identity(c *gin.Context) {
	summary := h.gate.Identity(c.Request.Context(), middleware.TokenFromRequest(c))
	if summary == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AuthHandler) Permissions(c *gin.Context) {
	perms := h.gate.Permissions(c.Request.Context(), middleware.TokenFromRequest(c))
	c.JSON(http.StatusOK, gin.H{"permissions": perms})
}
