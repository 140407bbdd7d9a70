package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tallybook/tallybook/internal/middleware"
	"github.com/tallybook/tallybook/internal/service"
	"github.com/tallybook/tallybook/internal/session"
)

// Authenticator defines the auth operations used by AuthHandler.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (string, string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles registration, login and logout. The session token is
// delivered as an HttpOnly cookie whose lifetime matches the session TTL.
type AuthHandler struct {
	auth      Authenticator
	cookieTTL time.Duration
}

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	OK    bool   `json:"ok"`
	Email string `json:"email"`
}

func NewAuthHandler(auth Authenticator, cookieTTL time.Duration) *AuthHandler {
	if cookieTTL <= 0 {
		cookieTTL = session.DefaultTTL
	}
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	email, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			middleware.RespondWithError(c, http.StatusConflict, "User already exists")
		case errors.Is(err, service.ErrInvalidInput):
			middleware.RespondWithError(c, http.StatusBadRequest, "Email and password are required")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, AuthResponse{OK: true, Email: email})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	email, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Email and password are required")
			return
		}
		// Unknown email and wrong password are deliberately the same.
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, AuthResponse{OK: true, Email: email})
}

// Logout is idempotent: it succeeds with or without a live session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, int(h.cookieTTL.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}
