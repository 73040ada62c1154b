package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LarozaLighting/laroza_api/internal/middleware"
	"github.com/LarozaLighting/laroza_api/internal/service"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// AuthHandler handles login and customer registration endpoints.
type AuthHandler struct {
	authService *service.AuthService
	rateLimiter *middleware.FailedLoginRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		rateLimiter: middleware.NewFailedLoginRateLimiter(),
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Username and password are required")
		return
	}

	ip := c.ClientIP()
	if !h.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed login attempts, try again later")
		return
	}

	token, session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.rateLimiter.RecordFailure(ip)
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid credentials. Please check your username and password.")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token":    token,
		"username": session.Username,
		"role":     session.Role,
	})
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Username and password are required")
		return
	}

	err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, utils.ErrUsernameTaken):
		utils.Error(c, 409, "USERNAME_TAKEN", "Username is already taken")
	case errors.Is(err, utils.ErrPasswordTooShort):
		utils.Error(c, 400, "PASSWORD_TOO_SHORT", "Password must be at least 6 characters")
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, 400, "INVALID_REQUEST", "Username is required")
	case err != nil:
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to register account")
	default:
		utils.Success(c, 201, "Account registered successfully", nil)
	}
}
