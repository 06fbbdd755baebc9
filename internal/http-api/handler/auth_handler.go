package handler

import (
	"net/http"

	"bookhive/internal/config"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes signup, login and token lifecycle endpoints.
type AuthHandler struct {
	authService    service.AuthService
	accessTokenTTL int64
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accessTokenTTL: int64(cfg.AccessTokenTTL.Seconds()),
	}
}

// RegisterRoutes registers the credential and token endpoints on the users
// group, each behind the supplied rate limiter.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, limited gin.HandlerFunc) {
	rg.POST("/signup", limited, h.Signup)
	rg.POST("/login", limited, h.Login)
	rg.POST("/google-auth", limited, h.GoogleAuth)
	rg.POST("/refresh", limited, h.Refresh)
	rg.POST("/revoke", limited, h.Revoke)
}

// Signup creates an account and logs the new user in.
// POST /api/users/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := h.authService.Signup(req.Name, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Name:         user.Name,
		Role:         user.Role,
		ExpiresIn:    h.accessTokenTTL,
	})
}

// Login authenticates with email and password.
// POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Name:         user.Name,
		Role:         user.Role,
		ExpiresIn:    h.accessTokenTTL,
	})
}

// GoogleAuth signs the user in with a Google ID token, creating the account
// on first login.
// POST /api/users/google-auth
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	accessToken, refreshToken, user, err := h.authService.GoogleAuth(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Name:         user.Name,
		Role:         user.Role,
		ExpiresIn:    h.accessTokenTTL,
	})
}

// Refresh exchanges a refresh token for a fresh access token.
// POST /api/users/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    h.accessTokenTTL,
	})
}

// Revoke invalidates a refresh token.
// POST /api/users/revoke
func (h *AuthHandler) Revoke(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.authService.RevokeToken(req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RevokeTokenResponse{Message: "token revoked"})
}
