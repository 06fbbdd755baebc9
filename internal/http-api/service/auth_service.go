package service

import (
	"context"
	"errors"
	"time"

	"bookhive/internal/config"
	"bookhive/internal/http-api/apperr"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"
	"bookhive/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dummy bcrypt hash compared when the account does not exist, so login takes
// the same time either way
const dummyPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// Claims carried by an access token: identity plus role, nothing else.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(name, email, password string) (*models.User, error)
	Login(email, password string) (accessToken, refreshToken string, user *models.User, err error)
	GoogleAuth(ctx context.Context, idToken string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshAccessToken(refreshToken string) (newAccessToken string, err error)
	RevokeToken(refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	googleVerifier   GoogleVerifier
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	googleVerifier GoogleVerifier,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		googleVerifier:   googleVerifier,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

// Signup registers a new user with the given name, email and password.
func (s *authService) Signup(name, email, password string) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apperr.Conflict("email already in use")
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperr.Unexpected("could not create account", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: &hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Unexpected("could not create account", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(email, password string) (string, string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// dummy compare to mitigate timing attacks
		auth.VerifyPassword(dummyPasswordHash, password)
		return "", "", nil, apperr.Authentication("invalid credentials")
	}

	// Google-only accounts have no password to check against
	if user.PasswordHash == nil {
		auth.VerifyPassword(dummyPasswordHash, password)
		return "", "", nil, apperr.Authentication("invalid credentials")
	}

	if err := auth.VerifyPassword(*user.PasswordHash, password); err != nil {
		return "", "", nil, apperr.Authentication("invalid credentials")
	}

	return s.issueTokens(user)
}

// GoogleAuth verifies a Google ID token and logs the user in, creating the
// account on first login. Accounts created this way carry no password hash.
func (s *authService) GoogleAuth(ctx context.Context, idToken string) (string, string, *models.User, error) {
	identity, err := s.googleVerifier.Verify(ctx, idToken)
	if err != nil {
		return "", "", nil, apperr.Authentication("invalid Google credential")
	}

	user, err := s.userRepo.FindByGoogleID(identity.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Link to an existing account with the same email, or create one.
		user, err = s.userRepo.FindByEmail(identity.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &models.User{
				ID:       uuid.New().String(),
				Name:     identity.Name,
				Email:    identity.Email,
				GoogleID: &identity.Subject,
			}
			if err := s.userRepo.Create(user); err != nil {
				return "", "", nil, apperr.Unexpected("could not create account", err)
			}
		} else if err != nil {
			return "", "", nil, apperr.Unexpected("could not look up account", err)
		} else {
			user.GoogleID = &identity.Subject
			if err := s.userRepo.Update(user); err != nil {
				return "", "", nil, apperr.Unexpected("could not link account", err)
			}
		}
	} else if err != nil {
		return "", "", nil, apperr.Unexpected("could not look up account", err)
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (string, string, *models.User, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, apperr.Unexpected("could not issue token", err)
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return "", "", nil, apperr.Unexpected("could not issue token", err)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		return "", "", nil, apperr.Unexpected("could not record login", err)
	}

	return accessToken, refreshToken, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(), // opaque UUID as refresh token
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

func (s *authService) RefreshAccessToken(refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return "", apperr.Authentication("invalid refresh token")
	}

	if refreshToken.Revoked {
		return "", apperr.Authentication("refresh token revoked")
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		s.refreshTokenRepo.Delete(refreshToken.ID)
		return "", apperr.Authentication("refresh token expired")
	}

	user, err := s.userRepo.FindByID(refreshToken.UserID)
	if err != nil {
		return "", apperr.Authentication("invalid refresh token")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", apperr.Unexpected("could not issue token", err)
	}
	return accessToken, nil
}

func (s *authService) RevokeToken(refreshTokenString string) error {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return apperr.Authentication("invalid refresh token")
	}
	return s.refreshTokenRepo.Revoke(refreshToken.ID)
}

// ValidateToken verifies signature and expiry, then checks that the subject
// still exists; a token referencing a deleted user is rejected.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Authentication("invalid token")
	}

	if _, err := s.userRepo.FindByID(claims.UserID); err != nil {
		return nil, apperr.Authentication("invalid token")
	}

	return claims, nil
}
