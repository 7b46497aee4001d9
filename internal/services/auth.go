package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"chatgate-backend/internal/config"
	"chatgate-backend/internal/middleware"
	"chatgate-backend/internal/models"
)

// The single PoC account. Identity is fixed; only possession of the
// configured credential pair grants it.
const (
	principalID   = "poc-user"
	principalName = "PoC User"
)

type AuthService struct {
	cfg *config.Config
	jwt *middleware.JWTAuth
}

func NewAuthService(cfg *config.Config, jwt *middleware.JWTAuth) *AuthService {
	return &AuthService{cfg: cfg, jwt: jwt}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, error) {
	// Fail closed: a missing credential or signing secret must never
	// become open access, even for an otherwise-correct pair.
	if !s.cfg.AuthReady() {
		log.Printf("login rejected: auth configuration incomplete (missing: %v)", s.cfg.MissingKeys)
		return nil, &UnauthorizedError{Message: "Invalid username or password"}
	}

	if !credentialsMatch(s.cfg.POCUser, s.cfg.POCPass, req.Username, req.Password) {
		return nil, &UnauthorizedError{Message: "Invalid username or password"}
	}

	principal := models.Principal{ID: principalID, DisplayName: principalName}

	token, err := s.jwt.GenerateSessionToken(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &models.AuthTokens{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwt.TTL.Seconds()),
	}, nil
}

// credentialsMatch compares the submitted pair against the configured one.
// Both checks run unconditionally so response timing does not reveal which
// field was wrong.
func credentialsMatch(cfgUser, cfgPass, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(cfgUser), []byte(user)) == 1

	var passOK bool
	if isBcryptHash(cfgPass) {
		passOK = bcrypt.CompareHashAndPassword([]byte(cfgPass), []byte(pass)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(cfgPass), []byte(pass)) == 1
	}

	return userOK && passOK
}

// isBcryptHash detects a POC_PASS stored as a bcrypt hash instead of
// plaintext.
func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Custom errors
type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }
