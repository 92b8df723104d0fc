package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/types"
)

// AuthService maps the login/register/logout endpoints. Responses carry
// the user either nested under "user" or spread across the top level, so
// both shapes normalize through NormalizeSession.
type AuthService struct {
	gw *api.Gateway
}

// NewAuthService builds an auth service on the shared gateway.
func NewAuthService(gw *api.Gateway) *AuthService {
	return &AuthService{gw: gw}
}

func (s *AuthService) authCall(ctx context.Context, path string, body any) (types.Session, error) {
	var raw map[string]any
	if err := s.gw.Post(ctx, path, body, &raw); err != nil {
		return types.Session{}, err
	}
	token, _ := raw["token"].(string)
	if token == "" {
		return types.Session{}, errors.New("auth response carried no token")
	}
	src := raw
	if nested, ok := raw["user"].(map[string]any); ok {
		src = nested
	}
	return NormalizeSession(token, src), nil
}

// Login exchanges credentials for a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (types.Session, error) {
	if err := validateEmail(email); err != nil {
		return types.Session{}, err
	}
	if password == "" {
		return types.Session{}, errors.New("password required")
	}
	sess, err := s.authCall(ctx, "/api/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return types.Session{}, fmt.Errorf("login failed: %w", err)
	}
	return sess, nil
}

// Register creates a shopper account and signs it in.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (types.Session, error) {
	if err := validateEmail(email); err != nil {
		return types.Session{}, err
	}
	if username == "" || password == "" {
		return types.Session{}, errors.New("username and password required")
	}
	body := map[string]string{"email": email, "username": username, "password": password}
	sess, err := s.authCall(ctx, "/api/auth", body)
	if err != nil {
		return types.Session{}, fmt.Errorf("registration failed: %w", err)
	}
	return sess, nil
}

// Logout tells the server to drop the session. Callers treat failures as
// best-effort: local state is cleared regardless.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.gw.Post(ctx, "/api/logout", map[string]any{}, nil)
}
