package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/types"
)

// UserService maps the back-office user endpoints.
type UserService struct {
	gw *api.Gateway
}

// NewUserService builds a user service on the shared gateway.
func NewUserService(gw *api.Gateway) *UserService {
	return &UserService{gw: gw}
}

// GetUsers lists every account, normalized to the canonical record shape.
func (s *UserService) GetUsers(ctx context.Context) ([]types.UserRecord, error) {
	var raw []map[string]any
	if err := s.gw.Get(ctx, "/api/users", &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	out := make([]types.UserRecord, 0, len(raw))
	for _, u := range raw {
		out = append(out, NormalizeUserRecord(u))
	}
	return out, nil
}

// CreateStaff registers an employee or superadmin account.
func (s *UserService) CreateStaff(ctx context.Context, email, username, password string, role types.Role) error {
	if !role.IsStaff() {
		return fmt.Errorf("role %q is not a staff role", role)
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	payload := map[string]string{
		"email":    email,
		"username": username,
		"password": password,
		"role":     string(role),
	}
	if err := s.gw.Post(ctx, "/api/admin/auth", payload, nil); err != nil {
		return fmt.Errorf("failed to create staff user: %w", err)
	}
	return nil
}

// UpdateUser patches an account's email/name/username.
func (s *UserService) UpdateUser(ctx context.Context, id string, fields map[string]string) (types.UserRecord, error) {
	if id == "" {
		return types.UserRecord{}, errors.New("user id required")
	}
	var raw map[string]any
	path := "/api/users/" + url.PathEscape(id)
	if err := s.gw.Put(ctx, path, fields, &raw); err != nil {
		return types.UserRecord{}, fmt.Errorf("failed to update user: %w", err)
	}
	return NormalizeUserRecord(raw), nil
}

// validateEmail is the client-side sanity check run before any auth or
// staff-creation call leaves the process.
func validateEmail(email string) error {
	e := strings.TrimSpace(email)
	at := strings.Index(e, "@")
	if at < 1 || at == len(e)-1 || !strings.Contains(e[at+1:], ".") {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}
