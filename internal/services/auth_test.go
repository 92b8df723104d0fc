package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/types"
)

func authServiceOn(t *testing.T, handler http.Handler) *AuthService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAuthService(api.NewGateway(srv.URL, 0, nil))
}

func TestLoginNormalizesNestedUser(t *testing.T) {
	svc := authServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","name":"Sam","email":"sam@example.com","role":"shopper"}}`))
	}))

	sess, err := svc.Login(context.Background(), "sam@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, types.RoleShopper, sess.Role)
}

func TestRegisterNormalizesTopLevelUser(t *testing.T) {
	// Registration spreads the user across the response root instead of
	// nesting it; both shapes must land on the same session.
	svc := authServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-2","id":"u2","username":"nell","email":"nell@example.com","role":3}`))
	}))

	sess, err := svc.Register(context.Background(), "nell@example.com", "nell", "password")
	require.NoError(t, err)
	assert.Equal(t, "u2", sess.UserID)
	assert.Equal(t, "nell", sess.Name)
	assert.Equal(t, types.RoleAdmin, sess.Role)
}

func TestLoginRejectsMissingToken(t *testing.T) {
	svc := authServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":"u1"}}`))
	}))

	_, err := svc.Login(context.Background(), "sam@example.com", "password")
	assert.Error(t, err)
}

func TestLoginValidatesInputLocally(t *testing.T) {
	svc := authServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid credentials must not reach the network")
	}))
	ctx := context.Background()

	_, err := svc.Login(ctx, "not-an-email", "password")
	assert.Error(t, err)
	_, err = svc.Login(ctx, "sam@example.com", "")
	assert.Error(t, err)
	_, err = svc.Register(ctx, "sam@example.com", "", "password")
	assert.Error(t, err)
}
