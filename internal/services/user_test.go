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

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "sam@example.com", " trimmed@example.com "} {
		assert.NoError(t, validateEmail(ok), "email %q", ok)
	}
	for _, bad := range []string{"", "no-at", "@example.com", "sam@", "sam@nodot"} {
		assert.Error(t, validateEmail(bad), "email %q", bad)
	}
}

func TestCreateStaffRejectsShopperRole(t *testing.T) {
	svc := NewUserService(api.NewGateway("http://unused.invalid", 0, nil))
	err := svc.CreateStaff(context.Background(), "a@b.co", "a", "pw", types.RoleShopper)
	assert.Error(t, err)
}

func TestGetUsersNormalizesMixedRoles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"u1","email":"sam@example.com","username":"sam","role":"shopper"},
			{"_id":"u2","email":"erin@example.com","name":"erin","role":1},
			{"id":"u3","email":"ada@example.com","username":"ada","role":"superadmin"}
		]`))
	}))
	defer srv.Close()
	svc := NewUserService(api.NewGateway(srv.URL, 0, nil))

	users, err := svc.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, types.RoleShopper, users[0].Role)
	assert.Equal(t, "u2", users[1].ID)
	assert.Equal(t, "erin", users[1].Username)
	assert.Equal(t, types.RoleEmployee, users[1].Role)
	assert.Equal(t, types.RoleAdmin, users[2].Role)
}
