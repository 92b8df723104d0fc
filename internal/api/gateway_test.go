package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayAttachesBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, 0, func() string { return "tok-123" })
	require.NoError(t, gw.Get(context.Background(), "/api/product", nil))
	assert.Equal(t, "Bearer tok-123", got)
}

func TestGatewayKeepsExistingBearerPrefix(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, 0, func() string { return "Bearer tok-123" })
	require.NoError(t, gw.Get(context.Background(), "/api/product", nil))
	assert.Equal(t, "Bearer tok-123", got)
}

func TestGatewaySkipsAuthHeaderOnAuthEndpoints(t *testing.T) {
	headers := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers[r.URL.Path] = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, 0, func() string { return "stale-token" })
	ctx := context.Background()
	for _, path := range []string{"/api/login", "/api/auth", "/api/admin/auth"} {
		require.NoError(t, gw.Post(ctx, path, map[string]string{}, nil))
		assert.Empty(t, headers[path], "auth endpoint %s must not carry Authorization", path)
	}

	require.NoError(t, gw.Get(ctx, "/api/product", nil))
	assert.Equal(t, "Bearer stale-token", headers["/api/product"])
}

func TestGatewayDropsHeaderDuringAuthFlow(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, 0, func() string { return "tok" })
	gw.SetAuthFlow(true)
	require.NoError(t, gw.Get(context.Background(), "/api/product", nil))
	assert.Empty(t, got)
}

func TestGatewayBlocksCartCallsDuringAuthFlow(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, 0, nil)
	gw.SetAuthFlow(true)

	err := gw.Get(context.Background(), "/api/Cart/active", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestBlocked))
	assert.False(t, called, "blocked cart call must not reach the network")

	// Non-cart calls still go through.
	require.NoError(t, gw.Get(context.Background(), "/api/categories", nil))
	assert.True(t, called)

	gw.SetAuthFlow(false)
	require.NoError(t, gw.Get(context.Background(), "/api/Cart/active", nil))
}

func TestGatewayErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"out of stock"}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, 0, nil)
	err := gw.Post(context.Background(), "/api/Cart/add-item", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "out of stock", apiErr.Message)
}

func TestGatewayErrorFallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, 0, nil)
	err := gw.Get(context.Background(), "/api/product", nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestGatewayDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"p1","title":"Lamp"}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, 0, nil)
	var out struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, gw.Get(context.Background(), "/api/product/p1", &out))
	assert.Equal(t, "p1", out.ID)
	assert.Equal(t, "Lamp", out.Title)
}
