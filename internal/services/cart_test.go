package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/types"
)

func cartServiceOn(t *testing.T, handler http.Handler, token string) *CartService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokenFn := func() string { return token }
	return NewCartService(api.NewGateway(srv.URL, 0, tokenFn), tokenFn)
}

func TestCartReadsSkippedWhenSignedOut(t *testing.T) {
	called := false
	svc := cartServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), "")

	cart, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cart)

	list, err := svc.GetAllMine(context.Background(), MineOptions{})
	require.NoError(t, err)
	assert.Nil(t, list)
	assert.False(t, called, "signed-out cart reads must not hit the network")
}

func TestCartMutationsRequireAuth(t *testing.T) {
	svc := cartServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	}), "")

	_, err := svc.AddItem(context.Background(), "p1", 1)
	assert.True(t, errors.Is(err, api.ErrNotAuthenticated))
	_, err = svc.Checkout(context.Background(), "1 Main St", types.PaymentCard)
	assert.True(t, errors.Is(err, api.ErrNotAuthenticated))
	assert.True(t, errors.Is(svc.Clear(context.Background()), api.ErrNotAuthenticated))
}

func TestGetActiveEmptyCartIsNil(t *testing.T) {
	svc := cartServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}), "tok")

	cart, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cart, "a cart without an id reads as no cart")
}

func TestGetAllMineFiltersAndSorts(t *testing.T) {
	day := func(d int) string {
		return time.Date(2026, time.August, d, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)
	}
	svc := cartServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"active","status":"Active","createdAt":"` + day(10) + `"},
			{"id":"old","status":"CheckedOut","createdAt":"` + day(1) + `"},
			{"id":"new","status":"CheckedOut","createdAt":"` + day(20) + `"},
			{"id":"mid","status":"CheckedOut","createdAt":"` + day(12) + `"}
		]`))
	}), "tok")
	ctx := context.Background()

	all, err := svc.GetAllMine(ctx, MineOptions{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "new", all[0].ID, "history sorts newest first")
	assert.Equal(t, "old", all[3].ID)

	orders, err := svc.GetAllMine(ctx, MineOptions{OnlyOrders: true})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for _, c := range orders {
		assert.NotEqual(t, "active", c.ID)
	}

	windowed, err := svc.GetAllMine(ctx, MineOptions{
		OnlyOrders: true,
		From:       time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, "mid", windowed[0].ID)
}

func TestCheckoutSendsNumericPaymentMethod(t *testing.T) {
	var got map[string]any
	svc := cartServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":"c1","status":"CheckedOut"}`))
	}), "tok")

	cart, err := svc.Checkout(context.Background(), "1 Main St", types.PaymentBankTransfer)
	require.NoError(t, err)
	assert.Equal(t, "CheckedOut", cart.Status)
	assert.Equal(t, "1 Main St", got["address"])
	assert.Equal(t, float64(2), got["paymentMethod"], "payment method travels as the wire enum")
}

func TestRemoveItemEscapesProductID(t *testing.T) {
	var gotPath string
	svc := cartServiceOn(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"id":"c1"}`))
	}), "tok")

	_, err := svc.RemoveItem(context.Background(), "p/1")
	require.NoError(t, err)
	assert.Equal(t, "/api/Cart/remove-item/p%2F1", gotPath)
}
