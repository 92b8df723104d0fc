package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/cache"
	"github.com/matthieukhl/shopfront/internal/types"
)

func draft(title, category string) types.ProductDraft {
	return types.ProductDraft{Title: title, Category: category, Price: 9.99, Inventory: 10}
}

func TestSearchQueryBuilding(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.Write([]byte(`{"items":[],"page":1,"pageSize":24}`))
	}))
	defer srv.Close()
	svc := NewProductService(api.NewGateway(srv.URL, 0, nil), nil)

	min, max := 10.0, 99.5
	_, err := svc.Search(context.Background(), SearchParams{
		Query:    " lamp ",
		Category: "Home",
		MinPrice: &min,
		MaxPrice: &max,
		Sort:     SortPriceAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, "page=1&pageSize=24&title=lamp&category=Home&minPrice=10&maxPrice=99.5&sortBy=Price&sortDir=Asc", got)

	_, err = svc.Search(context.Background(), SearchParams{Page: 3, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, "page=3&pageSize=5", got, "absent filters must not appear in the query")
}

func TestSearchSortPresets(t *testing.T) {
	tests := []struct {
		sort    SortKey
		by, dir string
	}{
		{SortPriceAsc, "Price", "Asc"},
		{SortPriceDesc, "Price", "Desc"},
		{SortLatest, "Title", "Desc"},
		{SortBestsellers, "Rating", "Desc"},
		{"", "", ""},
	}
	for _, tt := range tests {
		by, dir := mapSort(tt.sort)
		assert.Equal(t, tt.by, by)
		assert.Equal(t, tt.dir, dir)
	}
}

func TestListingCachedWithinTTL(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"items":[{"id":"p1","title":"Lamp"}],"page":1,"pageSize":12,"totalItems":1,"totalPages":1}`))
	}))
	defer srv.Close()
	c := cache.New()
	svc := NewProductService(api.NewGateway(srv.URL, 0, nil), c)

	first, err := svc.GetProducts(context.Background(), 1, 12)
	require.NoError(t, err)
	second, err := svc.GetProducts(context.Background(), 1, 12)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second identical listing must come from cache")
	assert.Equal(t, first, second)

	// A different page is a different cache key.
	_, err = svc.GetProducts(context.Background(), 2, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	c.Clear()
	_, err = svc.GetProducts(context.Background(), 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "cleared cache must refetch")
}

func TestGetByIDNeverCachedAndCacheBusted(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		w.Write([]byte(`{"data":{"id":"p1","name":"Lamp","inventoryAvailable":2}}`))
	}))
	defer srv.Close()
	svc := NewProductService(api.NewGateway(srv.URL, 0, nil), cache.New())

	for i := 0; i < 2; i++ {
		d, err := svc.GetByID(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", d.ID)
		assert.True(t, d.IsLowStock)
	}
	require.Len(t, queries, 2, "detail reads always hit the network")
	for _, q := range queries {
		assert.Contains(t, q, "t=", "detail reads carry a cache-busting timestamp")
	}
}

func TestGetByIDFallsBackAcrossURLSpellings(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/product/details/p1" {
			w.Write([]byte(`{"id":"p1","title":"Lamp"}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()
	svc := NewProductService(api.NewGateway(srv.URL, 0, nil), nil)

	d, err := svc.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", d.ID)
	assert.Equal(t, []string{"/api/product/p1", "/api/product", "/api/product/details/p1"}, paths)
}

func TestGetByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()
	svc := NewProductService(api.NewGateway(srv.URL, 0, nil), nil)

	_, err := svc.GetByID(context.Background(), "ghost")
	assert.Error(t, err)
}

func TestCreateRejectsDuplicateTitleInCategory(t *testing.T) {
	createCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/store/products" {
			w.Write([]byte(`{"items":[{"id":"p1","title":"Lamp","category":"Home"}],"page":1}`))
			return
		}
		createCalls++
		w.Write([]byte(`{"id":"p2","title":"Lamp"}`))
	}))
	defer srv.Close()
	svc := NewProductService(api.NewGateway(srv.URL, 0, nil), nil)

	_, err := svc.Create(context.Background(), draft("Lamp", "Home"))
	assert.ErrorIs(t, err, ErrDuplicateProduct)
	assert.Zero(t, createCalls, "duplicate probe must short-circuit the create")

	// Same title in another category is allowed.
	p, err := svc.Create(context.Background(), draft("Lamp", "Office"))
	require.NoError(t, err)
	assert.Equal(t, "p2", p.ID)
	assert.Equal(t, 1, createCalls)
}

func TestExistsProbeFailureReadsAsNoDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	svc := NewProductService(api.NewGateway(srv.URL, 0, nil), nil)

	assert.False(t, svc.ExistsByTitleAndCategory(context.Background(), "Lamp", "Home"))
}
