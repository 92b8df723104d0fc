package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/cache"
	"github.com/matthieukhl/shopfront/internal/types"
)

// ErrDuplicateProduct is returned when a create would collide with an
// existing title in the same category.
var ErrDuplicateProduct = errors.New("product already exists in this category")

// listCacheTTL bounds how stale a cached storefront listing may get.
const listCacheTTL = 30 * time.Second

// ProductService maps the /api/product and /api/store/products endpoints.
type ProductService struct {
	gw    *api.Gateway
	cache *cache.QueryCache
}

// NewProductService builds a product service. cache may be nil to disable
// listing caching (tests do this).
func NewProductService(gw *api.Gateway, c *cache.QueryCache) *ProductService {
	return &ProductService{gw: gw, cache: c}
}

// SortKey is a storefront sort preset.
type SortKey string

const (
	SortPriceAsc    SortKey = "price_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortLatest      SortKey = "latest"
	SortBestsellers SortKey = "bestsellers"
)

// SearchParams are the storefront search filters.
type SearchParams struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortKey
	Page     int
	PageSize int
}

// mapSort translates a sort preset to the backend's sortBy/sortDir pair.
func mapSort(sort SortKey) (sortBy, sortDir string) {
	switch sort {
	case SortPriceAsc:
		return "Price", "Asc"
	case SortPriceDesc:
		return "Price", "Desc"
	case SortLatest:
		return "Title", "Desc"
	case SortBestsellers:
		return "Rating", "Desc"
	default:
		return "", ""
	}
}

type rawPaged struct {
	Items      []map[string]any `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
	HasMore    bool             `json:"hasMore"`
}

func (r rawPaged) normalize() types.PagedProducts {
	items := make([]types.Product, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, NormalizeProduct(it))
	}
	return types.PagedProducts{
		Items:      items,
		Page:       r.Page,
		PageSize:   r.PageSize,
		TotalItems: r.TotalItems,
		TotalPages: r.TotalPages,
		HasMore:    r.HasMore,
	}
}

func (s *ProductService) pagedQuery(ctx context.Context, query string) (types.PagedProducts, error) {
	path := "/api/store/products?" + query
	if s.cache != nil {
		if v, ok := s.cache.Get(path); ok {
			return v.(types.PagedProducts), nil
		}
	}
	var raw rawPaged
	if err := s.gw.Get(ctx, path, &raw); err != nil {
		return types.PagedProducts{}, fmt.Errorf("failed to fetch products: %w", err)
	}
	page := raw.normalize()
	if s.cache != nil {
		s.cache.Set(path, page, listCacheTTL)
	}
	return page, nil
}

// GetProducts returns one page of the public store listing.
func (s *ProductService) GetProducts(ctx context.Context, page, pageSize int) (types.PagedProducts, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 12
	}
	return s.pagedQuery(ctx, fmt.Sprintf("page=%d&pageSize=%d", page, pageSize))
}

// Search runs a filtered, sorted store listing query.
func (s *ProductService) Search(ctx context.Context, p SearchParams) (types.PagedProducts, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = 24
	}
	q := fmt.Sprintf("page=%d&pageSize=%d", page, pageSize)
	if t := strings.TrimSpace(p.Query); t != "" {
		q += "&title=" + url.QueryEscape(t)
	}
	if c := strings.TrimSpace(p.Category); c != "" {
		q += "&category=" + url.QueryEscape(c)
	}
	if p.MinPrice != nil {
		q += "&minPrice=" + strconv.FormatFloat(*p.MinPrice, 'f', -1, 64)
	}
	if p.MaxPrice != nil {
		q += "&maxPrice=" + strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64)
	}
	if sortBy, sortDir := mapSort(p.Sort); sortBy != "" {
		q += "&sortBy=" + sortBy + "&sortDir=" + sortDir
	}
	return s.pagedQuery(ctx, q)
}

// GetLatest returns the landing page's "new arrivals" strip.
func (s *ProductService) GetLatest(ctx context.Context) ([]types.Product, error) {
	page, err := s.pagedQuery(ctx, "page=1&pageSize=6&sortBy=Title&sortDir=Desc")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetBest returns the landing page's top-rated strip.
func (s *ProductService) GetBest(ctx context.Context) ([]types.Product, error) {
	page, err := s.pagedQuery(ctx, "page=1&pageSize=3&sortBy=Rating&sortDir=Desc")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetApproved returns every approved product in detail form.
func (s *ProductService) GetApproved(ctx context.Context) ([]types.ProductDetail, error) {
	return s.detailList(ctx, "/api/product/approved")
}

// GetAllDetailed returns every product, approved or not, for back-office
// screens that show approval state.
func (s *ProductService) GetAllDetailed(ctx context.Context) ([]types.ProductDetail, error) {
	return s.detailList(ctx, "/api/product")
}

// GetPendingApproval returns products awaiting approval.
func (s *ProductService) GetPendingApproval(ctx context.Context) ([]types.ProductDetail, error) {
	return s.detailList(ctx, "/api/product/pending-approval")
}

func (s *ProductService) detailList(ctx context.Context, path string) ([]types.ProductDetail, error) {
	var raw []map[string]any
	if err := s.gw.Get(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch product list: %w", err)
	}
	out := make([]types.ProductDetail, 0, len(raw))
	for _, p := range raw {
		out = append(out, NormalizeProductDetail(p))
	}
	return out, nil
}

// GetByID fetches one product in detail form. Detail reads carry a
// cache-busting timestamp and are never served from the query cache:
// availability must be current at the moment of an add-to-cart decision.
// Several URL spellings are tried because backend deployments disagree.
func (s *ProductService) GetByID(ctx context.Context, id string) (types.ProductDetail, error) {
	bust := fmt.Sprintf("t=%d", time.Now().UnixMilli())
	escaped := url.PathEscape(id)
	candidates := []string{
		"/api/product/" + escaped + "?" + bust,
		"/api/product?id=" + url.QueryEscape(id) + "&" + bust,
		"/api/product/details/" + escaped + "?" + bust,
		"/api/product/get/" + escaped + "?" + bust,
	}
	var lastErr error
	for _, path := range candidates {
		var raw any
		if err := s.gw.Get(ctx, path, &raw); err != nil {
			lastErr = err
			continue
		}
		detail := NormalizeProductDetail(raw)
		if detail.ID != "" {
			return detail, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("product %s not found", id)
	}
	return types.ProductDetail{}, lastErr
}

// ExistsByTitleAndCategory probes the store search for a duplicate title,
// optionally restricted to one category. Probe failures read as "no
// duplicate": the create itself remains the authoritative check.
func (s *ProductService) ExistsByTitleAndCategory(ctx context.Context, title, category string) bool {
	q := fmt.Sprintf("page=1&pageSize=12&title=%s", url.QueryEscape(strings.TrimSpace(title)))
	var raw rawPaged
	if err := s.gw.Get(ctx, "/api/store/products?"+q, &raw); err != nil {
		return false
	}
	if len(raw.Items) == 0 {
		return false
	}
	if category == "" {
		return true
	}
	want := strings.ToLower(category)
	for _, it := range raw.Items {
		if strings.ToLower(firstString(it, categoryAliases)) == want {
			return true
		}
	}
	return false
}

// draftPayload maps a draft to the backend's create/update shape.
func draftPayload(d types.ProductDraft) map[string]any {
	return map[string]any{
		"title":              d.Title,
		"price":              d.Price,
		"description":        d.Description,
		"category":           d.Category,
		"imageUrl":           d.Image,
		"inventoryTotal":     d.Inventory,
		"inventoryAvailable": d.Inventory,
	}
}

// Create submits a new product after a duplicate probe.
func (s *ProductService) Create(ctx context.Context, draft types.ProductDraft) (types.Product, error) {
	if s.ExistsByTitleAndCategory(ctx, draft.Title, draft.Category) {
		return types.Product{}, ErrDuplicateProduct
	}
	var raw any
	if err := s.gw.Post(ctx, "/api/product", draftPayload(draft), &raw); err != nil {
		return types.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return NormalizeProduct(deepUnwrap(raw)), nil
}

// Update replaces a product's fields and approval status.
func (s *ProductService) Update(ctx context.Context, id string, draft types.ProductDraft) error {
	if id == "" {
		return errors.New("product id required")
	}
	status := draft.Status
	if status == "" {
		status = types.ProductUnapproved
	}
	payload := draftPayload(draft)
	payload["id"] = id
	payload["status"] = string(status)
	if err := s.gw.Put(ctx, "/api/product", payload, nil); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product. approved tells the backend which index the
// product lives in.
func (s *ProductService) Delete(ctx context.Context, id string, approved bool) error {
	if id == "" {
		return errors.New("product id required")
	}
	body := map[string]any{"id": id, "approved": approved}
	if err := s.gw.Delete(ctx, "/api/product", body, nil); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// Approve flips a pending product to approved.
func (s *ProductService) Approve(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("product id required")
	}
	path := "/api/product/" + url.PathEscape(id) + "/approve"
	if err := s.gw.Post(ctx, path, map[string]any{}, nil); err != nil {
		return fmt.Errorf("failed to approve product: %w", err)
	}
	return nil
}
