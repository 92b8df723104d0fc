package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/cache"
	"github.com/matthieukhl/shopfront/internal/types"
)

// ErrDuplicateCategory is returned when a create would collide with an
// existing category name.
var ErrDuplicateCategory = errors.New("category already exists")

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrim  = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives the URL slug the backend expects for a category name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return slugTrim.ReplaceAllString(s, "")
}

// CategoryService maps the /api/categories endpoints.
type CategoryService struct {
	gw    *api.Gateway
	cache *cache.QueryCache
}

// NewCategoryService builds a category service. cache may be nil.
func NewCategoryService(gw *api.Gateway, c *cache.QueryCache) *CategoryService {
	return &CategoryService{gw: gw, cache: c}
}

func (s *CategoryService) list(ctx context.Context, path string) ([]types.Category, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(path); ok {
			return v.([]types.Category), nil
		}
	}
	var list []types.Category
	if err := s.gw.Get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	if list == nil {
		list = []types.Category{}
	}
	if s.cache != nil {
		s.cache.Set(path, list, listCacheTTL)
	}
	return list, nil
}

// GetCategories returns the approved category list shown on the storefront.
func (s *CategoryService) GetCategories(ctx context.Context) ([]types.Category, error) {
	return s.list(ctx, "/api/categories")
}

// GetAll returns every category regardless of approval state.
func (s *CategoryService) GetAll(ctx context.Context) ([]types.Category, error) {
	return s.list(ctx, "/api/categories/all")
}

// GetPendingApproval returns categories awaiting approval.
func (s *CategoryService) GetPendingApproval(ctx context.Context) ([]types.Category, error) {
	return s.list(ctx, "/api/categories/pending-approval")
}

// Search queries categories by name term. Results are not cached: the
// search backs duplicate checks, which must see fresh data.
func (s *CategoryService) Search(ctx context.Context, term string) ([]types.Category, error) {
	path := "/api/categories/search?term=" + url.QueryEscape(strings.TrimSpace(term))
	var list []types.Category
	if err := s.gw.Get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("category search failed: %w", err)
	}
	return list, nil
}

// ExistsByName reports whether a category with this name exists
// (case-insensitive, trimmed). Falls back to the full listing when the
// search endpoint fails.
func (s *CategoryService) ExistsByName(ctx context.Context, name string) bool {
	want := strings.ToLower(strings.TrimSpace(name))
	list, err := s.Search(ctx, name)
	if err != nil {
		if list, err = s.GetCategories(ctx); err != nil {
			return false
		}
	}
	for _, c := range list {
		if strings.ToLower(strings.TrimSpace(c.Name)) == want {
			return true
		}
	}
	return false
}

// Create submits {name, slug} after a duplicate check.
func (s *CategoryService) Create(ctx context.Context, name string) (types.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return types.Category{}, errors.New("category name required")
	}
	if s.ExistsByName(ctx, trimmed) {
		return types.Category{}, ErrDuplicateCategory
	}
	payload := map[string]string{"name": trimmed, "slug": Slugify(trimmed)}
	var created types.Category
	if err := s.gw.Post(ctx, "/api/categories", payload, &created); err != nil {
		return types.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id, name string) (types.Category, error) {
	trimmed := strings.TrimSpace(name)
	if id == "" || trimmed == "" {
		return types.Category{}, errors.New("category id and name required")
	}
	payload := map[string]string{"id": id, "name": trimmed, "slug": Slugify(trimmed)}
	var updated types.Category
	if err := s.gw.Put(ctx, "/api/categories", payload, &updated); err != nil {
		return types.Category{}, fmt.Errorf("failed to update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("category id required")
	}
	body := map[string]string{"id": id}
	if err := s.gw.Delete(ctx, "/api/categories", body, nil); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// Approve flips a pending category to approved.
func (s *CategoryService) Approve(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("category id required")
	}
	path := "/api/categories/" + url.PathEscape(id) + "/approve"
	if err := s.gw.Post(ctx, path, map[string]any{}, nil); err != nil {
		return fmt.Errorf("failed to approve category: %w", err)
	}
	return nil
}
