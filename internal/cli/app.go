package cli

import (
	"errors"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/cache"
	"github.com/matthieukhl/shopfront/internal/config"
	"github.com/matthieukhl/shopfront/internal/guard"
	"github.com/matthieukhl/shopfront/internal/services"
	"github.com/matthieukhl/shopfront/internal/storage"
	"github.com/matthieukhl/shopfront/internal/store"
	"github.com/matthieukhl/shopfront/internal/types"
)

// App is one application root: config, storage tiers, the gateway and
// every service and store built on it. Commands construct a fresh App per
// invocation, so nothing lives in package state.
//
// The ephemeral tier is process-scoped, which makes a remember=false
// session behave like a browser tab session: it vanishes when the command
// exits.
type App struct {
	Config     *config.Config
	Tiers      storage.Tiers
	Cache      *cache.QueryCache
	Gateway    *api.Gateway
	AuthSvc    *services.AuthService
	CartSvc    *services.CartService
	Products   *services.ProductService
	Categories *services.CategoryService
	Users      *services.UserService
	Orders     *services.OrderService
	Auth       *store.AuthStore
	Cart       *store.CartStore
	Favorites  *store.FavoritesStore
}

// NewApp loads config and wires the full dependency graph, then
// rehydrates any persisted session.
func NewApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.API.BaseURL == "" {
		return nil, errors.New("no backend configured: set SHOPFRONT_API_URL or api.base_url in config.yaml")
	}

	durable, err := storage.NewFileStore(cfg.State.Dir)
	if err != nil {
		return nil, err
	}
	tiers := storage.Tiers{Durable: durable, Ephemeral: storage.NewMemoryStore()}

	tokenFn := func() string {
		token, _ := tiers.Lookup(storage.KeyToken)
		return token
	}
	gw := api.NewGateway(cfg.API.BaseURL, cfg.API.Timeout, tokenFn)
	queryCache := cache.New()

	app := &App{
		Config:     cfg,
		Tiers:      tiers,
		Cache:      queryCache,
		Gateway:    gw,
		AuthSvc:    services.NewAuthService(gw),
		CartSvc:    services.NewCartService(gw, tokenFn),
		Products:   services.NewProductService(gw, queryCache),
		Categories: services.NewCategoryService(gw, queryCache),
		Users:      services.NewUserService(gw),
		Orders:     services.NewOrderService(gw),
	}
	app.Auth = store.NewAuthStore(app.AuthSvc, gw, tiers, queryCache)
	app.Cart = store.NewCartStore(app.CartSvc)
	app.Favorites = store.NewFavoritesStore(durable)

	app.Auth.Rehydrate()
	app.Favorites.Hydrate()
	return app, nil
}

// requireRoles runs the route guard for a back-office command and turns a
// denial into the redirect the web client would perform.
func (a *App) requireRoles(route string, allowed ...types.Role) error {
	decision := guard.Check(a.Auth.Snapshot(), route, allowed)
	switch decision.State {
	case guard.StateAuthorized:
		return nil
	case guard.StateLoading:
		return errors.New("auth state not ready")
	default:
		return fmt.Errorf("access denied, redirecting to %s", decision.RedirectTo)
	}
}
