package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/cache"
	"github.com/matthieukhl/shopfront/internal/services"
	"github.com/matthieukhl/shopfront/internal/storage"
	"github.com/matthieukhl/shopfront/internal/types"
)

// AuthState is the authentication phase of the client.
type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticating
	Authenticated
)

// AuthSnapshot is the observable auth state. Ready is independent of the
// auth state: it flips true once rehydration has run, whether or not a
// session was found.
type AuthSnapshot struct {
	State   AuthState
	Session *types.Session
	Ready   bool
}

// AuthStore owns the session lifecycle: login, register, logout and
// rehydration, plus persistence to the storage tier chosen by the
// remember flag.
type AuthStore struct {
	notifier
	svc   *services.AuthService
	gw    *api.Gateway
	tiers storage.Tiers
	cache *cache.QueryCache

	mu            sync.RWMutex
	snap          AuthSnapshot
	rehydrateOnce sync.Once
}

// NewAuthStore wires an auth store. cache may be nil.
func NewAuthStore(svc *services.AuthService, gw *api.Gateway, tiers storage.Tiers, c *cache.QueryCache) *AuthStore {
	return &AuthStore{svc: svc, gw: gw, tiers: tiers, cache: c}
}

// Snapshot returns the current auth state.
func (s *AuthStore) Snapshot() AuthSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *AuthStore) setSnapshot(snap AuthSnapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	s.notify()
}

// Rehydrate restores a persisted session. It runs its body exactly once
// per store; later calls only guarantee Ready is set. Durable state wins
// over ephemeral, matching the web client's storage read order.
func (s *AuthStore) Rehydrate() {
	s.rehydrateOnce.Do(func() {
		snap := AuthSnapshot{State: Unauthenticated, Ready: true}
		token, okT := s.tiers.Lookup(storage.KeyToken)
		rawUser, okU := s.tiers.Lookup(storage.KeyUser)
		if okT && okU {
			var sess types.Session
			if err := json.Unmarshal([]byte(rawUser), &sess); err == nil && sess.UserID != "" {
				sess.Token = token
				snap.State = Authenticated
				snap.Session = &sess
			}
		}
		s.setSnapshot(snap)
	})
}

// persist writes the session to the tier selected by remember.
func (s *AuthStore) persist(sess types.Session, remember bool) error {
	tier := s.tiers.Ephemeral
	if remember {
		tier = s.tiers.Durable
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := tier.Set(storage.KeyToken, sess.Token); err != nil {
		return err
	}
	return tier.Set(storage.KeyUser, string(raw))
}

// finishAuth is the shared tail of login and register: persist, drop any
// cross-session query state, publish the new snapshot and compute the
// role-based destination.
func (s *AuthStore) finishAuth(sess types.Session, remember bool) (string, error) {
	if err := s.persist(sess, remember); err != nil {
		s.setSnapshot(AuthSnapshot{State: Unauthenticated, Ready: true})
		return "", err
	}
	if s.cache != nil {
		s.cache.Clear()
	}
	s.setSnapshot(AuthSnapshot{State: Authenticated, Session: &sess, Ready: true})
	return types.RedirectForRole(sess.Role), nil
}

// Login signs in and returns the post-login redirect target. While the
// call is in flight the gateway is held in its auth-flow state so no
// stale token leaks onto the wire and cart traffic is blocked.
func (s *AuthStore) Login(ctx context.Context, email, password string, remember bool) (string, error) {
	s.setSnapshot(AuthSnapshot{State: Authenticating, Ready: s.Snapshot().Ready})
	s.gw.SetAuthFlow(true)
	sess, err := s.svc.Login(ctx, email, password)
	s.gw.SetAuthFlow(false)
	if err != nil {
		s.setSnapshot(AuthSnapshot{State: Unauthenticated, Ready: true})
		return "", err
	}
	return s.finishAuth(sess, remember)
}

// Register creates an account and signs it in, same tail as Login.
func (s *AuthStore) Register(ctx context.Context, email, username, password string, remember bool) (string, error) {
	s.setSnapshot(AuthSnapshot{State: Authenticating, Ready: s.Snapshot().Ready})
	s.gw.SetAuthFlow(true)
	sess, err := s.svc.Register(ctx, email, username, password)
	s.gw.SetAuthFlow(false)
	if err != nil {
		s.setSnapshot(AuthSnapshot{State: Unauthenticated, Ready: true})
		return "", err
	}
	return s.finishAuth(sess, remember)
}

// Logout tells the server best-effort, then clears both storage tiers and
// the query cache regardless of the server's answer. Favorites are left
// alone: they persist independently of the session.
func (s *AuthStore) Logout(ctx context.Context) {
	_ = s.svc.Logout(ctx)
	s.tiers.Purge(storage.KeyToken)
	s.tiers.Purge(storage.KeyUser)
	if s.cache != nil {
		s.cache.Clear()
	}
	s.setSnapshot(AuthSnapshot{State: Unauthenticated, Ready: true})
}
