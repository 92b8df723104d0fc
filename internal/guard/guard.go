// Package guard implements the declarative route gate: a pure function
// from auth state and requested route to a render/redirect decision.
package guard

import (
	"net/url"

	"github.com/matthieukhl/shopfront/internal/store"
	"github.com/matthieukhl/shopfront/internal/types"
)

// State is the guard's three-way outcome.
type State int

const (
	// StateLoading: auth has not rehydrated yet; render nothing.
	StateLoading State = iota
	// StateAuthorized: render the protected content.
	StateAuthorized
	// StateUnauthorized: redirect, then render nothing.
	StateUnauthorized
)

// Decision is the guard outcome. RedirectTo is set only when State is
// StateUnauthorized.
type Decision struct {
	State      State
	RedirectTo string
}

// Check gates a route against an allow-list of roles. A missing session
// redirects to the login page carrying the original path so login can
// return there; a session with the wrong role redirects to the storefront
// home. Role comparison uses the canonical enum, so it is inherently
// case-insensitive against whatever the backend originally sent.
func Check(auth store.AuthSnapshot, route string, allowed []types.Role) Decision {
	if !auth.Ready {
		return Decision{State: StateLoading}
	}
	if auth.Session == nil {
		return Decision{
			State:      StateUnauthorized,
			RedirectTo: "/login?from=" + url.QueryEscape(route),
		}
	}
	for _, r := range allowed {
		if auth.Session.Role == r {
			return Decision{State: StateAuthorized}
		}
	}
	return Decision{State: StateUnauthorized, RedirectTo: "/"}
}
