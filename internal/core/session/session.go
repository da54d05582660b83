// Package session carries the authenticated identity of one in-flight
// request through the call graph without explicit parameter threading.
//
// A scope is opened once per request (Begin), populated once by the
// authentication middleware (SetIdentity), and read from anywhere below
// that point (Identity / IdentityIfAny). Scopes live on context.Context,
// so concurrent requests are isolated by construction: each request owns
// its own context chain and therefore its own slot.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

var (
	// ErrNoSession means the caller is running outside a Begin scope.
	ErrNoSession = errors.New("session: no active scope")
	// ErrNoIdentity means a scope exists but no identity was bound,
	// i.e. the request never passed authentication.
	ErrNoIdentity = errors.New("session: no identity bound")
)

type ctxKey struct{}

// slot is the mutable per-request container. A pointer to it is stored in
// the context so SetIdentity is visible to everything sharing the scope,
// including goroutines spawned during request handling.
type slot struct {
	mu       sync.RWMutex
	identity *domain.Identity
}

// Begin opens a fresh, empty scope on ctx. Any identity bound in a parent
// scope is not visible through the new one.
func Begin(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, &slot{})
}

// SetIdentity binds identity to the current scope. It fails with
// ErrNoSession when called outside Begin.
func SetIdentity(ctx context.Context, identity domain.Identity) error {
	s, ok := ctx.Value(ctxKey{}).(*slot)
	if !ok {
		return ErrNoSession
	}
	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()
	return nil
}

// Identity returns the identity bound to the current scope.
func Identity(ctx context.Context) (domain.Identity, error) {
	s, ok := ctx.Value(ctxKey{}).(*slot)
	if !ok {
		return domain.Identity{}, ErrNoSession
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, ErrNoIdentity
	}
	return *s.identity, nil
}

// IdentityIfAny is the non-failing variant of Identity, for code such as
// logging that must not error merely because it runs unauthenticated or
// outside a request.
func IdentityIfAny(ctx context.Context) (domain.Identity, bool) {
	s, ok := ctx.Value(ctxKey{}).(*slot)
	if !ok {
		return domain.Identity{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}
