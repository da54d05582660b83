package session

import (
	"context"
	"sync"
	"testing"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

func TestIdentity_OutsideScope(t *testing.T) {
	if _, err := Identity(context.Background()); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := SetIdentity(context.Background(), domain.Identity{}); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, ok := IdentityIfAny(context.Background()); ok {
		t.Fatalf("expected no identity outside scope")
	}
}

func TestIdentity_EmptyScope(t *testing.T) {
	ctx := Begin(context.Background())
	if _, err := Identity(ctx); err != ErrNoIdentity {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
	if _, ok := IdentityIfAny(ctx); ok {
		t.Fatalf("expected no identity in empty scope")
	}
}

func TestSetIdentity_VisibleInScope(t *testing.T) {
	ctx := Begin(context.Background())
	want := domain.Identity{UserID: 7, Email: "a@b.c", BusinessID: 1, Role: domain.RoleAdmin}
	if err := SetIdentity(ctx, want); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}

	got, err := Identity(ctx)
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	if got != want {
		t.Fatalf("identity mismatch: got %+v want %+v", got, want)
	}

	// Nested contexts derived after binding still observe the same slot.
	child := context.WithValue(ctx, struct{ k string }{"x"}, "y")
	got, err = Identity(child)
	if err != nil || got != want {
		t.Fatalf("child context lost identity: %+v %v", got, err)
	}
}

func TestBegin_ShadowsParentScope(t *testing.T) {
	outer := Begin(context.Background())
	if err := SetIdentity(outer, domain.Identity{UserID: 1, Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}

	inner := Begin(outer)
	if _, err := Identity(inner); err != ErrNoIdentity {
		t.Fatalf("inner scope should start empty, got %v", err)
	}
}

func TestScopes_NoCrossTalkUnderConcurrency(t *testing.T) {
	const workers = 64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()

			ctx := Begin(context.Background())
			want := domain.Identity{UserID: id, BusinessID: id % 3, Role: domain.RoleStudent}
			if err := SetIdentity(ctx, want); err != nil {
				t.Errorf("SetIdentity: %v", err)
				return
			}

			// Re-read many times while other goroutines churn their
			// own scopes; the slot must never change underneath us.
			for j := 0; j < 100; j++ {
				got, err := Identity(ctx)
				if err != nil {
					t.Errorf("Identity: %v", err)
					return
				}
				if got.UserID != id {
					t.Errorf("cross-talk: scope %d observed user %d", id, got.UserID)
					return
				}
			}
		}(int64(i + 1))
	}
	wg.Wait()
}
