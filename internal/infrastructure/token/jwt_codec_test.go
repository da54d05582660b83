package token

import (
	"strings"
	"testing"
	"time"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	for _, role := range domain.Roles {
		issued := domain.Identity{UserID: 42, BusinessID: 3, Role: role}
		raw, err := codec.Issue(issued)
		if err != nil {
			t.Fatalf("Issue(%s): %v", role, err)
		}

		got, err := codec.Verify(raw)
		if err != nil {
			t.Fatalf("Verify(%s): %v", role, err)
		}
		if got.UserID != issued.UserID || got.BusinessID != issued.BusinessID || got.Role != issued.Role {
			t.Fatalf("round trip mismatch for %s: got %+v", role, got)
		}
	}
}

func TestJWTCodec_NoBusinessSentinelSurvives(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	raw, err := codec.Issue(domain.Identity{UserID: 9, BusinessID: domain.NoBusiness, Role: domain.RoleGuest})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := codec.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.BusinessID != domain.NoBusiness {
		t.Fatalf("expected business %d, got %d", domain.NoBusiness, got.BusinessID)
	}
}

func TestJWTCodec_TamperedSignature(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	raw, err := codec.Issue(domain.Identity{UserID: 1, BusinessID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a byte in the signature segment.
	last := raw[len(raw)-1]
	flip := byte('A')
	if last == flip {
		flip = 'B'
	}
	tampered := raw[:len(raw)-1] + string(flip)

	if _, err := codec.Verify(tampered); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	raw, err := NewJWTCodec("secret-a", time.Hour).Issue(domain.Identity{UserID: 1, BusinessID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewJWTCodec("secret-b", time.Hour).Verify(raw); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTCodec_Expired(t *testing.T) {
	codec := NewJWTCodec("secret", time.Minute)

	raw, err := codec.Issue(domain.Identity{UserID: 1, BusinessID: 1, Role: domain.RoleTeacher})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	codec.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := codec.Verify(raw); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTCodec_Garbage(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", strings.Repeat("x.", 3)} {
		if _, err := codec.Verify(raw); err != domain.ErrTokenInvalid {
			t.Fatalf("Verify(%q): expected ErrTokenInvalid, got %v", raw, err)
		}
	}
}
