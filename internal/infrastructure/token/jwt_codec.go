// Package token signs and verifies the stateless bearer credential used by
// the API. Tokens are HS256 JWTs over the identity subset
// {userId, businessId, role} with issue and expiry timestamps; validity is
// entirely signature plus expiry, nothing is stored server-side.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// JWTCodec issues and verifies bearer tokens with a single static secret.
// Rotating the secret invalidates every outstanding token at once.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTCodec builds a codec for the given secret. A non-positive ttl
// falls back to 24 hours.
func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue serializes the identity subset into a signed, URL-safe token that
// expires ttl from now.
func (c *JWTCodec) Issue(identity domain.Identity) (string, error) {
	now := c.now().UTC()
	claims := jwt.MapClaims{
		"userId":     identity.UserID,
		"businessId": identity.BusinessID,
		"role":       string(identity.Role),
		"iat":        now.Unix(),
		"exp":        now.Add(c.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry of raw and decodes the
// identity subset. Expiry is a hard boundary with no clock-skew grace:
// verification fails with ErrTokenExpired the instant exp passes, and with
// ErrTokenInvalid on any tampered or malformed input.
func (c *JWTCodec) Verify(raw string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	identity := domain.Identity{
		UserID:     claimInt64(claims, "userId"),
		BusinessID: claimInt64(claims, "businessId"),
	}
	role, _ := claims["role"].(string)
	identity.Role = domain.Role(role)

	if identity.UserID == 0 || !identity.Role.Valid() {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	return identity, nil
}

// claimInt64 reads a numeric claim. JSON decoding yields float64 for
// numbers, so both forms are handled.
func claimInt64(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}
