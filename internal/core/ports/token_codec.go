package ports

import "github.com/contentkosh/institute-api/internal/core/domain"

// TokenCodec signs identities into bearer tokens and decodes them back.
type TokenCodec interface {
	Issue(identity domain.Identity) (string, error)
	Verify(raw string) (domain.Identity, error)
}
