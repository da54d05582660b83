package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/api/metrics"
	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/ports"
	"github.com/contentkosh/institute-api/internal/core/session"
)

// Auth verifies the bearer token, re-checks that the subject still exists,
// and binds the decoded identity into a fresh session scope on the request
// context. Handlers downstream read the identity through the session package
// instead of re-parsing the token.
func Auth(codec ports.TokenCodec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("no_token").Inc()
				return response.Error(c, http.StatusUnauthorized, "No token provided", response.CodeUnauthorized)
			}

			identity, err := codec.Verify(raw)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("bad_token").Inc()
				return response.Error(c, http.StatusUnauthorized, "Invalid or expired token", response.CodeUnauthorized)
			}

			// A valid signature is not enough: the account may have been
			// removed after the token was issued.
			exists, err := users.Exists(c.Request().Context(), identity.UserID)
			if err != nil {
				return err
			}
			if !exists {
				metrics.AuthRejectionsTotal.WithLabelValues("user_gone").Inc()
				return response.Error(c, http.StatusUnauthorized, "User not found", response.CodeUnauthorized)
			}

			ctx := session.Begin(c.Request().Context())
			if err := session.SetIdentity(ctx, identity); err != nil {
				return err
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme match is case-insensitive.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
