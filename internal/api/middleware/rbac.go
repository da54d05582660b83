package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/api/metrics"
	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/session"
)

// RBAC allows the request through only when the session identity holds one
// of the listed roles. A request with no bound identity is unauthorized, not
// forbidden; role membership is a flat allow-list with no hierarchy.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := session.Identity(c.Request().Context())
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("no_identity").Inc()
				return response.Error(c, http.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized)
			}
			if _, ok := allowed[identity.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return response.Error(c, http.StatusForbidden, "Forbidden", response.CodeForbidden)
			}
			return next(c)
		}
	}
}
