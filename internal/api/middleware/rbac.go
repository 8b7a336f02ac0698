package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces role-based access control. It must run after Auth; a request
// without a subject or with a role outside allowedRoles is rejected with 401.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if subject, _ := c.Get(SubjectKey).(string); subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			role, _ := c.Get(RoleKey).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "insufficient role")
			}
			return next(c)
		}
	}
}
