package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/models"
)

const bearerPrefix = "Bearer "

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate extracts the bearer token from the Authorization header and
// verifies it as an access token. Refresh tokens are rejected here. On
// success the admin is loaded and stored in the context; on any failure the
// request is short-circuited with a 401 before any repository call runs.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return errcodes.Unauthorized("Authentication required")
		}

		email, err := m.authService.tokens.Verify(strings.TrimPrefix(header, bearerPrefix), TokenTypeAccess)
		if err != nil {
			return errcodes.Unauthorized("Invalid or expired token")
		}

		// Verify the admin still exists
		admin, err := m.authService.RetrieveAdminByEmail(ctx, email)
		if err != nil {
			return errcodes.Unauthorized("Admin not found")
		}

		c.Set("admin_email", admin.Email)
		c.Set("admin", admin)

		return next(c)
	}
}

// GetAdminFromContext retrieves the authenticated admin from the Echo context.
func GetAdminFromContext(c echo.Context) (*models.Admin, bool) {
	admin, ok := c.Get("admin").(*models.Admin)
	return admin, ok
}
