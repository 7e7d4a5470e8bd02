package admins

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/circulib/circulib/pkg/auth"
)

// RegisterRoutesWithGroup registers admin management routes on a
// pre-configured group. There is intentionally no POST: signup is the only
// create path.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, hasher auth.PasswordHasher) {
	h := &handler{
		adminService: NewService(db, hasher),
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.deleteAdmin)
}
