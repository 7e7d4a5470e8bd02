package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/circulib/circulib/pkg/config"
)

// RegisterRoutes registers all auth routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) *Service {
	tokens := NewTokenService(cfg.JWTSecret, cfg.AccessTokenLifetime(), cfg.RefreshTokenLifetime())
	authService := NewService(db, NewBcryptHasher(), tokens)

	h := &handler{
		authService: authService,
	}

	auth := e.Group("/auth")
	auth.POST("/signup", h.signup)
	auth.POST("/login", h.login)
	auth.POST("/refresh", h.refresh)

	return authService
}
