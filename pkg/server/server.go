package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"

	"github.com/circulib/circulib/pkg/admins"
	"github.com/circulib/circulib/pkg/auth"
	"github.com/circulib/circulib/pkg/authors"
	"github.com/circulib/circulib/pkg/binder"
	"github.com/circulib/circulib/pkg/books"
	"github.com/circulib/circulib/pkg/borrowers"
	"github.com/circulib/circulib/pkg/borrowings"
	"github.com/circulib/circulib/pkg/config"
	"github.com/circulib/circulib/pkg/errcodes"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	// Register auth routes and get the auth service
	authService := auth.RegisterRoutes(e, db, cfg)
	authMiddleware := auth.NewMiddleware(authService)

	// Every entity group sits behind the same access-token gate.
	registerProtectedRoutes(e, db, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func registerProtectedRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	adminsGroup := e.Group("/admins")
	adminsGroup.Use(authMiddleware.Authenticate)
	admins.RegisterRoutesWithGroup(adminsGroup, db, auth.NewBcryptHasher())

	authorsGroup := e.Group("/authors")
	authorsGroup.Use(authMiddleware.Authenticate)
	authors.RegisterRoutesWithGroup(authorsGroup, db)

	booksGroup := e.Group("/books")
	booksGroup.Use(authMiddleware.Authenticate)
	books.RegisterRoutesWithGroup(booksGroup, db)

	borrowersGroup := e.Group("/borrowers")
	borrowersGroup.Use(authMiddleware.Authenticate)
	borrowers.RegisterRoutesWithGroup(borrowersGroup, db)

	borrowingsGroup := e.Group("/borrowings")
	borrowingsGroup.Use(authMiddleware.Authenticate)
	borrowings.RegisterRoutesWithGroup(borrowingsGroup, db)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
