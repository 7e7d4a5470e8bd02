package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	authService *Service
}

// signup registers a new administrator.
func (h *handler) signup(c echo.Context) error {
	ctx := c.Request().Context()

	params := SignupPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	admin, tokens, err := h.authService.Signup(ctx, params.Email, params.Password)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, SignupResponse{
		Email:        admin.Email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}))
}

// login authenticates an administrator.
func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	tokens, err := h.authService.Login(ctx, params.Email, params.Password)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, tokens))
}

// refresh mints a new access token from a valid refresh token.
func (h *handler) refresh(c echo.Context) error {
	params := RefreshPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	tokens, err := h.authService.Refresh(params.RefreshToken)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, tokens))
}
