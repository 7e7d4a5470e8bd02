package borrowers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/models"
)

type handler struct {
	borrowerService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	borrowers, err := h.borrowerService.ListBorrowers(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, borrowers))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Borrower")
	}

	borrower, err := h.borrowerService.RetrieveBorrower(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, borrower))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBorrowerPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	borrower := &models.Borrower{
		Name:  params.Name,
		Phone: params.Phone,
	}
	if err := h.borrowerService.CreateBorrower(ctx, borrower); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, borrower))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Borrower")
	}

	params := UpdateBorrowerPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	borrower := &models.Borrower{
		ID:    id,
		Name:  params.Name,
		Phone: params.Phone,
	}
	if err := h.borrowerService.UpdateBorrower(ctx, borrower); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) deleteBorrower(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Borrower")
	}

	if err := h.borrowerService.DeleteBorrower(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
