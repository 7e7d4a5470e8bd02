package borrowings

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/models"
)

type handler struct {
	borrowingService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBorrowingsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	borrowings, err := h.borrowingService.ListBorrowings(ctx, ListBorrowingsOptions{
		BookID:     params.BookID,
		BorrowerID: params.BorrowerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, borrowings))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Borrowing")
	}

	borrowing, err := h.borrowingService.RetrieveBorrowing(ctx, id, RetrieveBorrowingOptions{IncludeRelations: true})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, borrowing))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBorrowingPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	borrowing := &models.Borrowing{
		BookID:     params.BookID,
		BorrowerID: params.BorrowerID,
	}
	if err := h.borrowingService.CreateBorrowing(ctx, borrowing); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, borrowing))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Borrowing")
	}

	params := UpdateBorrowingPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	borrowing := &models.Borrowing{
		ID:         id,
		BookID:     params.BookID,
		BorrowerID: params.BorrowerID,
	}
	if err := h.borrowingService.UpdateBorrowing(ctx, borrowing); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) deleteBorrowing(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Borrowing")
	}

	if err := h.borrowingService.DeleteBorrowing(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
