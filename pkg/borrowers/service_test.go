package borrowers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/models"
)

func TestService_DeleteBorrowerNullsBorrowingReferences(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	borrower := &models.Borrower{Name: "Frodo Baggins"}
	require.NoError(t, svc.CreateBorrower(ctx, borrower))

	book := &models.Book{Title: "The Hobbit"}
	_, err := db.NewInsert().Model(book).Returning("*").Exec(ctx)
	require.NoError(t, err)

	borrowing := &models.Borrowing{BookID: &book.ID, BorrowerID: &borrower.ID}
	_, err = db.NewInsert().Model(borrowing).Returning("*").Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBorrower(ctx, borrower.ID))

	// The lending record survives with its borrower reference nulled.
	found := &models.Borrowing{}
	err = db.NewSelect().Model(found).Where("bwg.id = ?", borrowing.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Nil(t, found.BorrowerID)
	require.NotNil(t, found.BookID)
	assert.Equal(t, book.ID, *found.BookID)
}

func TestService_DeleteBorrowerNotFound(t *testing.T) {
	t.Parallel()
	svc := NewService(newTestDB(t))

	err := svc.DeleteBorrower(context.Background(), 999)
	assert.ErrorIs(t, err, errcodes.NotFound("Borrower"))
}
