package borrowings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/migrations"
	"github.com/circulib/circulib/pkg/models"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// Every pooled connection would get its own in-memory database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestBook(ctx context.Context, t *testing.T, db *bun.DB, title string) *models.Book {
	t.Helper()

	book := &models.Book{Title: title}
	_, err := db.NewInsert().Model(book).Returning("*").Exec(ctx)
	require.NoError(t, err)
	return book
}

func createTestBorrower(ctx context.Context, t *testing.T, db *bun.DB, name string) *models.Borrower {
	t.Helper()

	borrower := &models.Borrower{Name: name}
	_, err := db.NewInsert().Model(borrower).Returning("*").Exec(ctx)
	require.NoError(t, err)
	return borrower
}

func TestService_CreateAndRetrieveBorrowing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := createTestBook(ctx, t, db, "The Hobbit")
	borrower := createTestBorrower(ctx, t, db, "Frodo Baggins")

	borrowing := &models.Borrowing{BookID: &book.ID, BorrowerID: &borrower.ID}
	require.NoError(t, svc.CreateBorrowing(ctx, borrowing))
	assert.NotZero(t, borrowing.ID)

	found, err := svc.RetrieveBorrowing(ctx, borrowing.ID, RetrieveBorrowingOptions{})
	require.NoError(t, err)
	require.NotNil(t, found.BookID)
	require.NotNil(t, found.BorrowerID)
	assert.Equal(t, book.ID, *found.BookID)
	assert.Equal(t, borrower.ID, *found.BorrowerID)
	assert.Nil(t, found.Book)
	assert.Nil(t, found.Borrower)
}

func TestService_CreateBorrowingSamePairTwice(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := createTestBook(ctx, t, db, "The Hobbit")
	borrower := createTestBorrower(ctx, t, db, "Frodo Baggins")

	first := &models.Borrowing{BookID: &book.ID, BorrowerID: &borrower.ID}
	require.NoError(t, svc.CreateBorrowing(ctx, first))

	// Borrowing the same book again is a new lending event, not an error.
	second := &models.Borrowing{BookID: &book.ID, BorrowerID: &borrower.ID}
	require.NoError(t, svc.CreateBorrowing(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	all, err := svc.ListBorrowings(ctx, ListBorrowingsOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_RetrieveBorrowingIncludeRelations(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := createTestBook(ctx, t, db, "The Hobbit")
	borrower := createTestBorrower(ctx, t, db, "Frodo Baggins")

	borrowing := &models.Borrowing{BookID: &book.ID, BorrowerID: &borrower.ID}
	require.NoError(t, svc.CreateBorrowing(ctx, borrowing))

	found, err := svc.RetrieveBorrowing(ctx, borrowing.ID, RetrieveBorrowingOptions{IncludeRelations: true})
	require.NoError(t, err)
	require.NotNil(t, found.Book)
	require.NotNil(t, found.Borrower)
	assert.Equal(t, "The Hobbit", found.Book.Title)
	assert.Equal(t, "Frodo Baggins", found.Borrower.Name)
}

func TestService_RetrieveBorrowingNotFound(t *testing.T) {
	t.Parallel()
	svc := NewService(newTestDB(t))

	_, err := svc.RetrieveBorrowing(context.Background(), 999, RetrieveBorrowingOptions{})
	assert.ErrorIs(t, err, errcodes.NotFound("Borrowing"))
}

func TestService_ListBorrowingsFilters(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	hobbit := createTestBook(ctx, t, db, "The Hobbit")
	lotr := createTestBook(ctx, t, db, "The Lord of the Rings")
	frodo := createTestBorrower(ctx, t, db, "Frodo Baggins")
	sam := createTestBorrower(ctx, t, db, "Samwise Gamgee")

	require.NoError(t, svc.CreateBorrowing(ctx, &models.Borrowing{BookID: &hobbit.ID, BorrowerID: &frodo.ID}))
	require.NoError(t, svc.CreateBorrowing(ctx, &models.Borrowing{BookID: &lotr.ID, BorrowerID: &frodo.ID}))
	require.NoError(t, svc.CreateBorrowing(ctx, &models.Borrowing{BookID: &lotr.ID, BorrowerID: &sam.ID}))

	byBook, err := svc.ListBorrowings(ctx, ListBorrowingsOptions{BookID: &lotr.ID})
	require.NoError(t, err)
	assert.Len(t, byBook, 2)

	byBorrower, err := svc.ListBorrowings(ctx, ListBorrowingsOptions{BorrowerID: &frodo.ID})
	require.NoError(t, err)
	assert.Len(t, byBorrower, 2)

	both, err := svc.ListBorrowings(ctx, ListBorrowingsOptions{BookID: &lotr.ID, BorrowerID: &frodo.ID})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, lotr.ID, *both[0].BookID)
	assert.Equal(t, frodo.ID, *both[0].BorrowerID)
}

func TestService_UpdateBorrowing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := createTestBook(ctx, t, db, "The Hobbit")
	frodo := createTestBorrower(ctx, t, db, "Frodo Baggins")
	sam := createTestBorrower(ctx, t, db, "Samwise Gamgee")

	borrowing := &models.Borrowing{BookID: &book.ID, BorrowerID: &frodo.ID}
	require.NoError(t, svc.CreateBorrowing(ctx, borrowing))

	borrowing.BorrowerID = &sam.ID
	require.NoError(t, svc.UpdateBorrowing(ctx, borrowing))

	found, err := svc.RetrieveBorrowing(ctx, borrowing.ID, RetrieveBorrowingOptions{})
	require.NoError(t, err)
	require.NotNil(t, found.BorrowerID)
	assert.Equal(t, sam.ID, *found.BorrowerID)
}

func TestService_UpdateBorrowingNotFound(t *testing.T) {
	t.Parallel()
	svc := NewService(newTestDB(t))

	err := svc.UpdateBorrowing(context.Background(), &models.Borrowing{ID: 999})
	assert.ErrorIs(t, err, errcodes.NotFound("Borrowing"))
}

func TestService_DeleteBorrowing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := createTestBook(ctx, t, db, "The Hobbit")
	borrower := createTestBorrower(ctx, t, db, "Frodo Baggins")

	borrowing := &models.Borrowing{BookID: &book.ID, BorrowerID: &borrower.ID}
	require.NoError(t, svc.CreateBorrowing(ctx, borrowing))

	require.NoError(t, svc.DeleteBorrowing(ctx, borrowing.ID))

	_, err := svc.RetrieveBorrowing(ctx, borrowing.ID, RetrieveBorrowingOptions{})
	assert.ErrorIs(t, err, errcodes.NotFound("Borrowing"))

	err = svc.DeleteBorrowing(ctx, borrowing.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Borrowing"))
}
