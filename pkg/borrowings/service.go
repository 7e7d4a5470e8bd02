package borrowings

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/models"
)

type ListBorrowingsOptions struct {
	BookID     *int
	BorrowerID *int
}

type RetrieveBorrowingOptions struct {
	IncludeRelations bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBorrowing records one lending event. The same book/borrower pair may
// recur; nothing deduplicates repeated borrow cycles.
func (svc *Service) CreateBorrowing(ctx context.Context, borrowing *models.Borrowing) error {
	now := time.Now()
	if borrowing.CreatedAt.IsZero() {
		borrowing.CreatedAt = now
	}
	borrowing.UpdatedAt = borrowing.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(borrowing).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) ListBorrowings(ctx context.Context, opts ListBorrowingsOptions) ([]*models.Borrowing, error) {
	borrowings := []*models.Borrowing{}

	q := svc.db.
		NewSelect().
		Model(&borrowings).
		Order("bwg.id ASC")

	if opts.BookID != nil {
		q = q.Where("bwg.book_id = ?", *opts.BookID)
	}
	if opts.BorrowerID != nil {
		q = q.Where("bwg.borrower_id = ?", *opts.BorrowerID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return borrowings, nil
}

func (svc *Service) RetrieveBorrowing(ctx context.Context, id int, opts RetrieveBorrowingOptions) (*models.Borrowing, error) {
	borrowing := &models.Borrowing{}

	q := svc.db.
		NewSelect().
		Model(borrowing).
		Where("bwg.id = ?", id)

	if opts.IncludeRelations {
		q = q.Relation("Book").Relation("Borrower")
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Borrowing")
		}
		return nil, errors.WithStack(err)
	}

	return borrowing, nil
}

// UpdateBorrowing overwrites all mutable fields of the borrowing with the
// given id.
func (svc *Service) UpdateBorrowing(ctx context.Context, borrowing *models.Borrowing) error {
	borrowing.UpdatedAt = time.Now()

	res, err := svc.db.
		NewUpdate().
		Model(borrowing).
		Column("book_id", "borrower_id", "updated_at").
		Where("bwg.id = ?", borrowing.ID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Borrowing")
	}

	return nil
}

func (svc *Service) DeleteBorrowing(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Borrowing)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Borrowing")
	}

	return nil
}
