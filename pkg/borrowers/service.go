package borrowers

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/models"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBorrower(ctx context.Context, borrower *models.Borrower) error {
	now := time.Now()
	if borrower.CreatedAt.IsZero() {
		borrower.CreatedAt = now
	}
	borrower.UpdatedAt = borrower.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(borrower).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) ListBorrowers(ctx context.Context) ([]*models.Borrower, error) {
	borrowers := []*models.Borrower{}

	err := svc.db.
		NewSelect().
		Model(&borrowers).
		Order("bw.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return borrowers, nil
}

func (svc *Service) RetrieveBorrower(ctx context.Context, id int) (*models.Borrower, error) {
	borrower := &models.Borrower{}

	err := svc.db.
		NewSelect().
		Model(borrower).
		Where("bw.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Borrower")
		}
		return nil, errors.WithStack(err)
	}

	return borrower, nil
}

// UpdateBorrower overwrites all mutable fields of the borrower with the given
// id.
func (svc *Service) UpdateBorrower(ctx context.Context, borrower *models.Borrower) error {
	borrower.UpdatedAt = time.Now()

	res, err := svc.db.
		NewUpdate().
		Model(borrower).
		Column("name", "phone", "updated_at").
		Where("bw.id = ?", borrower.ID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Borrower")
	}

	return nil
}

// DeleteBorrower removes the borrower and nulls out borrower_id on their
// borrowings, in one transaction.
func (svc *Service) DeleteBorrower(ctx context.Context, id int) error {
	return svc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewUpdate().
			Model((*models.Borrowing)(nil)).
			Set("borrower_id = NULL").
			Where("borrower_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		res, err := tx.
			NewDelete().
			Model((*models.Borrower)(nil)).
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
			return errcodes.NotFound("Borrower")
		}

		return nil
	})
}
