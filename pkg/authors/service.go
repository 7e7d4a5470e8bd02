package authors

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

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	now := time.Now()
	if author.CreatedAt.IsZero() {
		author.CreatedAt = now
	}
	author.UpdatedAt = author.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(author).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	authors := []*models.Author{}

	err := svc.db.
		NewSelect().
		Model(&authors).
		Order("a.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authors, nil
}

func (svc *Service) RetrieveAuthor(ctx context.Context, id int) (*models.Author, error) {
	author := &models.Author{}

	err := svc.db.
		NewSelect().
		Model(author).
		Where("a.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Author")
		}
		return nil, errors.WithStack(err)
	}

	return author, nil
}

// UpdateAuthor overwrites all mutable fields of the author with the given id.
func (svc *Service) UpdateAuthor(ctx context.Context, author *models.Author) error {
	author.UpdatedAt = time.Now()

	res, err := svc.db.
		NewUpdate().
		Model(author).
		Column("name", "updated_at").
		Where("a.id = ?", author.ID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Author")
	}

	return nil
}

// DeleteAuthor removes the author and nulls out author_id on any of their
// books, in one transaction.
func (svc *Service) DeleteAuthor(ctx context.Context, id int) error {
	return svc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewUpdate().
			Model((*models.Book)(nil)).
			Set("author_id = NULL").
			Where("author_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		res, err := tx.
			NewDelete().
			Model((*models.Author)(nil)).
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
			return errcodes.NotFound("Author")
		}

		return nil
	})
}
