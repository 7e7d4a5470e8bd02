package admins

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/circulib/circulib/pkg/auth"
	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/models"
)

// Service manages existing administrator records. New administrators are only
// created through signup.
type Service struct {
	db     *bun.DB
	hasher auth.PasswordHasher
}

func NewService(db *bun.DB, hasher auth.PasswordHasher) *Service {
	return &Service{db, hasher}
}

func (svc *Service) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	admins := []*models.Admin{}

	err := svc.db.
		NewSelect().
		Model(&admins).
		Order("adm.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return admins, nil
}

func (svc *Service) RetrieveAdmin(ctx context.Context, id int) (*models.Admin, error) {
	admin := &models.Admin{}

	err := svc.db.
		NewSelect().
		Model(admin).
		Where("adm.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Admin")
		}
		return nil, errors.WithStack(err)
	}

	return admin, nil
}

// UpdateAdmin replaces the admin's email and password. The submitted password
// is hashed before it is stored.
func (svc *Service) UpdateAdmin(ctx context.Context, id int, email, password string) error {
	hash, err := svc.hasher.Hash(password)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
	}

	res, err := svc.db.
		NewUpdate().
		Model(admin).
		Column("email", "password_hash", "updated_at").
		Where("adm.id = ?", id).
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return errcodes.DuplicateEmail()
		}
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Admin")
	}

	return nil
}

func (svc *Service) DeleteAdmin(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Admin)(nil)).
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
		return errcodes.NotFound("Admin")
	}

	return nil
}
