package auth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/circulib/circulib/pkg/errcodes"
	"github.com/circulib/circulib/pkg/models"
)

// Tokens is an issued access/refresh token pair.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service orchestrates signup, login, and refresh. The hasher and token
// service are injected dependencies; the service holds no state of its own
// beyond the database handle.
type Service struct {
	db     *bun.DB
	hasher PasswordHasher
	tokens *TokenService
}

// NewService creates a new auth service.
func NewService(db *bun.DB, hasher PasswordHasher, tokens *TokenService) *Service {
	return &Service{
		db:     db,
		hasher: hasher,
		tokens: tokens,
	}
}

// Signup registers a new administrator and issues both tokens. Email
// uniqueness is enforced by the unique index on admins.email; a constraint
// violation on the insert is the sole source of DuplicateEmail, so concurrent
// signups can't race past an application-level pre-check.
func (s *Service) Signup(ctx context.Context, email, password string) (*models.Admin, *Tokens, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	admin := &models.Admin{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.db.NewInsert().Model(admin).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, nil, errcodes.DuplicateEmail()
		}
		return nil, nil, errors.WithStack(err)
	}

	tokens, err := s.issuePair(admin.Email)
	if err != nil {
		return nil, nil, err
	}

	return admin, tokens, nil
}

// Login validates credentials and issues both tokens.
func (s *Service) Login(ctx context.Context, email, password string) (*Tokens, error) {
	admin, err := s.RetrieveAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errcodes.NotFound("Admin")) {
			return nil, errcodes.UnknownEmail()
		}
		return nil, err
	}

	if !s.hasher.Verify(admin.PasswordHash, password) {
		return nil, errcodes.BadPassword()
	}

	return s.issuePair(admin.Email)
}

// Refresh verifies a refresh token and mints a new access token. The refresh
// token is echoed back unrotated.
func (s *Service) Refresh(refreshToken string) (*Tokens, error) {
	email, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, errcodes.InvalidRefreshToken()
	}

	accessToken, err := s.tokens.IssueAccessToken(email)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RetrieveAdminByEmail looks up an administrator by email, case-insensitively.
func (s *Service) RetrieveAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := s.db.NewSelect().
		Model(admin).
		Where("adm.email = ? COLLATE NOCASE", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Admin")
		}
		return nil, errors.WithStack(err)
	}
	return admin, nil
}

func (s *Service) issuePair(email string) (*Tokens, error) {
	accessToken, err := s.tokens.IssueAccessToken(email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(email)
	if err != nil {
		return nil, err
	}
	return &Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
