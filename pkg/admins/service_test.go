package admins

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/circulib/circulib/pkg/auth"
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

func createTestAdmin(ctx context.Context, t *testing.T, db *bun.DB, email string) *models.Admin {
	t.Helper()

	hasher := auth.NewBcryptHasher()
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	now := time.Now()
	admin := &models.Admin{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err = db.NewInsert().Model(admin).Returning("*").Exec(ctx)
	require.NoError(t, err)
	return admin
}

func TestService_ListAdmins(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db, auth.NewBcryptHasher())
	ctx := context.Background()

	createTestAdmin(ctx, t, db, "first@example.com")
	createTestAdmin(ctx, t, db, "second@example.com")

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "first@example.com", admins[0].Email)
	assert.Equal(t, "second@example.com", admins[1].Email)
}

func TestService_RetrieveAdmin(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db, auth.NewBcryptHasher())
	ctx := context.Background()

	admin := createTestAdmin(ctx, t, db, "admin@example.com")

	found, err := svc.RetrieveAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", found.Email)

	_, err = svc.RetrieveAdmin(ctx, 999)
	assert.ErrorIs(t, err, errcodes.NotFound("Admin"))
}

func TestService_UpdateAdminRehashesPassword(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	hasher := auth.NewBcryptHasher()
	svc := NewService(db, hasher)
	ctx := context.Background()

	admin := createTestAdmin(ctx, t, db, "admin@example.com")

	require.NoError(t, svc.UpdateAdmin(ctx, admin.ID, "new@example.com", "newpassword123"))

	found, err := svc.RetrieveAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", found.Email)
	assert.NotEqual(t, admin.PasswordHash, found.PasswordHash)
	assert.NotEqual(t, "newpassword123", found.PasswordHash)
	assert.True(t, hasher.Verify(found.PasswordHash, "newpassword123"))
}

func TestService_UpdateAdminDuplicateEmail(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db, auth.NewBcryptHasher())
	ctx := context.Background()

	createTestAdmin(ctx, t, db, "first@example.com")
	second := createTestAdmin(ctx, t, db, "second@example.com")

	err := svc.UpdateAdmin(ctx, second.ID, "first@example.com", "password123")
	assert.ErrorIs(t, err, errcodes.DuplicateEmail())
}

func TestService_UpdateAdminNotFound(t *testing.T) {
	t.Parallel()
	svc := NewService(newTestDB(t), auth.NewBcryptHasher())

	err := svc.UpdateAdmin(context.Background(), 999, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, errcodes.NotFound("Admin"))
}

func TestService_DeleteAdmin(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db, auth.NewBcryptHasher())
	ctx := context.Background()

	admin := createTestAdmin(ctx, t, db, "admin@example.com")

	require.NoError(t, svc.DeleteAdmin(ctx, admin.ID))

	_, err := svc.RetrieveAdmin(ctx, admin.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Admin"))

	err = svc.DeleteAdmin(ctx, admin.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Admin"))
}

func TestAdmin_PasswordHashNotSerialized(t *testing.T) {
	t.Parallel()

	admin := &models.Admin{ID: 1, Email: "admin@example.com", PasswordHash: "secret-digest"}
	b, err := json.Marshal(admin)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-digest")
	assert.NotContains(t, string(b), "password_hash")
}
