package repository

import (
	"context"
	"testing"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_EmailIsNormalised(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{Name: "Ann", Email: "  Ann@Example.COM ", PasswordHash: "h", Role: domain.RoleRenter}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "ann@example.com", u.Email)

	got, err := repo.GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	exists, err := repo.ExistsByEmail(ctx, "ann@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "ann@example.com", u.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	dup := &domain.User{Name: "Ann 2", Email: "ann@example.com", PasswordHash: "h", Role: domain.RoleRenter}
	err = repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, domain.RoleRenter)

	got, err := repo.UpdateProfile(ctx, u.ID, "New Name", "", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, "data:image/png;base64,AAAA", got.ProfileImage)

	_, err = repo.UpdateProfile(ctx, 9999, "x", "", "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DeleteRemovesWishlist(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	wishlist := NewWishlistRepository(db)
	ctx := context.Background()
	landlord := testutil.CreateUser(t, db, domain.RoleLandlord)
	renter := testutil.CreateUser(t, db, domain.RoleRenter)
	p := testutil.CreateProperty(t, db, landlord.ID, 1000)

	_, err := wishlist.Toggle(ctx, renter.ID, p.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, renter.ID))

	var cnt int64
	require.NoError(t, db.Model(&domain.WishlistItem{}).Where("user_id = ?", renter.ID).Count(&cnt).Error)
	assert.Zero(t, cnt)

	_, err = repo.GetByID(ctx, renter.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, renter.ID), gorm.ErrRecordNotFound)
}

func TestUserRepository_ListAndCounts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	testutil.CreateUser(t, db, domain.RoleRenter)
	testutil.CreateUser(t, db, domain.RoleRenter)
	l := testutil.CreateUser(t, db, domain.RoleLandlord)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	counts, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.RoleRenter])
	assert.Equal(t, int64(1), counts[domain.RoleLandlord])

	byIDs, err := repo.GetByIDs(ctx, []int64{l.ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, l.ID, byIDs[0].ID)
}
