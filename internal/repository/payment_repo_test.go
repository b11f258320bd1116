package repository

import (
	"context"
	"testing"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRepository_RepeatPaymentsForAPeriod(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	landlord := testutil.CreateUser(t, db, domain.RoleLandlord)
	renter := testutil.CreateUser(t, db, domain.RoleRenter)
	p := testutil.CreateProperty(t, db, landlord.ID, 5000)

	now := time.Now().UTC()
	first := &domain.Payment{PropertyID: p.ID, RenterID: renter.ID, LandlordID: landlord.ID, Period: "2026-03", Amount: 5000, Paid: true, PaidAt: &now, DueDate: now}
	require.NoError(t, repo.Create(ctx, first))

	again := &domain.Payment{PropertyID: p.ID, RenterID: renter.ID, LandlordID: landlord.ID, Period: "2026-03", Amount: 5000, Paid: true, PaidAt: &now, DueDate: now}
	require.NoError(t, repo.Create(ctx, again))
	assert.NotEqual(t, first.ID, again.ID)

	list, err := repo.ListByRenter(ctx, renter.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPaymentRepository_ConfirmOnlyByLandlord(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	landlord := testutil.CreateUser(t, db, domain.RoleLandlord)
	renter := testutil.CreateUser(t, db, domain.RoleRenter)
	p := testutil.CreateProperty(t, db, landlord.ID, 5000)

	now := time.Now().UTC()
	pay := &domain.Payment{PropertyID: p.ID, RenterID: renter.ID, LandlordID: landlord.ID, Period: "2026-03", Amount: 5000, Paid: true, PaidAt: &now, DueDate: now}
	require.NoError(t, repo.Create(ctx, pay))

	ok, err := repo.Confirm(ctx, pay.ID, renter.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, pay.ID)
	require.NoError(t, err)
	assert.False(t, got.LandlordConfirmed)

	ok, err = repo.Confirm(ctx, pay.ID, landlord.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Confirm(ctx, pay.ID, landlord.ID, now)
	require.NoError(t, err)
	assert.False(t, ok, "already confirmed")

	got, err = repo.GetDetail(ctx, pay.ID)
	require.NoError(t, err)
	assert.True(t, got.LandlordConfirmed)
	assert.NotNil(t, got.ConfirmedAt)
	assert.NotNil(t, got.Property)
	assert.NotNil(t, got.Renter)
}

func TestPaymentRepository_TotalsAndListings(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	landlord := testutil.CreateUser(t, db, domain.RoleLandlord)
	renter := testutil.CreateUser(t, db, domain.RoleRenter)
	p := testutil.CreateProperty(t, db, landlord.ID, 1000)

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &domain.Payment{PropertyID: p.ID, RenterID: renter.ID, LandlordID: landlord.ID, Period: "2026-01", Amount: 1000, Paid: true, PaidAt: &now, DueDate: now, LandlordConfirmed: true}))
	require.NoError(t, repo.Create(ctx, &domain.Payment{PropertyID: p.ID, RenterID: renter.ID, LandlordID: landlord.ID, Period: "2026-02", Amount: 1000, Paid: true, PaidAt: &now, DueDate: now}))
	require.NoError(t, repo.Create(ctx, &domain.Payment{PropertyID: p.ID, RenterID: renter.ID, LandlordID: landlord.ID, Period: "2026-03", Amount: 400, Paid: false, DueDate: now}))

	totals, err := repo.TotalsForLandlord(ctx, landlord.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2000, totals.Received, 0.001)
	assert.InDelta(t, 400, totals.Pending, 0.001)
	assert.InDelta(t, 1000, totals.AwaitingConfirmation, 0.001)

	paid, err := repo.PaidSince(ctx, landlord.ID, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, paid, 2)

	mine, err := repo.ListByRenter(ctx, renter.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	assert.NotNil(t, mine[0].Landlord)

	theirs, err := repo.ListByLandlord(ctx, landlord.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 3)
	assert.NotNil(t, theirs[0].Renter)

	empty, err := repo.TotalsForLandlord(ctx, renter.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.Received)
}
