package payment

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/repository"
	"rentalconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type countingRecorder struct {
	created, confirmed int
}

func (r *countingRecorder) PaymentCreated()   { r.created++ }
func (r *countingRecorder) PaymentConfirmed() { r.confirmed++ }

func setup(t *testing.T) (*Service, *countingRecorder, *domain.User, *domain.User, *domain.Property) {
	t.Helper()
	db := testutil.NewDB(t)
	landlord := testutil.CreateUser(t, db, domain.RoleLandlord)
	renter := testutil.CreateUser(t, db, domain.RoleRenter)
	prop := testutil.CreateProperty(t, db, landlord.ID, 5000)
	rec := &countingRecorder{}
	svc := NewService(repository.NewPaymentRepository(db), repository.NewPropertyRepository(db), rec, t.Logf)
	svc.now = func() time.Time { return time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC) }
	return svc, rec, landlord, renter, prop
}

func TestCreateAndConfirm(t *testing.T) {
	ctx := context.Background()
	svc, rec, landlord, renter, prop := setup(t)

	p, err := svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: prop.ID})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, p.Amount)
	assert.True(t, p.Paid)
	assert.False(t, p.LandlordConfirmed)
	assert.Equal(t, "2026-04", p.Period)
	assert.Equal(t, landlord.ID, p.LandlordID)

	_, err = svc.Confirm(ctx, renter.ID, p.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Confirm(ctx, landlord.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, got.LandlordConfirmed)
	require.NotNil(t, got.ConfirmedAt)
	require.NotNil(t, got.Renter)
	assert.Equal(t, renter.ID, got.Renter.ID)

	got, err = svc.Confirm(ctx, landlord.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, got.LandlordConfirmed)

	_, err = svc.Confirm(ctx, landlord.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, rec.created)
	assert.Equal(t, 1, rec.confirmed)
}

func TestCreate_MonthIsOnlyALabel(t *testing.T) {
	ctx := context.Background()
	svc, _, _, renter, prop := setup(t)

	first, err := svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: prop.ID, Month: "2026-03"})
	require.NoError(t, err)

	second, err := svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: prop.ID, Month: "2026-03"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "2026-03", second.Period)

	// no month means the current one, and repeats are recorded too
	for i := 0; i < 2; i++ {
		p, err := svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: prop.ID})
		require.NoError(t, err)
		assert.Equal(t, "2026-04", p.Period)
	}

	mine, err := svc.ListForRenter(ctx, renter.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 4)

	_, err = svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: prop.ID, Month: "2026-04"})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: prop.ID, Month: "March"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: 4242})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestExportLandlord(t *testing.T) {
	ctx := context.Background()
	svc, _, landlord, renter, prop := setup(t)

	_, err := svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: prop.ID, Month: "2026-01"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, renter.ID, CreatePaymentRequest{PropertyID: prop.ID, Month: "2026-02"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportLandlord(ctx, landlord.ID, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4) // header, two payments, total
	assert.Equal(t, "Period", rows[0][1])
	assert.Equal(t, renter.Email, rows[1][5])
	assert.Equal(t, "Total", rows[3][5])
}

type failingRepo struct{ paymentRepo }

func (failingRepo) ListByLandlord(context.Context, int64) ([]domain.Payment, error) {
	return nil, errors.New("db down")
}

func TestExportLandlord_RepoError(t *testing.T) {
	svc := NewService(failingRepo{}, nil, nil, nil)
	var buf bytes.Buffer
	assert.Error(t, svc.ExportLandlord(context.Background(), 1, &buf))
	assert.Zero(t, buf.Len())
}
