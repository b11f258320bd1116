package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentalconnect/internal/domain"

	"gorm.io/gorm"
)

// Service runs the simulated rent flow: the renter "pays" (recorded as paid at once),
// then the landlord confirms receipt. There is no reversal.
type Service struct {
	payments   paymentRepo
	properties propertyReader
	recorder   Recorder
	loggerf    func(format string, args ...interface{})
	now        func() time.Time
}

func NewService(payments paymentRepo, properties propertyReader, recorder Recorder, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{payments: payments, properties: properties, recorder: recorder, loggerf: loggerf, now: time.Now}
}

// period resolves "YYYY-MM" (or the current month when empty) to its first day.
func (s *Service) period(month string) (string, time.Time, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		now := s.now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start.Format(domain.PeriodLayout), start, nil
	}
	start, err := time.Parse(domain.PeriodLayout, month)
	if err != nil {
		return "", time.Time{}, ErrInvalidPeriod
	}
	return start.Format(domain.PeriodLayout), start, nil
}

// Create records a paid rent payment for one property and month. Amount and landlord
// are read from the property at this moment.
func (s *Service) Create(ctx context.Context, renterID int64, req CreatePaymentRequest) (*domain.Payment, error) {
	period, due, err := s.period(req.Month)
	if err != nil {
		return nil, err
	}

	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}

	now := s.now().UTC()
	p := &domain.Payment{
		PropertyID:        prop.ID,
		RenterID:          renterID,
		LandlordID:        prop.LandlordID,
		Period:            period,
		Amount:            prop.Rent,
		DueDate:           due,
		Paid:              true,
		PaidAt:            &now,
		LandlordConfirmed: false,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.loggerf("level=info msg=payment recorded payment_id=%d property_id=%d renter_id=%d period=%s amount=%.2f",
		p.ID, p.PropertyID, renterID, period, p.Amount)
	if s.recorder != nil {
		s.recorder.PaymentCreated()
	}
	return p, nil
}

// Confirm marks receipt. Only the payment's landlord may confirm; repeating it is a no-op.
func (s *Service) Confirm(ctx context.Context, landlordID, id int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load payment: %w", err)
	}
	if p.LandlordID != landlordID {
		s.loggerf("level=warn msg=payment confirm denied payment_id=%d actor_id=%d", id, landlordID)
		return nil, ErrForbidden
	}
	if p.LandlordConfirmed {
		return p, nil
	}

	changed, err := s.payments.Confirm(ctx, id, landlordID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if changed && s.recorder != nil {
		s.recorder.PaymentConfirmed()
	}
	return s.payments.GetDetail(ctx, id)
}

func (s *Service) ListForRenter(ctx context.Context, renterID int64) ([]domain.Payment, error) {
	return s.payments.ListByRenter(ctx, renterID)
}

func (s *Service) ListForLandlord(ctx context.Context, landlordID int64) ([]domain.Payment, error) {
	return s.payments.ListByLandlord(ctx, landlordID)
}
