package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentalconnect/internal/domain"

	"gorm.io/gorm"
)

// Service implements the booking lifecycle:
//
//	Pending -> Confirmed  (landlord approves)
//	Pending -> Cancelled  (landlord rejects)
//
// A landlord decision may be overwritten by a later one. A renter cancel
// deletes the booking.
type Service struct {
	bookings   BookingRepository
	properties PropertyReader
	recorder   TransitionRecorder
	now        func() time.Time
}

func NewService(bookings BookingRepository, properties PropertyReader, recorder TransitionRecorder) *Service {
	return &Service{bookings: bookings, properties: properties, recorder: recorder, now: time.Now}
}

func (s *Service) record(to domain.BookingStatus) {
	if s.recorder != nil {
		s.recorder.BookingTransition(string(to))
	}
}

// Create books the property for the renter, copying the property's current landlord.
func (s *Service) Create(ctx context.Context, renterID, propertyID int64) (*domain.Booking, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}

	b := &domain.Booking{
		PropertyID: p.ID,
		RenterID:   renterID,
		LandlordID: p.LandlordID,
		Status:     domain.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.record(domain.BookingPending)
	return b, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return b, nil
}

func (s *Service) Approve(ctx context.Context, landlordID, id int64) (*domain.Booking, error) {
	return s.decide(ctx, landlordID, id, domain.BookingConfirmed)
}

func (s *Service) Reject(ctx context.Context, landlordID, id int64) (*domain.Booking, error) {
	return s.decide(ctx, landlordID, id, domain.BookingCancelled)
}

func (s *Service) decide(ctx context.Context, landlordID, id int64, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.LandlordID != landlordID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.SetLandlordDecision(ctx, id, landlordID, to, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	if !ok {
		// the renter cancelled between the read and the write
		return nil, ErrNotFound
	}
	s.record(to)
	return s.bookings.GetDetail(ctx, id)
}

// Cancel deletes the booking on behalf of its renter.
func (s *Service) Cancel(ctx context.Context, renterID, id int64) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if b.RenterID != renterID {
		return ErrForbidden
	}

	ok, err := s.bookings.Delete(ctx, id, renterID)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	s.record(domain.BookingCancelled)
	return nil
}

// Get returns the booking to either party, or to an admin.
func (s *Service) Get(ctx context.Context, actorID int64, actorRole domain.UserRole, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetDetail(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if actorRole != domain.RoleAdmin && b.RenterID != actorID && b.LandlordID != actorID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListForRenter(ctx context.Context, renterID int64) ([]domain.Booking, error) {
	return s.bookings.ListByRenter(ctx, renterID)
}

func (s *Service) ListPendingForLandlord(ctx context.Context, landlordID int64) ([]domain.Booking, error) {
	return s.bookings.ListPendingForLandlord(ctx, landlordID)
}
