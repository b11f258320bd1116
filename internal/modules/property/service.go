package property

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/pkg/imagedata"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Service struct {
	props         Repository
	recorder      ReportRecorder
	maxImageBytes int
	now           func() time.Time
}

func NewService(props Repository, recorder ReportRecorder, maxImageBytes int) *Service {
	return &Service{props: props, recorder: recorder, maxImageBytes: maxImageBytes, now: time.Now}
}

// List returns one page; page is 1-based and limit is clamped to MaxPageSize.
func (s *Service) List(ctx context.Context, f domain.PropertyFilter, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	f.Limit = limit
	f.Offset = (page - 1) * limit

	items, total, err := s.props.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return &ListResponse{Properties: items, Total: total, Page: page, Limit: limit}, nil
}

// Search runs the same filters unpaginated.
func (s *Service) Search(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	f.Limit, f.Offset = 0, 0
	items, _, err := s.props.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.props.GetDetail(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) Create(ctx context.Context, landlordID int64, req CreatePropertyRequest) (*domain.Property, error) {
	from := s.now().UTC()
	if req.AvailableFrom != nil {
		from = req.AvailableFrom.UTC()
	}
	if req.AvailableUntil != nil && req.AvailableUntil.Before(from) {
		return nil, ErrInvalidWindow
	}
	if err := s.checkImage(req.Image); err != nil {
		return nil, err
	}

	p := &domain.Property{
		LandlordID:     landlordID,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Address:        strings.TrimSpace(req.Address),
		Rent:           req.Rent,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		AvailableFrom:  from,
		AvailableUntil: req.AvailableUntil,
		Image:          req.Image,
		Status:         domain.PropertyAvailable,
	}
	if err := s.props.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return p, nil
}

// checkImage accepts an inline data URL or an http(s) link.
func (s *Service) checkImage(img string) error {
	switch {
	case img == "":
		return nil
	case strings.HasPrefix(img, "data:"):
		if err := imagedata.Validate(img, s.maxImageBytes); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		return nil
	case strings.HasPrefix(img, "http://"), strings.HasPrefix(img, "https://"):
		return nil
	}
	return ErrInvalidImage
}

func (s *Service) ListMine(ctx context.Context, landlordID int64) ([]domain.Property, error) {
	return s.props.ListByLandlord(ctx, landlordID)
}

func (s *Service) owned(ctx context.Context, actorID, id int64) (*domain.Property, error) {
	p, err := s.props.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.LandlordID != actorID {
		return nil, ErrForbidden
	}
	return p, nil
}

// Update replaces the listing's editable fields on behalf of its landlord. An omitted
// available_from keeps the current one.
func (s *Service) Update(ctx context.Context, actorID, id int64, req CreatePropertyRequest) (*domain.Property, error) {
	p, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	from := p.AvailableFrom
	if req.AvailableFrom != nil {
		from = req.AvailableFrom.UTC()
	}
	if req.AvailableUntil != nil && req.AvailableUntil.Before(from) {
		return nil, ErrInvalidWindow
	}
	if err := s.checkImage(req.Image); err != nil {
		return nil, err
	}

	p.Title = strings.TrimSpace(req.Title)
	p.Description = strings.TrimSpace(req.Description)
	p.Address = strings.TrimSpace(req.Address)
	p.Rent = req.Rent
	p.Bedrooms = req.Bedrooms
	p.Bathrooms = req.Bathrooms
	p.AvailableFrom = from
	p.AvailableUntil = req.AvailableUntil
	p.Image = req.Image

	if err := s.props.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update property: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, actorID, id int64, status domain.PropertyStatus) (*domain.Property, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	p, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.props.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	p.Status = status
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.props.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}

func (s *Service) AddComment(ctx context.Context, author *domain.User, id int64, text string) (*domain.PropertyComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.props.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	c := &domain.PropertyComment{
		PropertyID: id,
		UserID:     author.ID,
		AuthorName: author.Name,
		Text:       text,
	}
	if err := s.props.AddComment(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return c, nil
}

// Report flags the property for admin review. The write only lands while no report
// is present, so two concurrent reports cannot both succeed.
func (s *Service) Report(ctx context.Context, reporterID, id int64, reason string) error {
	p, err := s.props.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if p.IsReported() {
		return ErrAlreadyReported
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}

	ok, err := s.props.Report(ctx, id, reporterID, reason, s.now().UTC())
	if err != nil {
		return fmt.Errorf("report property: %w", err)
	}
	if !ok {
		return ErrAlreadyReported
	}
	if s.recorder != nil {
		s.recorder.PropertyReported()
	}
	return nil
}
