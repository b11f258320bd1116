package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"rentalconnect/internal/domain"
)

// Months is the length of the monthly income series, current month included.
const Months = 6

type Service struct {
	payments   PaymentStats
	properties PropertyStats
	now        func() time.Time
}

func NewService(payments PaymentStats, properties PropertyStats) *Service {
	return &Service{payments: payments, properties: properties, now: time.Now}
}

func (s *Service) Landlord(ctx context.Context, landlordID int64) (*LandlordAnalytics, error) {
	totals, err := s.payments.TotalsForLandlord(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("payment totals: %w", err)
	}
	total, err := s.properties.CountByLandlord(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("count properties: %w", err)
	}
	occupied, err := s.properties.CountOccupied(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("count occupied: %w", err)
	}

	now := s.now().UTC()
	first := time.Date(now.Year(), now.Month()-(Months-1), 1, 0, 0, 0, 0, time.UTC)
	paid, err := s.payments.PaidSince(ctx, landlordID, first)
	if err != nil {
		return nil, fmt.Errorf("paid since: %w", err)
	}

	return &LandlordAnalytics{
		IncomeReceived:       totals.Received,
		PendingDues:          totals.Pending,
		AwaitingConfirmation: totals.AwaitingConfirmation,
		TotalProperties:      total,
		OccupiedProperties:   occupied,
		OccupancyRate:        occupancyRate(occupied, total),
		MonthlyIncome:        monthlySeries(first, paid),
	}, nil
}

// occupancyRate is a percentage rounded to two decimals; zero when there are no properties.
func occupancyRate(occupied, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*100*100) / 100
}

// monthlySeries buckets paid amounts by the UTC month of paid_at, zero-filling empty months.
func monthlySeries(first time.Time, paid []domain.Payment) []MonthlyIncome {
	out := make([]MonthlyIncome, Months)
	index := make(map[string]int, Months)
	for i := 0; i < Months; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format(domain.PeriodLayout)
		out[i] = MonthlyIncome{Month: key, DisplayMonth: m.Format("Jan 2006")}
		index[key] = i
	}
	for _, p := range paid {
		if p.PaidAt == nil {
			continue
		}
		if i, ok := index[p.PaidAt.UTC().Format(domain.PeriodLayout)]; ok {
			out[i].Total += p.Amount
		}
	}
	return out
}
