package admin

import (
	"time"

	"rentalconnect/internal/domain"
)

type StatsResponse struct {
	Users           map[domain.UserRole]int64 `json:"users"`
	TotalUsers      int64                     `json:"total_users"`
	ReportedPending int                       `json:"reported_properties"`
}

// ReportedProperty is a reported listing with its landlord and reporter joined.
type ReportedProperty struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Address      string              `json:"address"`
	Rent         float64             `json:"rent"`
	Status       string              `json:"status"`
	ReportReason string              `json:"report_reason"`
	ReportedAt   *time.Time          `json:"reported_at,omitempty"`
	Landlord     *domain.UserContact `json:"landlord,omitempty"`
	ReportedBy   *domain.UserContact `json:"reported_by,omitempty"`
}

func toReported(p *domain.Property) ReportedProperty {
	out := ReportedProperty{
		ID:         p.ID,
		Title:      p.Title,
		Address:    p.Address,
		Rent:       p.Rent,
		Status:     string(p.Status),
		ReportedAt: p.ReportedAt,
		Landlord:   p.Landlord.Contact(),
		ReportedBy: p.Reporter.Contact(),
	}
	if p.ReportReason != nil {
		out.ReportReason = *p.ReportReason
	}
	return out
}
