package booking

import "rentalconnect/internal/domain"

// BookingView is a booking with both parties projected to contact details.
type BookingView struct {
	*domain.Booking
	Renter   *domain.UserContact `json:"renter,omitempty"`
	Landlord *domain.UserContact `json:"landlord,omitempty"`
}

func toView(b *domain.Booking) BookingView {
	return BookingView{Booking: b, Renter: b.Renter.Contact(), Landlord: b.Landlord.Contact()}
}

func toViews(in []domain.Booking) []BookingView {
	out := make([]BookingView, 0, len(in))
	for i := range in {
		out = append(out, toView(&in[i]))
	}
	return out
}
