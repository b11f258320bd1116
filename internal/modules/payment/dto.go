package payment

import "rentalconnect/internal/domain"

type CreatePaymentRequest struct {
	PropertyID int64  `json:"property_id" binding:"required,gt=0"`
	Month      string `json:"month"`
}

// PaymentView is a payment with its property and both parties joined in.
type PaymentView struct {
	domain.Payment
	Property *domain.Property    `json:"property,omitempty"`
	Renter   *domain.UserContact `json:"renter,omitempty"`
	Landlord *domain.UserContact `json:"landlord,omitempty"`
}

func toView(p *domain.Payment) PaymentView {
	return PaymentView{
		Payment:  *p,
		Property: p.Property,
		Renter:   p.Renter.Contact(),
		Landlord: p.Landlord.Contact(),
	}
}

func toViews(in []domain.Payment) []PaymentView {
	out := make([]PaymentView, 0, len(in))
	for i := range in {
		out = append(out, toView(&in[i]))
	}
	return out
}
