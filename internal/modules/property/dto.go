package property

import (
	"time"

	"rentalconnect/internal/domain"
)

type CreatePropertyRequest struct {
	Title          string     `json:"title" binding:"required,min=3,max=200"`
	Description    string     `json:"description" binding:"max=5000"`
	Address        string     `json:"address" binding:"required,max=300"`
	Rent           float64    `json:"rent" binding:"required,gt=0"`
	Bedrooms       int        `json:"bedrooms" binding:"min=0,max=50"`
	Bathrooms      int        `json:"bathrooms" binding:"min=0,max=50"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
	Image          string     `json:"image"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"max=2000"`
}

type ReportRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type ListResponse struct {
	Properties []domain.Property `json:"properties"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
