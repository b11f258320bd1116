package message

import (
	"context"

	"rentalconnect/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	Conversation(ctx context.Context, a, b int64) ([]domain.Message, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Message, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
}

// Pusher delivers an event to a user's live connection, reporting whether anyone was listening.
type Pusher interface {
	SendToUser(userID int64, event interface{}) bool
}

// ConnectionGauge is satisfied by *metrics.Metrics.
type ConnectionGauge interface {
	LiveConnectionDelta(delta float64)
}
