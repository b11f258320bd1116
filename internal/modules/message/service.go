package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentalconnect/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	messages MessageRepository
	users    UserReader
	pusher   Pusher
}

// NewService wires the store; pusher may be nil when no live feed is running.
func NewService(messages MessageRepository, users UserReader, pusher Pusher) *Service {
	return &Service{messages: messages, users: users, pusher: pusher}
}

// Send stores the message and pushes it to the receiver's live connection if there is one.
func (s *Service) Send(ctx context.Context, senderID int64, req SendMessageRequest) (*domain.Message, error) {
	text := strings.TrimSpace(req.Text)
	if req.ReceiverID <= 0 || text == "" {
		return nil, ErrMissingFields
	}
	if req.ReceiverID == senderID {
		return nil, ErrSelfMessage
	}

	if _, err := s.users.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("load receiver: %w", err)
	}

	m := &domain.Message{SenderID: senderID, ReceiverID: req.ReceiverID, Text: text}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if s.pusher != nil {
		s.pusher.SendToUser(m.ReceiverID, LiveEvent{Type: EventNewMessage, Message: m})
	}
	return m, nil
}

func (s *Service) Conversation(ctx context.Context, userID, withUserID int64) ([]domain.Message, error) {
	return s.messages.Conversation(ctx, userID, withUserID)
}

func (s *Service) Inbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	return s.messages.ListForUser(ctx, userID)
}

// Contacts lists each distinct counterparty once, most recent conversation first.
// Counterparties whose accounts were deleted are skipped.
func (s *Service) Contacts(ctx context.Context, userID int64) ([]domain.Contact, error) {
	msgs, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	latest := make(map[int64]domain.Message)
	order := make([]int64, 0)
	for _, m := range msgs {
		other := m.ReceiverID
		if other == userID {
			other = m.SenderID
		}
		if _, seen := latest[other]; seen {
			continue
		}
		latest[other] = m
		order = append(order, other)
	}
	if len(order) == 0 {
		return []domain.Contact{}, nil
	}

	users, err := s.users.GetByIDs(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	byID := make(map[int64]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	out := make([]domain.Contact, 0, len(order))
	for _, id := range order {
		u, ok := byID[id]
		if !ok {
			continue
		}
		m := latest[id]
		out = append(out, domain.Contact{
			User:          *u.Contact(),
			LastMessage:   m.Text,
			LastMessageAt: m.CreatedAt,
		})
	}
	return out, nil
}
