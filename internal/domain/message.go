package domain

import "time"

// Message is immutable once stored.
type Message struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	SenderID   int64     `json:"sender_id" gorm:"not null;index:idx_messages_pair,priority:1"`
	ReceiverID int64     `json:"receiver_id" gorm:"not null;index:idx_messages_pair,priority:2;index"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

func (Message) TableName() string { return "messages" }

// Contact is one counterparty in a user's conversation list.
type Contact struct {
	User          UserContact `json:"user"`
	LastMessage   string      `json:"last_message"`
	LastMessageAt time.Time   `json:"last_message_at"`
}
