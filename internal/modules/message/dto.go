package message

import "rentalconnect/internal/domain"

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id"`
	Text       string `json:"text"`
}

// LiveEvent is what the websocket feed pushes to a connected receiver.
type LiveEvent struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message"`
}

const EventNewMessage = "message.new"
