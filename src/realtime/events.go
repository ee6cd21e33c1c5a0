package realtime

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/campanion-connect/backend/src/models"
)

// Wire event names. Inbound events arrive as a tagged envelope and are
// decoded into the typed payloads below before any state is touched.
const (
	EventAddUser        = "add-user"
	EventSendMessage    = "send-message"
	EventTyping         = "typing"
	EventStopTyping     = "stop-typing"
	EventOnlineUsers    = "online-users"
	EventReceiveMessage = "receive-message"
	EventMessageSent    = "message-sent"
)

// Envelope frames every event in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outbound mirrors Envelope for writes, where Data is an arbitrary value
// rather than raw JSON.
type outbound struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// AddUserEvent identifies the channel: the connected user claims its id and
// enters the presence registry.
type AddUserEvent struct {
	UserID uint `json:"userId"`
}

func (e *AddUserEvent) Validate() error {
	if e.UserID == 0 {
		return errors.New("add-user: userId is required")
	}
	return nil
}

// MessagePayload is an already-persisted message being relayed. The sender
// persists via REST first; the channel never writes to the store.
type MessagePayload struct {
	ID         uint      `json:"_id"`
	SenderID   uint      `json:"senderId"`
	ReceiverID uint      `json:"receiverId"`
	Body       string    `json:"message"`
	Kind       string    `json:"type"`
	MediaURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (e *MessagePayload) Validate() error {
	if e.SenderID == 0 || e.ReceiverID == 0 {
		return errors.New("send-message: senderId and receiverId are required")
	}
	return nil
}

// NewMessagePayload maps a stored message onto the wire shape.
func NewMessagePayload(m *models.Message) MessagePayload {
	return MessagePayload{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		Kind:       string(m.Kind),
		MediaURL:   m.MediaURL,
		CreatedAt:  m.CreatedAt,
	}
}

// TypingEvent is the typing / stop-typing relay pair. No persistence and no
// server-side timeout; clearing the indicator is the sender's job.
type TypingEvent struct {
	SenderID   uint `json:"senderId"`
	ReceiverID uint `json:"receiverId"`
}

func (e *TypingEvent) Validate() error {
	if e.SenderID == 0 || e.ReceiverID == 0 {
		return errors.New("typing: senderId and receiverId are required")
	}
	return nil
}
