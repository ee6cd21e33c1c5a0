package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/campanion-connect/backend/src/models"
)

// MessageService persists direct messages. Persistence always happens before
// any realtime relay, so a dropped relay can never lose data.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Send stores a message with a server-assigned id and timestamp and returns
// the stored record.
func (s *MessageService) Send(senderID, receiverID uint, body string, kind models.MessageKind, mediaURL string) (*models.Message, error) {
	if kind == "" {
		kind = models.MessageKindText
	}
	if !models.ValidKind(kind) {
		return nil, validationf("Unknown message type %q", kind)
	}
	if kind == models.MessageKindText && strings.TrimSpace(body) == "" {
		return nil, validationf("Message body is required")
	}

	message := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		Kind:       kind,
		MediaURL:   mediaURL,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// History returns every message exchanged between the two users, in both
// directions, ordered by ascending creation time. The id tiebreak keeps the
// order stable for equal timestamps.
func (s *MessageService) History(userA, userB uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
