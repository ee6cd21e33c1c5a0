package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	SenderID   uint        `json:"senderId" gorm:"index"`
	ReceiverID uint        `json:"receiverId" gorm:"index"`
	Body       string      `json:"message"`
	Kind       MessageKind `json:"type" gorm:"type:varchar(10);default:'text'"`
	MediaURL   string      `json:"imageUrl"`
	Read       bool        `json:"read" gorm:"default:false"`
}

// MarshalJSON expone el ID como _id, igual que el resto de modelos
func (m Message) MarshalJSON() ([]byte, error) {
	type Alias Message
	return json.Marshal(&struct {
		ID uint `json:"_id"`
		*Alias
	}{
		ID:    m.ID,
		Alias: (*Alias)(&m),
	})
}

type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindImage MessageKind = "image"
	MessageKindFile  MessageKind = "file"
)

// ValidKind reports whether k is one of the supported message kinds.
func ValidKind(k MessageKind) bool {
	switch k {
	case MessageKindText, MessageKindImage, MessageKindFile:
		return true
	}
	return false
}
