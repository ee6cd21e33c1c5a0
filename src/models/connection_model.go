package models

import (
	"gorm.io/gorm"
)

type Connection struct {
	gorm.Model
	SenderID   uint             `json:"senderId" gorm:"index"`
	ReceiverID uint             `json:"receiverId" gorm:"index"`
	Status     ConnectionStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Sender     User             `json:"-" gorm:"foreignKey:SenderID"`
	Receiver   User             `json:"-" gorm:"foreignKey:ReceiverID"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)
