package models

import (
	"gorm.io/gorm"
)

// Notification records a connection-graph transition addressed to a user.
// Rows are only ever created as a side effect of sending or accepting a
// connection request, never directly by a caller.
type Notification struct {
	gorm.Model
	RecipientID   uint             `json:"recipient" gorm:"index"`
	Type          NotificationType `json:"type" gorm:"type:varchar(30)"`
	RelatedUserID uint             `json:"relatedUserId"`
	ConnectionID  *uint            `json:"connectionRequestId,omitempty"`
	Read          bool             `json:"read" gorm:"default:false"`
}

type NotificationType string

const (
	NotificationTypeConnectionRequest  NotificationType = "connection_request"
	NotificationTypeConnectionAccepted NotificationType = "connection_accepted"
	NotificationTypeConnectionRejected NotificationType = "connection_rejected"
)
