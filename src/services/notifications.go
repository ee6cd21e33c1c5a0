package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/campanion-connect/backend/src/models"
)

// feedLimit caps the merged notification feed.
const feedLimit = 50

// NotificationService merges connection-graph events into the feed a user
// sees. Pending requests have no read state of their own (responding resolves
// them); acceptance notifications carry an explicit read flag that only
// MarkRead mutates. The feed itself is a pure read.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// FeedItem is the common shape both feed sources are mapped into.
type FeedItem struct {
	ID             uint                    `json:"_id"`
	Type           models.NotificationType `json:"type"`
	Sender         models.UserDto          `json:"sender"`
	CreatedAt      time.Time               `json:"createdAt"`
	ConnectionID   *uint                   `json:"connectionRequestId,omitempty"`
	NotificationID uint                    `json:"notificationId,omitempty"`
}

// Feed merges the recipient's pending incoming requests with their unread
// acceptance notifications, newest first, capped at feedLimit entries.
func (s *NotificationService) Feed(recipientID uint) ([]FeedItem, error) {
	var pending []models.Connection
	err := s.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", recipientID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}

	var accepted []models.Notification
	err = s.db.
		Where("recipient_id = ? AND type = ? AND read = ?",
			recipientID, models.NotificationTypeConnectionAccepted, false).
		Order("created_at DESC").
		Limit(feedLimit).
		Find(&accepted).Error
	if err != nil {
		return nil, err
	}

	// Perfiles de los usuarios que aceptaron
	profiles := make(map[uint]models.UserDto)
	if len(accepted) > 0 {
		ids := make([]uint, 0, len(accepted))
		for _, notification := range accepted {
			ids = append(ids, notification.RelatedUserID)
		}
		var users []models.User
		if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, user := range users {
			profiles[user.ID] = user.ToDto()
		}
	}

	feed := make([]FeedItem, 0, len(pending)+len(accepted))
	for _, request := range pending {
		id := request.ID
		feed = append(feed, FeedItem{
			ID:           request.ID,
			Type:         models.NotificationTypeConnectionRequest,
			Sender:       request.Sender.ToDto(),
			CreatedAt:    request.CreatedAt,
			ConnectionID: &id,
		})
	}
	for _, notification := range accepted {
		feed = append(feed, FeedItem{
			ID:             notification.ID,
			Type:           notification.Type,
			Sender:         profiles[notification.RelatedUserID],
			CreatedAt:      notification.CreatedAt,
			ConnectionID:   notification.ConnectionID,
			NotificationID: notification.ID,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	if len(feed) > feedLimit {
		feed = feed[:feedLimit]
	}
	return feed, nil
}

// MarkRead acknowledges a notification for its recipient. Acknowledged
// acceptance notifications stop appearing in the feed.
func (s *NotificationService) MarkRead(recipientID, notificationID uint) (*models.Notification, error) {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFoundf("Notification not found")
	}

	var notification models.Notification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// Delete removes a notification. Recipient only.
func (s *NotificationService) Delete(recipientID, notificationID uint) error {
	res := s.db.
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundf("Notification not found")
	}
	return nil
}
