package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/campanion-connect/backend/src/models"
)

// ConnectionService owns the connection-request state machine:
//
//	∅ → pending → {accepted, rejected}
//	pending → ∅ (withdraw, sender only)
//	accepted → ∅ (disconnect, either participant)
//
// rejected is terminal but never blocks a new request for the pair; the
// duplicate check only considers pending and accepted records.
type ConnectionService struct {
	db *gorm.DB
}

func NewConnectionService(db *gorm.DB) *ConnectionService {
	return &ConnectionService{db: db}
}

// Pair status values returned by Status.
const (
	PairStatusConnected    = "connected"
	PairStatusPending      = "pending"
	PairStatusNotConnected = "not_connected"
)

// IncomingRequest is a pending request addressed to the caller, with the
// sender's profile embedded.
type IncomingRequest struct {
	ID        uint           `json:"_id"`
	Sender    models.UserDto `json:"sender"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}

// SentRequest is a request the caller sent, any status.
type SentRequest struct {
	ID            uint           `json:"_id"`
	Receiver      models.UserDto `json:"receiver"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	FormattedDate string         `json:"formattedDate,omitempty"`
}

// ConnectionEntry is an accepted edge seen from the caller's side.
type ConnectionEntry struct {
	ID            uint           `json:"_id"`
	User          models.UserDto `json:"user"`
	ConnectedAt   time.Time      `json:"connectedAt"`
	CreatedAt     time.Time      `json:"createdAt"`
	FormattedDate string         `json:"formattedDate,omitempty"`
}

// Send creates a pending request from sender to receiver and notifies the
// receiver. At most one active (pending or accepted) request may exist for
// the pair, in either direction.
func (s *ConnectionService) Send(senderID, receiverID uint) (*models.Connection, error) {
	if senderID == receiverID {
		return nil, validationf("Cannot send request to yourself")
	}

	var receiver models.User
	if err := s.db.First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("User not found")
		}
		return nil, err
	}

	// Solo una solicitud activa por par, en cualquier dirección
	var existing models.Connection
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			senderID, receiverID, receiverID, senderID).
		Where("status IN ?", []models.ConnectionStatus{models.ConnectionStatusPending, models.ConnectionStatusAccepted}).
		First(&existing).Error
	if err == nil {
		if existing.Status == models.ConnectionStatusAccepted {
			return nil, conflictf("Already connected")
		}
		return nil, conflictf("Request already sent")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := models.Connection{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.ConnectionStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		notification := models.Notification{
			RecipientID:   receiverID,
			Type:          models.NotificationTypeConnectionRequest,
			RelatedUserID: senderID,
			ConnectionID:  &request.ID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}

// Respond resolves a pending request. Only the receiver may respond, exactly
// once: concurrent or late calls lose the guarded update and fail.
func (s *ConnectionService) Respond(receiverID, requestID uint, action string) (*models.Connection, error) {
	if action != "accept" && action != "reject" {
		return nil, validationf(`Action must be either "accept" or "reject"`)
	}

	var request models.Connection
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("Request not found")
		}
		return nil, err
	}

	if request.ReceiverID != receiverID {
		return nil, authorizationf("Not authorized to respond to this request")
	}
	if request.Status != models.ConnectionStatusPending {
		return nil, validationf("Request has already been responded to")
	}

	newStatus := models.ConnectionStatusAccepted
	if action == "reject" {
		newStatus = models.ConnectionStatusRejected
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// La condición de status hace que solo gane la primera respuesta
		res := tx.Model(&models.Connection{}).
			Where("id = ? AND status = ?", requestID, models.ConnectionStatusPending).
			Update("status", newStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return validationf("Request has already been responded to")
		}

		if newStatus == models.ConnectionStatusAccepted {
			notification := models.Notification{
				RecipientID:   request.SenderID,
				Type:          models.NotificationTypeConnectionAccepted,
				RelatedUserID: receiverID,
				ConnectionID:  &request.ID,
			}
			return tx.Create(&notification).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = newStatus
	return &request, nil
}

// Withdraw deletes a pending request. Sender only.
func (s *ConnectionService) Withdraw(senderID, requestID uint) error {
	var request models.Connection
	if err := s.db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Request not found")
		}
		return err
	}

	if request.SenderID != senderID {
		return authorizationf("Not authorized to withdraw this request")
	}
	if request.Status != models.ConnectionStatusPending {
		return validationf("Can only withdraw pending requests")
	}

	res := s.db.
		Where("id = ? AND status = ?", requestID, models.ConnectionStatusPending).
		Delete(&models.Connection{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return validationf("Can only withdraw pending requests")
	}
	return nil
}

// Disconnect deletes an accepted connection, fully re-opening the pair for a
// new request. Either participant may disconnect.
func (s *ConnectionService) Disconnect(callerID, connectionID uint) error {
	var connection models.Connection
	if err := s.db.First(&connection, connectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Connection not found")
		}
		return err
	}

	if connection.SenderID != callerID && connection.ReceiverID != callerID {
		return authorizationf("Not authorized to disconnect this connection")
	}
	if connection.Status != models.ConnectionStatusAccepted {
		return validationf("Can only disconnect accepted connections")
	}

	res := s.db.
		Where("id = ? AND status = ?", connectionID, models.ConnectionStatusAccepted).
		Delete(&models.Connection{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return validationf("Can only disconnect accepted connections")
	}
	return nil
}

// Status reports the pair state the caller sees: connected, pending (an
// outgoing request the caller sent) or not_connected. Internal request ids
// are never exposed here.
func (s *ConnectionService) Status(callerID, otherID uint) (string, error) {
	if callerID == otherID {
		return "", validationf("Cannot check connection status with yourself")
	}

	var connection models.Connection
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			callerID, otherID, otherID, callerID).
		Where("status = ?", models.ConnectionStatusAccepted).
		First(&connection).Error
	if err == nil {
		return PairStatusConnected, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// Solo cuenta la solicitud pendiente saliente del propio caller
	var pending models.Connection
	err = s.db.
		Where("sender_id = ? AND receiver_id = ? AND status = ?",
			callerID, otherID, models.ConnectionStatusPending).
		First(&pending).Error
	if err == nil {
		return PairStatusPending, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	return PairStatusNotConnected, nil
}

// Incoming lists pending requests addressed to the receiver, newest first.
func (s *ConnectionService) Incoming(receiverID uint) ([]IncomingRequest, error) {
	var requests []models.Connection
	err := s.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	incoming := make([]IncomingRequest, 0, len(requests))
	for _, request := range requests {
		incoming = append(incoming, IncomingRequest{
			ID:        request.ID,
			Sender:    request.Sender.ToDto(),
			Status:    string(request.Status),
			CreatedAt: request.CreatedAt,
		})
	}
	return incoming, nil
}

// Sent lists every request the sender created, grouped by recency. Older
// items carry a short date label.
func (s *ConnectionService) Sent(senderID uint) (RecencyGroups[SentRequest], int, error) {
	var requests []models.Connection
	err := s.db.Preload("Receiver").
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return RecencyGroups[SentRequest]{}, 0, err
	}

	sent := make([]SentRequest, 0, len(requests))
	for _, request := range requests {
		sent = append(sent, SentRequest{
			ID:        request.ID,
			Receiver:  request.Receiver.ToDto(),
			Status:    string(request.Status),
			CreatedAt: request.CreatedAt,
		})
	}

	groups := groupByDay(sent, func(r SentRequest) time.Time { return r.CreatedAt })
	for i := range groups.Older {
		groups.Older[i].FormattedDate = formatDay(groups.Older[i].CreatedAt)
	}
	return groups, len(sent), nil
}

// Connections lists the caller's accepted edges as counterpart profiles,
// grouped by when each connection was accepted.
func (s *ConnectionService) Connections(callerID uint) (RecencyGroups[ConnectionEntry], int, error) {
	var connections []models.Connection
	err := s.db.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
			callerID, callerID, models.ConnectionStatusAccepted).
		Order("updated_at DESC").
		Find(&connections).Error
	if err != nil {
		return RecencyGroups[ConnectionEntry]{}, 0, err
	}

	entries := make([]ConnectionEntry, 0, len(connections))
	for _, connection := range connections {
		counterpart := connection.Sender
		if connection.SenderID == callerID {
			counterpart = connection.Receiver
		}
		entries = append(entries, ConnectionEntry{
			ID:          connection.ID,
			User:        counterpart.ToDto(),
			ConnectedAt: connection.UpdatedAt,
			CreatedAt:   connection.CreatedAt,
		})
	}

	groups := groupByDay(entries, func(e ConnectionEntry) time.Time { return e.ConnectedAt })
	for i := range groups.Older {
		groups.Older[i].FormattedDate = formatDay(groups.Older[i].ConnectedAt)
	}
	return groups, len(entries), nil
}
