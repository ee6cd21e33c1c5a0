package services

import (
	"errors"
	"testing"

	"github.com/campanion-connect/backend/src/models"
)

func TestSend_CreatesPendingRequestAndNotification(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if request.Status != models.ConnectionStatusPending {
		t.Errorf("expected status pending, got %s", request.Status)
	}

	var notification models.Notification
	if err := db.Where("recipient_id = ?", bob.ID).First(&notification).Error; err != nil {
		t.Fatalf("expected a notification for the receiver: %v", err)
	}
	if notification.Type != models.NotificationTypeConnectionRequest {
		t.Errorf("expected connection_request notification, got %s", notification.Type)
	}
	if notification.RelatedUserID != alice.ID {
		t.Errorf("expected related user %d, got %d", alice.ID, notification.RelatedUserID)
	}
}

func TestSend_ToSelfFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")

	if _, err := svc.Send(alice.ID, alice.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSend_UnknownReceiverFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")

	if _, err := svc.Send(alice.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSend_PendingConflictBothDirections(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	if _, err := svc.Send(alice.ID, bob.ID); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	// Misma dirección
	if _, err := svc.Send(alice.ID, bob.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate request, got %v", err)
	}
	// Dirección contraria mientras la primera sigue pendiente
	if _, err := svc.Send(bob.ID, alice.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for reverse request, got %v", err)
	}
}

func TestSend_AcceptedConflictUntilDisconnect(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if _, err := svc.Respond(bob.ID, request.ID, "accept"); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	if _, err := svc.Send(bob.ID, alice.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict while connected, got %v", err)
	}

	if err := svc.Disconnect(alice.ID, request.ID); err != nil {
		t.Fatalf("Disconnect returned error: %v", err)
	}

	// La pareja vuelve a estar libre para una nueva solicitud
	if _, err := svc.Send(bob.ID, alice.ID); err != nil {
		t.Errorf("expected new request after disconnect, got %v", err)
	}
}

func TestRespond_OnlyReceiverMayRespond(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if _, err := svc.Respond(alice.ID, request.ID, "accept"); !errors.Is(err, ErrAuthorization) {
		t.Errorf("expected ErrAuthorization for sender, got %v", err)
	}
	if _, err := svc.Respond(carol.ID, request.ID, "accept"); !errors.Is(err, ErrAuthorization) {
		t.Errorf("expected ErrAuthorization for third party, got %v", err)
	}
}

func TestRespond_ExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if _, err := svc.Respond(bob.ID, request.ID, "accept"); err != nil {
		t.Fatalf("first Respond returned error: %v", err)
	}
	if _, err := svc.Respond(bob.ID, request.ID, "accept"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for second respond, got %v", err)
	}
	if _, err := svc.Respond(bob.ID, request.ID, "reject"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for flip attempt, got %v", err)
	}
}

func TestRespond_InvalidAction(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if _, err := svc.Respond(bob.ID, request.ID, "maybe"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown action, got %v", err)
	}
}

func TestRespond_RejectIsTerminalAndAllowsResend(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if _, err := svc.Respond(bob.ID, request.ID, "reject"); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	// El rechazo no genera notificación para el remitente
	var count int64
	db.Model(&models.Notification{}).Where("recipient_id = ?", alice.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected no notification after reject, found %d", count)
	}

	// Un registro rechazado no bloquea una nueva solicitud
	if _, err := svc.Send(alice.ID, bob.ID); err != nil {
		t.Errorf("expected re-send after rejection, got %v", err)
	}
}

func TestWithdraw_SenderAndPendingOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if err := svc.Withdraw(bob.ID, request.ID); !errors.Is(err, ErrAuthorization) {
		t.Errorf("expected ErrAuthorization for receiver withdraw, got %v", err)
	}

	if err := svc.Withdraw(alice.ID, request.ID); err != nil {
		t.Fatalf("Withdraw returned error: %v", err)
	}

	// La solicitud desaparece y la pareja queda libre
	if err := svc.Withdraw(alice.ID, request.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after withdraw, got %v", err)
	}
	if _, err := svc.Send(alice.ID, bob.ID); err != nil {
		t.Errorf("expected new request after withdraw, got %v", err)
	}
}

func TestWithdraw_AfterAcceptFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if _, err := svc.Respond(bob.ID, request.ID, "accept"); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	if err := svc.Withdraw(alice.ID, request.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for withdrawing accepted request, got %v", err)
	}
}

func TestDisconnect_ParticipantsOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	// Aún pendiente: desconectar no es válido
	if err := svc.Disconnect(alice.ID, request.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for pending disconnect, got %v", err)
	}

	if _, err := svc.Respond(bob.ID, request.ID, "accept"); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	if err := svc.Disconnect(carol.ID, request.ID); !errors.Is(err, ErrAuthorization) {
		t.Errorf("expected ErrAuthorization for outsider, got %v", err)
	}
	if err := svc.Disconnect(bob.ID, request.ID); err != nil {
		t.Errorf("expected receiver disconnect to succeed, got %v", err)
	}
}

func TestStatus_Transitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	status, err := svc.Status(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if status != PairStatusNotConnected {
		t.Errorf("expected not_connected, got %s", status)
	}

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if status, _ = svc.Status(alice.ID, bob.ID); status != PairStatusPending {
		t.Errorf("expected pending for sender, got %s", status)
	}
	// Una solicitud entrante no se reporta como pendiente al receptor
	if status, _ = svc.Status(bob.ID, alice.ID); status != PairStatusNotConnected {
		t.Errorf("expected not_connected for receiver, got %s", status)
	}

	if _, err := svc.Respond(bob.ID, request.ID, "accept"); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	if status, _ = svc.Status(alice.ID, bob.ID); status != PairStatusConnected {
		t.Errorf("expected connected, got %s", status)
	}
	if status, _ = svc.Status(bob.ID, alice.ID); status != PairStatusConnected {
		t.Errorf("expected connected from either side, got %s", status)
	}

	if _, err := svc.Status(alice.ID, alice.ID); !errors.Is(err, ErrValidation) {
		t.Error("expected ErrValidation for self status check")
	}
}

func TestListings_AcceptScenario(t *testing.T) {
	db := newTestDB(t)
	svc := NewConnectionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.Send(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	incoming, err := svc.Incoming(bob.ID)
	if err != nil {
		t.Fatalf("Incoming returned error: %v", err)
	}
	if len(incoming) != 1 || incoming[0].ID != request.ID {
		t.Fatalf("expected bob's pending list to contain the request, got %+v", incoming)
	}
	if incoming[0].Sender.ID != alice.ID {
		t.Errorf("expected sender profile for alice, got %d", incoming[0].Sender.ID)
	}

	sent, count, err := svc.Sent(alice.ID)
	if err != nil {
		t.Fatalf("Sent returned error: %v", err)
	}
	if count != 1 || len(sent.Today) != 1 {
		t.Fatalf("expected one sent request today, got count=%d groups=%+v", count, sent)
	}

	if _, err := svc.Respond(bob.ID, request.ID, "accept"); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	// Ambos lados ven la conexión, cada uno con el perfil del otro
	for _, tc := range []struct {
		caller, counterpart uint
	}{
		{alice.ID, bob.ID},
		{bob.ID, alice.ID},
	} {
		groups, count, err := svc.Connections(tc.caller)
		if err != nil {
			t.Fatalf("Connections returned error: %v", err)
		}
		if count != 1 || len(groups.Today) != 1 {
			t.Fatalf("expected one connection today for %d, got %d", tc.caller, count)
		}
		if groups.Today[0].User.ID != tc.counterpart {
			t.Errorf("expected counterpart %d, got %d", tc.counterpart, groups.Today[0].User.ID)
		}
	}

	// Ya no aparece como pendiente
	incoming, err = svc.Incoming(bob.ID)
	if err != nil {
		t.Fatalf("Incoming returned error: %v", err)
	}
	if len(incoming) != 0 {
		t.Errorf("expected empty pending list after accept, got %d", len(incoming))
	}
}
