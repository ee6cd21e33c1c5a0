package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Router consumes channel events and relays them to online recipients
// through the presence registry. It owns no durable state: relays are
// fire-and-forget, and an absent recipient is a silent outcome, not an error.
type Router struct {
	registry *Registry
	log      zerolog.Logger
}

// NewRouter wires the router to an explicitly owned registry; nothing here is
// ambient global state.
func NewRouter(registry *Registry, log zerolog.Logger) *Router {
	return &Router{registry: registry, log: log}
}

// Registry exposes the presence registry the router was built around.
func (r *Router) Registry() *Registry {
	return r.registry
}

// Relay forwards an already-persisted message: receive-message to the
// receiver's handle when online, plus a message-sent echo to the sender's own
// registered handle when that handle is not the one the event came in on
// (multi-tab echo). origin is uuid.Nil for REST sends.
func (r *Router) Relay(msg MessagePayload, origin uuid.UUID) {
	if receiver := r.registry.Lookup(msg.ReceiverID); receiver != nil {
		if err := receiver.Send(EventReceiveMessage, msg); err != nil {
			r.log.Warn().Err(err).Uint("receiver", msg.ReceiverID).Msg("relay failed")
		}
	}

	if sender := r.registry.Lookup(msg.SenderID); sender != nil && sender.ID != origin {
		if err := sender.Send(EventMessageSent, msg); err != nil {
			r.log.Warn().Err(err).Uint("sender", msg.SenderID).Msg("echo failed")
		}
	}
}

// relayTyping forwards a typing or stop-typing signal to the receiver's
// handle, if present.
func (r *Router) relayTyping(event string, ev TypingEvent) {
	if receiver := r.registry.Lookup(ev.ReceiverID); receiver != nil {
		_ = receiver.Send(event, ev)
	}
}

// identify registers conn as userID's handle and broadcasts the new roster.
// A prior handle for the same user is superseded and closed.
func (r *Router) identify(client *Client, userID uint, conn wsConn) *Client {
	if client != nil {
		if client.UserID == userID {
			return client
		}
		// El mismo canal se re-identifica como otro usuario
		if r.registry.Unregister(client) {
			r.broadcastRoster()
		}
	}

	client = NewClient(userID, conn)
	if evicted := r.registry.Register(client); evicted != nil {
		_ = evicted.Close()
	}
	r.log.Debug().Uint("user", userID).Str("handle", client.ID.String()).Msg("user online")
	r.broadcastRoster()
	return client
}

// drop removes the client from presence on channel close and broadcasts the
// updated roster. Safe to call for a client already superseded.
func (r *Router) drop(client *Client) {
	if r.registry.Unregister(client) {
		r.log.Debug().Uint("user", client.UserID).Msg("user offline")
		r.broadcastRoster()
	}
	_ = client.Close()
}

func (r *Router) broadcastRoster() {
	r.registry.Broadcast(EventOnlineUsers, r.registry.Online())
}

// dispatch routes one decoded envelope. It returns the channel's current
// client, which changes only on add-user. Events with payloads that fail
// validation are dropped before reaching any state.
func (r *Router) dispatch(client *Client, conn wsConn, env Envelope) *Client {
	switch env.Event {
	case EventAddUser:
		var ev AddUserEvent
		if err := decode(env.Data, &ev); err != nil {
			r.log.Warn().Err(err).Msg("invalid add-user event")
			return client
		}
		return r.identify(client, ev.UserID, conn)

	case EventSendMessage:
		var ev MessagePayload
		if err := decode(env.Data, &ev); err != nil {
			r.log.Warn().Err(err).Msg("invalid send-message event")
			return client
		}
		origin := uuid.Nil
		if client != nil {
			origin = client.ID
		}
		r.Relay(ev, origin)

	case EventTyping, EventStopTyping:
		var ev TypingEvent
		if err := decode(env.Data, &ev); err != nil {
			r.log.Warn().Err(err).Msg("invalid typing event")
			return client
		}
		r.relayTyping(env.Event, ev)

	default:
		r.log.Warn().Str("event", env.Event).Msg("unknown channel event")
	}
	return client
}

// validator is implemented by every inbound event payload.
type validator interface {
	Validate() error
}

func decode(raw json.RawMessage, into validator) error {
	if err := json.Unmarshal(raw, into); err != nil {
		return err
	}
	return into.Validate()
}
