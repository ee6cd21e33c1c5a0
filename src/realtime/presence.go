// Package realtime tracks which users hold a live websocket channel and
// relays chat events between them. Presence is in-memory only and is lost on
// restart by design; durable delivery is always recovered through the message
// history endpoint, never retried here.
package realtime

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// wsConn is the subset of a websocket connection the realtime layer writes
// to. Kept small so tests can supply a fake.
type wsConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one registered channel handle: a user id bound to a websocket
// connection. Writes are serialized because the underlying conn does not
// support concurrent writers.
type Client struct {
	ID     uuid.UUID
	UserID uint

	mu   sync.Mutex
	conn wsConn
}

func NewClient(userID uint, conn wsConn) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		conn:   conn,
	}
}

// Send writes one event envelope to the client.
func (c *Client) Send(event string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(outbound{Event: event, Data: data})
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// Registry is the presence map: user id → live channel handle. The policy is
// explicitly single-handle-per-user: registering a second session for the
// same user supersedes the first, and Register hands the evicted handle back
// so the caller can close it.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[uint]*Client)}
}

// Register records the client as its user's handle, replacing any prior one.
// Returns the evicted handle, if any.
func (r *Registry) Register(client *Client) (evicted *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted = r.clients[client.UserID]
	r.clients[client.UserID] = client
	return evicted
}

// Lookup returns the user's current handle, or nil when offline.
func (r *Registry) Lookup(userID uint) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clients[userID]
}

// Unregister removes the entry only if it still records this exact handle, so
// an unregister racing a superseding registration is a no-op. Reports whether
// an entry was removed.
func (r *Registry) Unregister(client *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.clients[client.UserID]
	if !ok || current.ID != client.ID {
		return false
	}
	delete(r.clients, client.UserID)
	return true
}

// Online returns a sorted snapshot of the user ids currently registered.
func (r *Registry) Online() []uint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	online := make([]uint, 0, len(r.clients))
	for userID := range r.clients {
		online = append(online, userID)
	}
	sort.Slice(online, func(i, j int) bool { return online[i] < online[j] })
	return online
}

// Broadcast writes one event to every registered handle, best effort.
func (r *Registry) Broadcast(event string, data interface{}) {
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	for _, client := range clients {
		_ = client.Send(event, data)
	}
}
