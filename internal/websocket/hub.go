package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/listview"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "view_events"

// Message is what a patch stream client receives.
type Message struct {
	Type   string           `json:"type"` // "patches" or "closed"
	ViewId string           `json:"view_id"`
	Data   []listview.Patch `json:"data,omitempty"`
}

type clusterEnvelope struct {
	Origin       string          `json:"origin"`
	TargetViewId string          `json:"target_view_id"`
	Message      json.RawMessage `json:"message"`
}

// Hub streams reconciled view batches to the websocket clients watching each
// view. It is attached to the synchronizer as an observer of every view.
type Hub struct {
	// Registered clients map: ViewId -> clients watching it
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Batches being collected between BeginUpdates and EndUpdates
	pendingMu sync.Mutex
	pending   map[string][]listview.Patch

	// Redis connection for cross-instance communication
	rdb      *redis.Client
	instance string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		pending:    make(map[string][]listview.Patch),
		rdb:        rdb,
		instance:   uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ViewId] = append(h.clients[client.ViewId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"view_id": client.ViewId})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Clustered reports whether batches are shared with other instances.
func (h *Hub) Clustered() bool {
	return h.rdb != nil
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.ViewId]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.ViewId] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.ViewId]) == 0 {
		delete(h.clients, client.ViewId)
		h.logger.Info("Hub", "View has no more clients", map[string]interface{}{"view_id": client.ViewId})
	}
}

func (h *Hub) BeginUpdates(v *listview.View) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	h.pending[v.Id()] = nil
}

func (h *Hub) Apply(v *listview.View, p listview.Patch) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	h.pending[v.Id()] = append(h.pending[v.Id()], p)
}

func (h *Hub) EndUpdates(v *listview.View) {
	h.pendingMu.Lock()
	patches := h.pending[v.Id()]
	delete(h.pending, v.Id())
	h.pendingMu.Unlock()

	h.Send(Message{Type: "patches", ViewId: v.Id(), Data: patches})
}

// ViewClosed tells the clients of v the stream is over and drops them.
func (h *Hub) ViewClosed(v *listview.View) {
	h.Send(Message{Type: "closed", ViewId: v.Id()})

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients[v.Id()] {
		close(c.Send)
	}
	delete(h.clients, v.Id())
}

// Send delivers msg to local clients of its view and to other instances.
func (h *Hub) Send(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal message", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(msg.ViewId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{Origin: h.instance, TargetViewId: msg.ViewId, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish to redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) deliverLocal(viewId string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[viewId] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"view_id": viewId})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instance {
			continue
		}
		h.deliverLocal(payload.TargetViewId, payload.Message)
	}
}
