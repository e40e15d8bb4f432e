package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"agency-site-server/logger"
	"agency-site-server/notify"
)

// Client represents a connected admin browser tab
type Client struct {
	Hub    *Hub
	UserID string
	Send   chan []byte
	conn   connection
}

// Hub fans site events out to every connected admin
type Hub struct {
	// Registered clients; one admin may hold several tabs
	clients map[*Client]bool

	// Broadcast channel for messages to all clients
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Message handlers keyed by incoming message type
	handlers map[string]MessageHandler

	done chan struct{}
	mu   sync.RWMutex
}

// Message is the frame written to admin clients
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// MessageHandler handles a message sent by a client
type MessageHandler func(*Client, *Message) error

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		handlers:   make(map[string]MessageHandler),
		done:       make(chan struct{}),
	}
	h.handlers["ping"] = h.handlePing
	return h
}

// Run starts the hub's main loop and returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Debug().Str("user_id", client.UserID).Msg("Admin feed client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Debug().Str("user_id", client.UserID).Msg("Admin feed client unregistered")

		case data := <-h.broadcast:
			h.broadcastMessage(data)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// broadcastMessage sends data to all connected clients, dropping slow ones
func (h *Hub) broadcastMessage(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			logger.Warn().Str("user_id", client.UserID).Msg("Admin feed client too slow, disconnecting")
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// Notify publishes a site event to the admin feed
func (h *Hub) Notify(ctx context.Context, event notify.Event) {
	data, err := json.Marshal(&Message{Type: event.Type, Data: event.Data, Timestamp: event.At})
	if err != nil {
		logger.Error().Err(err).Str("type", event.Type).Msg("Error marshaling feed message")
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	case <-ctx.Done():
	default:
		logger.Warn().Str("type", event.Type).Msg("Admin feed backlog full, event dropped")
	}
}

// ClientCount returns the number of connected tabs
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// handle dispatches an incoming client message
func (h *Hub) handle(client *Client, message *Message) {
	handler, ok := h.handlers[message.Type]
	if !ok {
		logger.Debug().Str("type", message.Type).Msg("Unknown feed message type")
		return
	}
	if err := handler(client, message); err != nil {
		logger.Warn().Err(err).Str("type", message.Type).Msg("Error handling feed message")
	}
}

// handlePing answers pings for connection health
func (h *Hub) handlePing(client *Client, _ *Message) error {
	return client.SendMessage(&Message{Type: "pong", Timestamp: time.Now()})
}
