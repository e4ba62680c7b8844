package services

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// GalleryEvent is the payload pushed to WebSocket clients. Clients treat
// any gallery_invalidate as "refetch the grid"; no diff is carried.
type GalleryEvent struct {
	Type string `json:"type"`
}

// EventTypeInvalidate tells clients the photo or like tables changed.
const EventTypeInvalidate = "gallery_invalidate"

// GalleryConn is the minimal interface our WebSocket implementation must satisfy.
type GalleryConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// galleryClient pairs a connection with a write lock. Gorilla connections
// allow only one concurrent writer, so every send must hold the lock.
type galleryClient struct {
	conn GalleryConn
	mu   sync.Mutex
}

func (c *galleryClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// GalleryHub is a registry of connected gallery clients.
type GalleryHub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]*galleryClient
}

// NewGalleryHub creates an empty hub.
func NewGalleryHub() *GalleryHub {
	return &GalleryHub{connections: make(map[uuid.UUID]*galleryClient)}
}

// Register adds a connection and returns its handle for Unregister.
func (h *GalleryHub) Register(conn GalleryConn) uuid.UUID {
	id := uuid.New()
	h.mu.Lock()
	h.connections[id] = &galleryClient{conn: conn}
	h.mu.Unlock()
	return id
}

// Unregister removes a connection.
func (h *GalleryHub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	delete(h.connections, id)
	h.mu.Unlock()
}

// BroadcastInvalidate fans the invalidation event out to every connected
// client. Sends are best-effort and non-blocking.
func (h *GalleryHub) BroadcastInvalidate() {
	event := GalleryEvent{Type: EventTypeInvalidate}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.connections {
		go func(c *galleryClient) {
			if err := c.writeJSON(event); err != nil {
				log.Printf("error writing gallery event to websocket: %v", err)
			}
		}(client)
	}
}

// Count returns the number of connected clients.
func (h *GalleryHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
