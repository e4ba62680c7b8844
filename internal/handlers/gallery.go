package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dsahare/portfolio-backend/internal/models"
	"github.com/dsahare/portfolio-backend/internal/services"
)

// galleryUserHeader carries the caller's identity: a client-stored random
// guest token, or the admin session identity for signed-in users.
const galleryUserHeader = "X-Gallery-User"

// GalleryHandler exposes the photo grid, like toggling and the realtime
// invalidation socket.
type GalleryHandler struct {
	galleryService *services.GalleryService
	hub            *services.GalleryHub
	upgrader       websocket.Upgrader
}

// NewGalleryHandler creates a GalleryHandler with the given service and hub.
func NewGalleryHandler(galleryService *services.GalleryService, hub *services.GalleryHub) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
		hub:            hub,
		upgrader: websocket.Upgrader{
			// The API is public and CORS is wide open; the socket matches.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ListPhotosResponse is the payload for GET /api/gallery.
type ListPhotosResponse struct {
	Photos []*models.GalleryPhoto `json:"photos"`
	Liked  []uuid.UUID            `json:"liked"`
}

// ListPhotos handles GET /api/gallery.
func (h *GalleryHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.galleryService.ListPhotos(r.Context())
	if err != nil {
		log.Printf("[GALLERY] failed to list photos: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to load gallery"})
		return
	}

	liked := []uuid.UUID{}
	if user := galleryUser(r); user != "" {
		ids, err := h.galleryService.LikedPhotoIDs(r.Context(), user)
		if err != nil {
			log.Printf("[GALLERY] failed to load likes for %s: %v", user, err)
		} else {
			liked = ids
		}
	}

	writeJSON(w, http.StatusOK, ListPhotosResponse{Photos: photos, Liked: liked})
}

// ToggleLikeRequest is the payload for POST /api/gallery/like.
type ToggleLikeRequest struct {
	PhotoID string `json:"photo_id"`
}

// ToggleLike handles POST /api/gallery/like.
func (h *GalleryHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := galleryUser(r)
	if user == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Missing gallery user identifier"})
		return
	}

	var req ToggleLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	photoID, err := uuid.Parse(req.PhotoID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid photo ID"})
		return
	}

	result, err := h.galleryService.ToggleLike(r.Context(), photoID, user)
	if err != nil {
		log.Printf("[GALLERY] toggle like failed for photo=%s user=%s: %v", photoID, user, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to update like"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Events handles GET /ws/gallery: upgrades and keeps the connection in the
// hub until the client goes away. The socket is push-only.
func (h *GalleryHandler) Events(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[GALLERY] websocket upgrade failed: %v", err)
		return
	}

	id := h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(id)
		conn.Close()
	}()

	// Drain reads to detect disconnects; inbound frames are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func galleryUser(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(galleryUserHeader))
}
