package handlers

import (
	"log"
	"net/http"

	"github.com/dsahare/portfolio-backend/internal/database"
	"github.com/dsahare/portfolio-backend/internal/models"
	"github.com/dsahare/portfolio-backend/internal/services"
)

// UploadHandler registers new gallery photos: the image goes to
// Cloudinary, the row to Postgres, and connected clients get an
// invalidation push.
type UploadHandler struct {
	admin          *AdminHandler
	cloudinary     *services.CloudinaryService
	galleryStore   *database.GalleryStore
	galleryService *services.GalleryService
}

// NewUploadHandler creates an UploadHandler. cloudinary may be nil when
// credentials are not configured; uploads then return 503.
func NewUploadHandler(admin *AdminHandler, cloudinary *services.CloudinaryService, galleryStore *database.GalleryStore, galleryService *services.GalleryService) *UploadHandler {
	return &UploadHandler{
		admin:          admin,
		cloudinary:     cloudinary,
		galleryStore:   galleryStore,
		galleryService: galleryService,
	}
}

// UploadPhotoResponse represents the response after a gallery upload
type UploadPhotoResponse struct {
	Success bool                 `json:"success"`
	Photo   *models.GalleryPhoto `json:"photo,omitempty"`
}

// UploadPhoto handles POST /api/admin/gallery/photo (session required,
// multipart with a "file" part plus optional caption/location/date/span
// fields).
func (h *UploadHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if !h.admin.requireAdminAuth(w, r) {
		return
	}

	if h.cloudinary == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Uploads are not configured"})
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Failed to parse form"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No file provided"})
		return
	}
	defer file.Close()

	url, err := h.cloudinary.UploadFileFromHeader(r.Context(), fileHeader, "gallery")
	if err != nil {
		log.Printf("[UPLOAD] cloudinary upload failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload photo"})
		return
	}

	photo := &models.GalleryPhoto{
		URL:      url,
		Caption:  r.FormValue("caption"),
		Location: r.FormValue("location"),
		TakenOn:  r.FormValue("date"),
		Span:     r.FormValue("span"),
	}
	if _, err := h.galleryStore.InsertPhoto(r.Context(), photo); err != nil {
		log.Printf("[UPLOAD] failed to save photo row: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to save photo"})
		return
	}

	h.galleryService.InvalidateListing(r.Context())

	writeJSON(w, http.StatusOK, UploadPhotoResponse{Success: true, Photo: photo})
}
