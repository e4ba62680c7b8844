package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/dsahare/portfolio-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, contact *handlers.ContactHandler, gallery *handlers.GalleryHandler, admin *handlers.AdminHandler, upload *handlers.UploadHandler) {
	// Contact form intake
	r.Post("/api/contact", contact.Submit)

	// Gallery routes
	r.Get("/api/gallery", gallery.ListPhotos)
	r.Post("/api/gallery/like", gallery.ToggleLike)

	// WebSocket endpoint for gallery invalidation pushes
	r.Get("/ws/gallery", gallery.Events)

	// Admin routes
	r.Post("/api/admin/signin", admin.Signin)
	r.Post("/api/admin/signout", admin.Signout)
	r.Get("/api/admin/contacts", admin.GetContacts)
	r.Post("/api/admin/gallery/photo", upload.UploadPhoto)
}
