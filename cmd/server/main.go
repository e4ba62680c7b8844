package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/dsahare/portfolio-backend/internal/config"
	"github.com/dsahare/portfolio-backend/internal/database"
	"github.com/dsahare/portfolio-backend/internal/handlers"
	"github.com/dsahare/portfolio-backend/internal/middleware"
	"github.com/dsahare/portfolio-backend/internal/routes"
	"github.com/dsahare/portfolio-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Mailer (best-effort notifications; the server still runs without a key)
	var mailer services.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = services.NewResendMailer(cfg.ResendAPIKey)
		log.Println("✅ Resend mailer configured")
	} else {
		log.Println("⚠️  WARNING: RESEND_API_KEY not set. Contact notifications will not be sent.")
	}

	// Cloudinary (gallery uploads)
	var cloudinaryService *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinaryService, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Gallery uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Gallery uploads will not be available")
	}

	if cfg.AdminPasswordHash == "" {
		log.Println("⚠️  WARNING: ADMIN_PASSWORD_HASH not set. Admin routes are disabled.")
		log.Println("   Generate a hash with: htpasswd -bnBC 10 \"\" <password> | tr -d ':'")
	}

	// Stores and services
	contactStore := database.NewContactStore(db)
	galleryStore := database.NewGalleryStore(db)
	contactService := services.NewContactService(contactStore, mailer, cfg.ContactFrom, cfg.ContactTo, cfg.AckFrom)
	galleryHub := services.NewGalleryHub()
	galleryService := services.NewGalleryService(galleryStore, services.NewRedisPhotoCache(redisClient), galleryHub)
	adminSessions := services.NewAdminSessionService(redisClient)

	// Handlers
	contactHandler := handlers.NewContactHandler(contactService)
	galleryHandler := handlers.NewGalleryHandler(galleryService, galleryHub)
	adminHandler := handlers.NewAdminHandler(cfg.AdminPasswordHash, adminSessions, contactStore)
	uploadHandler := handlers.NewUploadHandler(adminHandler, cloudinaryService, galleryStore, galleryService)

	// Setup router
	r := chi.NewRouter()

	// CORS is wide open: the frontend is a static site served from anywhere,
	// and OPTIONS preflight must get a 200 with an empty body
	r.Use(middleware.CORS())

	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.GlobalRateLimit)
		log.Println("✅ Production security enabled (security headers, per-IP request limiting)")
	}

	// Health check (no rate limit concerns here)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, contactHandler, galleryHandler, adminHandler, uploadHandler)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/contact")
	log.Println("  GET  /api/gallery")
	log.Println("  POST /api/gallery/like")
	log.Println("  GET  /ws/gallery")
	log.Println("  POST /api/admin/signin")
	log.Println("  POST /api/admin/signout")
	log.Println("  GET  /api/admin/contacts")
	log.Println("  POST /api/admin/gallery/photo")

	log.Printf("🚀 Portfolio backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
