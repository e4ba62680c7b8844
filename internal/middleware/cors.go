package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin so the static frontend can call the API from
// wherever it is hosted. Preflight OPTIONS requests get a 200 with an
// empty body, never a 403.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type", "X-Gallery-User"},
		MaxAge:         300,
	})
}
