package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/invenhq/inventory-api/pkg/correlationid"
)

// Cors allows the configured dashboard origins to call the API.
func Cors(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", correlationid.Header},
		ExposedHeaders: []string{correlationid.Header},
		MaxAge:         300,
	})
}
