package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/invenhq/inventory-api/pkg/correlationid"
)

// CorrelationID propagates the caller's correlation ID, generating one when
// absent, and echoes it back in the response.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(correlationid.Header)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(correlationid.Header, id)
			next.ServeHTTP(w, r.WithContext(correlationid.NewContext(r.Context(), id)))
		})
	}
}
