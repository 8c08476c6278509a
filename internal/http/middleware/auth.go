package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/auth"
	"github.com/invenhq/inventory-api/internal/http/apierr"
)

type claimsContextKey struct{}

// Auth validates the bearer token and puts the claims on the request context.
func Auth(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w)
				return
			}

			claims, err := issuer.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated admin's claims, or nil when the
// request did not pass the Auth middleware.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*auth.Claims)
	return claims
}

func writeUnauthorized(w http.ResponseWriter) {
	res := apierr.New(apperr.UnauthenticatedErr)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	//nolint:errcheck
	json.NewEncoder(w).Encode(res)
}
