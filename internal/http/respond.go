package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/http/apierr"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("error encoding response", slog.Any("error", err))
	}
}

// writeError maps an error to the API error shape and logs it at a level
// matching its severity.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	log.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	writeJSON(w, res.StatusCode, res)
}

// decodeJSON decodes the request body into target, treating malformed input
// as a validation failure.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ValidationErr.WithMsg("request body is required")
		}
		return apperr.ValidationErr.WrapParent(err).WithMsg("malformed request body")
	}
	return nil
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationErr.WithMsg("id must be a positive integer")
	}
	return id, nil
}
