package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

const maxBodyBytes = 1 << 20

// ErrUnsupportedMediaType is returned by DecodeJSON for non-JSON request bodies
var ErrUnsupportedMediaType = errors.New("Content-Type must be application/json")

// DecodeJSON reads a single JSON value from the request body into v.
// Unknown fields are rejected when strict is set.
func DecodeJSON(r *http.Request, v interface{}, strict bool) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return ErrUnsupportedMediaType
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}
	return nil
}

// WriteJSON writes v with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, statusCode int, message, requestID string) {
	_ = WriteJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
