// internal/common/httpx/httpx.go
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "intake-gateway/internal/common/errors"
)

// ReadJSON decodes the request body into v. An empty body is not an error:
// both request paths treat a missing body as an empty object.
func ReadJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders a RequestError as the {error: <message>} body the
// dashboard client expects. Unknown error types become an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	var reqErr *apperrors.RequestError
	if errors.As(err, &reqErr) {
		WriteJSON(w, reqErr.Status, map[string]string{"error": reqErr.Message})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
