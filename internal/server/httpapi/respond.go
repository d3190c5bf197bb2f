package httpapi

import (
	"net/http"

	"github.com/goccy/go-json"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// messageResponse is the shape of every error and of plain acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "encode response failed", "error", err)
	}
}

func (s *HTTPServer) writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, messageResponse{Message: msg})
}

// decodeJSON reads a single JSON value from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
