package httpx

import (
	"encoding/json"
	"net/http"
)

// OctetStream is the content type of every successful binary body.
const OctetStream = "application/octet-stream"

// ErrorResponse is the JSON envelope for failure responses. Success bodies
// on this API are binary; errors stay JSON so they remain debuggable with
// ordinary tools.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Error writes a failure response with the given status and machine-readable
// code.
func Error(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			RequestID: RequestIDFrom(r),
		},
	})
}

// Binary writes a successful binary body.
func Binary(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", OctetStream)
	_, _ = w.Write(payload)
}
