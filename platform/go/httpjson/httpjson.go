// Package httpjson carries the small request/response helpers shared by the
// domain HTTP handlers: JSON decoding with a size cap, JSON encoding, and the
// error envelope the browser dashboard expects.
package httpjson

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodyBytes caps request bodies; every payload in this API is a small flat object.
const maxBodyBytes = 1 << 20

// errorBody is the `{"error": "..."}` envelope used for failures.
type errorBody struct {
	Error string `json:"error"`
}

// successBody is the wire shape for mutations that only acknowledge.
type successBody struct {
	Success bool `json:"success"`
}

// Decode reads the request body as JSON into dst.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// Write encodes payload as JSON with the given status code.
func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteSuccess emits the `{"success":true}` acknowledgement.
func WriteSuccess(w http.ResponseWriter) {
	Write(w, http.StatusOK, successBody{Success: true})
}

// WriteError emits the error envelope with the given status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	Write(w, status, errorBody{Error: message})
}
