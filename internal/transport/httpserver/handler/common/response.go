// Package common holds the JSON wire helpers shared by the handler
// package and the HTTP middleware.
package common

import (
	"encoding/json"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; every payload this API accepts is
// far below 1 MiB.
const maxBodyBytes = 1 << 20

// ErrorBody is the single error shape this API returns, nested under an
// "error" key.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorEnvelope{Error: ErrorBody{Code: code, Message: message}})
}

func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
