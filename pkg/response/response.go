// Package response writes the JSON envelope every API endpoint shares:
// {"success":true,"data":...} on the happy path and
// {"success":false,"error":CODE,"message":...} on failure.
package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func Error(w http.ResponseWriter, status int, code string, message string) {
	JSON(w, status, envelope{Success: false, Error: code, Message: message})
}
