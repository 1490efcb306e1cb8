package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondProblems returns the ordered list of user-correctable problems
// blocking an action, e.g. the order button's validation messages.
func respondProblems(w http.ResponseWriter, problems []string) {
	respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:  problems[0],
		Code:   "validation_failed",
		Errors: problems,
	})
}
