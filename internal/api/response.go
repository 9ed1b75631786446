package api

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error(err, "failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int, details map[string]any) {
	s.writeJSON(w, status, errorResponse{Error: errorDetail{
		Code:    code,
		Message: message,
		Status:  status,
		Details: details,
	}})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, message string) {
	s.writeError(w, "BAD_REQUEST", message, http.StatusBadRequest, nil)
}

func (s *Server) writeNotFound(w http.ResponseWriter, message string, details map[string]any) {
	s.writeError(w, "NOT_FOUND", message, http.StatusNotFound, details)
}
