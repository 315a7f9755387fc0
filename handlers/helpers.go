package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clementus360/mood-tracker/config"
	"clementus360/mood-tracker/engine"
	"clementus360/mood-tracker/types"
	"clementus360/mood-tracker/wellbeing"
)

// Handler serves the HTTP API on top of the wellbeing service.
type Handler struct {
	svc *wellbeing.Service
}

func New(svc *wellbeing.Service) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	resp := types.ErrorResponse{
		Success:      false,
		ErrorMessage: message,
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps service and engine errors onto status codes.
func writeServiceError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, wellbeing.ErrInvalidInput), errors.Is(err, engine.ErrNoInputProvided):
		config.Logger.Warn(action, ": ", err)
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, wellbeing.ErrNotFound):
		writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, engine.ErrNoValidSignal):
		config.Logger.Warn(action, ": ", err)
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		config.Logger.Error("Failed to ", action, ": ", err)
		writeError(w, "Failed to "+action, http.StatusInternalServerError)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		config.Logger.Warn("Failed to decode JSON body:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// parseID reads a positive integer from a path or query value.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
