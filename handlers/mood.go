package handlers

import (
	"net/http"

	"clementus360/mood-tracker/types"
)

func (h *Handler) RecordMoodHandler(w http.ResponseWriter, r *http.Request) {
	var req types.MoodRequest
	if !decode(w, r, &req) {
		return
	}

	record, err := h.svc.RecordMood(r.Context(), req)
	if err != nil {
		writeServiceError(w, "record mood", err)
		return
	}

	writeJSON(w, http.StatusCreated, types.MoodResponse{
		Success: true,
		Message: "Mood recorded successfully",
		Record:  &record,
	})
}

func (h *Handler) DetectMoodHandler(w http.ResponseWriter, r *http.Request) {
	var req types.DetectRequest
	if !decode(w, r, &req) {
		return
	}

	record, mood, err := h.svc.DetectMood(r.Context(), req)
	if err != nil {
		writeServiceError(w, "detect mood", err)
		return
	}

	writeJSON(w, http.StatusCreated, types.MoodResponse{
		Success:     true,
		Message:     "Mood detected and recorded",
		Record:      &record,
		SourcesUsed: mood.SourcesUsed,
	})
}

func (h *Handler) TeamAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")
	if team == "" {
		writeError(w, "Missing team parameter", http.StatusBadRequest)
		return
	}

	analytics, err := h.svc.TeamAnalytics(r.Context(), team)
	if err != nil {
		writeServiceError(w, "compute team analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}
