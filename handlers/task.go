package handlers

import (
	"net/http"
	"strconv"

	"clementus360/mood-tracker/types"
)

func (h *Handler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var task types.Task
	if !decode(w, r, &task) {
		return
	}

	saved, err := h.svc.CreateTask(r.Context(), task)
	if err != nil {
		writeServiceError(w, "create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, types.TaskResponse{
		Success: true,
		Task:    saved,
	})
}

func (h *Handler) GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context())
	if err != nil {
		writeServiceError(w, "fetch tasks", err)
		return
	}
	if tasks == nil {
		tasks = []types.Task{}
	}

	writeJSON(w, http.StatusOK, types.GetTasksResponse{
		Success: true,
		Tasks:   tasks,
		Total:   len(tasks),
	})
}

// RecommendTasksHandler responds with a bare ranked array, best first.
func (h *Handler) RecommendTasksHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	raw := q.Get("employee_id")
	if raw == "" {
		writeError(w, "Missing employee_id parameter", http.StatusBadRequest)
		return
	}
	employeeID, ok := parseID(raw)
	if !ok {
		writeError(w, "Invalid employee_id", http.StatusBadRequest)
		return
	}

	var requested int
	limitStr := q.Get("limit")
	if limitStr != "" {
		var err error
		requested, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, "Invalid limit value", http.StatusBadRequest)
			return
		}
	}
	limit, err := h.svc.RecommendLimit(requested, limitStr != "")
	if err != nil {
		writeServiceError(w, "recommend tasks", err)
		return
	}

	recs, err := h.svc.Recommend(r.Context(), employeeID, limit)
	if err != nil {
		writeServiceError(w, "recommend tasks", err)
		return
	}

	out := make([]types.RecommendedTask, 0, len(recs))
	for _, rec := range recs {
		out = append(out, types.RecommendedTask{
			ID:               rec.ID,
			Title:            rec.Title,
			Description:      rec.Description,
			DifficultyLevel:  rec.DifficultyLevel,
			SuitabilityScore: rec.SuitabilityScore,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
