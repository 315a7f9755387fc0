package handlers

import (
	"net/http"

	"clementus360/mood-tracker/types"
)

func (h *Handler) CreateEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var employee types.Employee
	if !decode(w, r, &employee) {
		return
	}

	saved, err := h.svc.CreateEmployee(r.Context(), employee)
	if err != nil {
		writeServiceError(w, "create employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, types.EmployeeResponse{
		Success:  true,
		Employee: saved,
	})
}

func (h *Handler) GetEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.ListEmployees(r.Context(), r.URL.Query().Get("team"))
	if err != nil {
		writeServiceError(w, "fetch employees", err)
		return
	}
	if employees == nil {
		employees = []types.Employee{}
	}

	writeJSON(w, http.StatusOK, types.GetEmployeesResponse{
		Success:   true,
		Employees: employees,
	})
}

func (h *Handler) AssessmentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		writeError(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}

	assessment, err := h.svc.Assess(r.Context(), id)
	if err != nil {
		writeServiceError(w, "assess employee", err)
		return
	}

	writeJSON(w, http.StatusOK, types.AssessmentResponse{
		Success:    true,
		EmployeeID: id,
		Assessment: &assessment,
	})
}

func (h *Handler) EvaluateAlertsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		writeError(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}

	eval, err := h.svc.Evaluate(r.Context(), id)
	if err != nil {
		writeServiceError(w, "evaluate alerts", err)
		return
	}

	writeJSON(w, http.StatusOK, types.EvaluationResponse{
		Success:    true,
		Evaluation: &eval,
	})
}
