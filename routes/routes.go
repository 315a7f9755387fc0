package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clementus360/mood-tracker/handlers"
	"clementus360/mood-tracker/middleware"
)

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux, h *handlers.Handler) {
	RegisterMoodRoutes(mux, h)
	RegisterTaskRoutes(mux, h)
	RegisterEmployeeRoutes(mux, h)

	mux.HandleFunc("GET /healthz", handlers.HealthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func RegisterMoodRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /api/mood", h.RecordMoodHandler)
	mux.HandleFunc("POST /api/mood/detect", h.DetectMoodHandler)
	mux.HandleFunc("GET /api/analytics/team", h.TeamAnalyticsHandler)
}

func RegisterTaskRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /api/tasks", h.CreateTaskHandler)
	mux.HandleFunc("GET /api/tasks", h.GetTasksHandler)
	mux.HandleFunc("GET /api/tasks/recommend", h.RecommendTasksHandler)
}

func RegisterEmployeeRoutes(mux *http.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("POST /api/employees", h.CreateEmployeeHandler)
	mux.HandleFunc("GET /api/employees", h.GetEmployeesHandler)
	mux.HandleFunc("GET /api/employees/{id}/assessment", h.AssessmentHandler)
	mux.HandleFunc("POST /api/employees/{id}/alerts/evaluate", h.EvaluateAlertsHandler)
}

// NewRouter returns the mux wrapped in the standard middleware stack.
func NewRouter(h *handlers.Handler) http.Handler {
	mux := http.NewServeMux()
	RegisterAllRoutes(mux, h)
	return middleware.Chain(
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)(mux)
}
