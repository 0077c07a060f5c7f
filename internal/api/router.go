package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitalworks/vitality/internal/auth"
	"github.com/vitalworks/vitality/internal/notify"
	"github.com/vitalworks/vitality/internal/store"
	"github.com/vitalworks/vitality/internal/vicalc"
)

func NewRouter(s store.Store, authSvc *auth.Service, events notify.Publisher, calc *vicalc.Calculator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	users := NewUsersHandler(s, authSvc, events, logger)
	answers := NewAnswersHandler(s, calc)
	results := NewResultsHandler(s, events, calc, logger)
	stats := NewStatisticsHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", users.Register)
		r.Post("/auth/login", users.Login)

		r.Group(func(r chi.Router) {
			r.Use(authSvc.Middleware)

			r.Get("/users/{id}", users.Get)
			r.Get("/users/recommendations/{component}", results.Recommendations)
			r.Get("/questions", answers.Questions)
			r.Post("/answers", answers.Submit)

			r.Post("/results", results.Create)
			r.Get("/results", results.List)
			r.Get("/results/{id}", results.Get)
			r.Get("/results/{id}/answers", results.Answers)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(store.RoleVendor))
				r.Get("/statistics", stats.Get)
			})
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
