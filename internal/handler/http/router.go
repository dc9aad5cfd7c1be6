package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/orgdesk/orgdesk-backend-go/internal/handler/http/middleware"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	exceptionHandler ExceptionHandler,
	leaveHandler LeaveHandler,
	statsHandler StatsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "orgdesk-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/bulk-checkout", attendanceHandler.BulkCheckout)
				})
			})

			r.Route("/late-logs", func(r chi.Router) {
				r.Get("/", exceptionHandler.ListLate)
				r.Get("/{id}", exceptionHandler.Get)
				r.Post("/{id}/reason", exceptionHandler.SubmitReason)

				// Reviewer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/{id}/action", exceptionHandler.ReviewLate)
				})
			})

			r.Route("/half-day-logs", func(r chi.Router) {
				r.Get("/", exceptionHandler.ListHalfDay)
				r.Get("/{id}", exceptionHandler.Get)
				r.Post("/{id}/reason", exceptionHandler.SubmitReason)

				// Reviewer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/{id}/action", exceptionHandler.ReviewHalfDay)
				})
			})

			r.Route("/leave-logs", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Get("/", leaveHandler.List)
				r.Get("/{id}", leaveHandler.Get)

				// Reviewer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/{id}/action", leaveHandler.Review)
				})
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/period", statsHandler.Period)
				r.Get("/monthly", statsHandler.Monthly)
				r.Get("/employees/{id}", statsHandler.EmployeeSummary)
			})
		})
	})

	return r
}
