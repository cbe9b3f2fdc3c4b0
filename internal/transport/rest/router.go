package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/workhub/leave-management/internal/attendance"
	"github.com/workhub/leave-management/internal/auth"
	"github.com/workhub/leave-management/internal/employee"
	"github.com/workhub/leave-management/internal/leave"
	"github.com/workhub/leave-management/internal/transport/middleware"
	"github.com/workhub/leave-management/internal/transport/swagger"
)

type Handlers struct {
	Auth       *auth.Handler
	Leave      *leave.Handler
	Attendance *attendance.Handler
	Employee   *employee.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		MaxAge:         300,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)

			sr.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)
				pr.Get("/welcome", h.Auth.Welcome)
			})
		})

		// Legacy leave routes; request and response schemas predate the
		// leave-management API.
		r.Route("/leaves", func(sr chi.Router) {
			sr.Post("/apply-leave", h.Leave.ApplyLeaveLegacy)
			sr.Get("/leave-status/{empid}", h.Leave.GetLeaveStatus)
			sr.Get("/manager-leave-status", h.Leave.GetManagerLeaveStatus)
			sr.Get("/manager-leave-status/{managerName}", h.Leave.GetManagerLeaveStatus)
			sr.Patch("/leave-management/status/{leaveId}", h.Leave.UpdateLeaveStatusLegacy)
		})

		r.Route("/leave-management", func(sr chi.Router) {
			sr.Post("/apply", h.Leave.ApplyLeave)
			sr.Patch("/status/{leaveManagementId}", h.Leave.UpdateLeaveStatus)
			sr.Get("/balance/{empId}", h.Leave.GetLeaveBalance)
			sr.Get("/mgr_leave_balance/{managerName}", h.Leave.GetManagedLeaveBalances)
		})

		r.Route("/users", func(sr chi.Router) {
			sr.Get("/attendance/last-4-days/{id}", h.Attendance.LastFourDays)
			sr.Post("/attendance/clock-in/{id}", h.Attendance.ClockIn)
			sr.Put("/attendance/clock-out/{id}", h.Attendance.ClockOut)
			sr.Get("/mgr_dashboard/{managerName}", h.Employee.ManagerDashboard)
			sr.Get("/{id}", h.Employee.GetEmployee)
		})
	})
}
