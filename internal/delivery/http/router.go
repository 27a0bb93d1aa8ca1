package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"staffline/internal/delivery/http/controllers"
	"staffline/internal/delivery/http/middleware"
	"staffline/internal/domain"
)

// Controllers bundles everything NewRouter needs to wire the route table.
type Controllers struct {
	Auth   *controllers.AuthController
	BEO    *controllers.BEOController
	Event  *controllers.EventController
	Shift  *controllers.ShiftController
	Report *controllers.ReportController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything except signup, login, and swagger requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /me", auth(c.Auth.Me))

	// Staff management
	mux.HandleFunc("GET /staff", auth(c.Auth.ListStaff))
	mux.HandleFunc("POST /staff/{staffID}/validate", auth(c.Auth.ValidateStaff))
	mux.HandleFunc("PATCH /staff/{staffID}/status", auth(c.Auth.SetStaffStatus))

	// BEO extraction
	mux.HandleFunc("POST /beo/upload", auth(c.BEO.Upload))
	mux.HandleFunc("POST /beo/manual", auth(c.BEO.ManualEntry))

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events", auth(c.Event.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))
	mux.HandleFunc("POST /events/{eventID}/publish", auth(c.Event.PublishEvent))

	// Shifts
	mux.HandleFunc("POST /events/{eventID}/shift-requests", auth(c.Shift.RequestShift))
	mux.HandleFunc("GET /events/{eventID}/shift-requests", auth(c.Shift.ListByEvent))
	mux.HandleFunc("GET /shift-requests/me", auth(c.Shift.ListMine))
	mux.HandleFunc("POST /shift-requests/{requestID}/approve", auth(c.Shift.Approve))
	mux.HandleFunc("POST /shift-requests/{requestID}/reject", auth(c.Shift.Reject))
	mux.HandleFunc("POST /shift-requests/{requestID}/check-in", auth(c.Shift.CheckIn))
	mux.HandleFunc("POST /shift-requests/{requestID}/check-out", auth(c.Shift.CheckOut))
	mux.HandleFunc("POST /shift-requests/{requestID}/verify-uniform", auth(c.Shift.VerifyUniform))

	// Reports
	mux.HandleFunc("GET /reports/labor", auth(c.Report.LaborReport))
	mux.HandleFunc("GET /reports/reliability", auth(c.Report.StaffReliability))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
