package http

import (
	"net/http"

	"vet-clinic/internal/delivery/http/handler"
	"vet-clinic/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	healthHandler       *handler.HealthHandler
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	petHandler          *handler.PetHandler
	doctorHandler       *handler.DoctorHandler
	userHandler         *handler.UserHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	petHandler *handler.PetHandler,
	doctorHandler *handler.DoctorHandler,
	userHandler *handler.UserHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		healthHandler:       healthHandler,
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		petHandler:          petHandler,
		doctorHandler:       doctorHandler,
		userHandler:         userHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Appointment reads
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetUpcomingAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/lookup", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/options", r.appointmentHandler.GetBookingOptions).Methods(http.MethodGet)
	appointments.HandleFunc("/slots", r.appointmentHandler.GetFreeSlots).Methods(http.MethodGet)

	// Appointment mutations (rate limited)
	booking := api.PathPrefix("/appointments").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(r.rateLimitMiddleware.Limit)
	booking.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	booking.HandleFunc("", r.appointmentHandler.EditAppointment).Methods(http.MethodPut)
	booking.HandleFunc("/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	booking.HandleFunc("/{title}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Pets
	pets := api.PathPrefix("/pets").Subrouter()
	pets.Use(r.authMiddleware.Authenticate)
	pets.HandleFunc("", r.petHandler.GetMyPets).Methods(http.MethodGet)
	pets.HandleFunc("", r.petHandler.CreatePet).Methods(http.MethodPost)
	pets.HandleFunc("/bookable", r.petHandler.GetBookablePets).Methods(http.MethodGet)
	pets.HandleFunc("/{name}", r.petHandler.DeletePet).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Appointment management (admin)
	admin.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/lookup", r.appointmentHandler.LookupAppointment).Methods(http.MethodGet)
	admin.Handle("/appointments", r.rateLimitMiddleware.Limit(http.HandlerFunc(r.appointmentHandler.AdminCreateAppointment))).Methods(http.MethodPost)
	admin.Handle("/appointments", r.rateLimitMiddleware.Limit(http.HandlerFunc(r.appointmentHandler.AdminEditAppointment))).Methods(http.MethodPut)
	admin.Handle("/appointments", r.rateLimitMiddleware.Limit(http.HandlerFunc(r.appointmentHandler.AdminDeleteAppointment))).Methods(http.MethodDelete)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// User management (admin)
	admin.HandleFunc("/users", r.userHandler.GetUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{id}/pets", r.petHandler.GetUserPets).Methods(http.MethodGet)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests match no API route, this gives the CORS middleware a route to run on
	r.router.PathPrefix("/").Methods(http.MethodOptions).Handler(http.NotFoundHandler())

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
