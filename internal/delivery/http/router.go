package http

import (
	"net/http"

	"doctor-finder/internal/delivery/http/handler"
	"doctor-finder/internal/delivery/http/middleware"
	"doctor-finder/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	doctorHandler       *handler.DoctorHandler
	bookingHandler      *handler.BookingHandler
	authHandler         *handler.AuthHandler
	otpHandler          *handler.OTPHandler
	notificationHandler *handler.NotificationHandler
	clientMiddleware    *middleware.ClientMiddleware
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	bookingHandler *handler.BookingHandler,
	authHandler *handler.AuthHandler,
	otpHandler *handler.OTPHandler,
	notificationHandler *handler.NotificationHandler,
	clientMiddleware *middleware.ClientMiddleware,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		doctorHandler:       doctorHandler,
		bookingHandler:      bookingHandler,
		authHandler:         authHandler,
		otpHandler:          otpHandler,
		notificationHandler: notificationHandler,
		clientMiddleware:    clientMiddleware,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.clientMiddleware.Handle)

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Directory
	api.HandleFunc("/specialties", r.doctorHandler.GetSpecialties).Methods(http.MethodGet)
	api.HandleFunc("/doctors", r.doctorHandler.SearchDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Booking selection
	booking := api.PathPrefix("/booking").Subrouter()
	booking.HandleFunc("", r.bookingHandler.GetSelection).Methods(http.MethodGet)
	booking.HandleFunc("", r.bookingHandler.Cancel).Methods(http.MethodDelete)
	booking.HandleFunc("/doctor", r.bookingHandler.SelectDoctor).Methods(http.MethodPost)
	booking.HandleFunc("/date", r.bookingHandler.ChooseDate).Methods(http.MethodPut)
	booking.HandleFunc("/time", r.bookingHandler.ChooseTime).Methods(http.MethodPut)
	booking.Handle("/confirm", r.rateLimitMiddleware.Handle(http.HandlerFunc(r.bookingHandler.Confirm))).Methods(http.MethodPost)

	// Auth routes (rate limited)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.rateLimitMiddleware.Handle)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/session", r.authHandler.GetSession).Methods(http.MethodGet)
	auth.HandleFunc("/otp/send", r.otpHandler.Send).Methods(http.MethodPost)
	auth.HandleFunc("/otp/resend", r.otpHandler.Resend).Methods(http.MethodPost)
	auth.HandleFunc("/otp/verify", r.otpHandler.Verify).Methods(http.MethodPost)
	auth.HandleFunc("/otp/status", r.otpHandler.GetStatus).Methods(http.MethodGet)

	// Notifications
	api.HandleFunc("/notifications", r.notificationHandler.Drain).Methods(http.MethodGet)

	// Protected routes
	api.Handle("/me", r.authMiddleware.Authenticate(http.HandlerFunc(r.authHandler.GetCurrentUser))).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}
