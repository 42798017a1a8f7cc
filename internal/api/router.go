package api

import (
	"net/http"

	"bikeshare/internal/auth"
	"bikeshare/internal/logger"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Bookings       *BookingHandler
	Public         *PublicHandler
	Admin          *AdminHandler
	AdminAuth      *AdminAuthHandler
	JWTSecret      string
	AllowedOrigins []string
	BookingsPerMin int
	// TrustProxy honours X-Forwarded-For and X-Real-IP. Enable it only behind a proxy that overwrites them.
	TrustProxy     bool
	Log            *zap.Logger
}

// NewRouter wires the public and admin routes and wraps them with CORS,
// panic recovery and request logging, plus proxy-header handling when trusted.
func NewRouter(cfg RouterConfig) http.Handler {
	log := logger.OrNop(cfg.Log)
	r := mux.NewRouter()
	r.HandleFunc("/healthz", Health).Methods(http.MethodGet)

	// Public endpoints
	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/availability", cfg.Bookings.Availability).Methods(http.MethodGet)
	public.HandleFunc("/bikes", cfg.Bookings.Bikes).Methods(http.MethodGet)
	public.HandleFunc("/bikers", cfg.Public.TopBikers).Methods(http.MethodGet)
	public.HandleFunc("/preview-email", cfg.Public.PreviewEmail).Methods(http.MethodGet)

	limiter := NewIPRateLimiter(cfg.BookingsPerMin)
	public.Handle("/book", limiter.Middleware(log)(http.HandlerFunc(cfg.Bookings.Book))).Methods(http.MethodPost)

	r.HandleFunc("/admin/login", cfg.AdminAuth.Login).Methods(http.MethodPost)

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/bookings", cfg.Admin.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/users", cfg.AdminAuth.CreateUserAdmin).Methods(http.MethodPost)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	var h http.Handler = r
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(zap.NewStdLog(log)), handlers.PrintRecoveryStack(false))(h)
	h = RequestLogger(log)(h)
	h = cors(h)
	if cfg.TrustProxy {
		h = handlers.ProxyHeaders(h)
	}
	return h
}
