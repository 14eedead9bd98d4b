package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/infra/metrics"
	"lucky-numbers-platform/internal/usecase"
)

// Server is the operator-facing admin API: passphrase login, customer+code
// issuance, customer listing, and stats.
type Server struct {
	issuanceUC usecase.IssuanceUseCase
	statsUC    usecase.StatsUseCase
	auth       *AuthManager
	log        *zerolog.Logger
}

func NewServer(
	issuanceUC usecase.IssuanceUseCase,
	statsUC usecase.StatsUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		issuanceUC: issuanceUC,
		statsUC:    statsUC,
		auth:       auth,
		log:        logger,
	}
}

// RegisterRoutes sets up the routing for the admin API.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/login", s.loginHandler())
	mux.HandleFunc("/api/v1/logout", s.logoutHandler())

	mux.Handle("/api/v1/customers", s.authMiddleware(s.customersRouter()))
	mux.Handle("/api/v1/stats", s.authMiddleware(statsHandler(s.statsUC)))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// authMiddleware guards admin routes behind a valid admin JWT.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil || claims.Role != "admin" {
			metrics.IncAdminRequest(r.URL.Path, "unauthorized")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		metrics.IncAdminRequest(r.URL.Path, "authorized")
		next.ServeHTTP(w, r)
	})
}

// customersRouter dispatches /api/v1/customers by method.
func (s *Server) customersRouter() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			customersListHandler(s.issuanceUC)(w, r)
		case http.MethodPost:
			customersCreateHandler(s.issuanceUC)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
