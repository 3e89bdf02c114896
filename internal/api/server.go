package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/token-topup/topup-server/internal/config"
	"github.com/token-topup/topup-server/internal/models"
)

// Notifier receives the outcome of each completed report run.
// Notification is best-effort: implementations log their own failures
// and never fail the request.
type Notifier interface {
	ReportCompleted(ctx context.Context, runID uuid.UUID, report *models.Report)
}

// RESTServer represents the REST API server
type RESTServer struct {
	config    *config.Config
	notifiers []Notifier
	router    chi.Router
	server    *http.Server
}

// NewRESTServer creates a new REST API server
func NewRESTServer(cfg *config.Config, notifiers ...Notifier) *RESTServer {
	s := &RESTServer{
		config:    cfg,
		notifiers: notifiers,
		router:    chi.NewRouter(),
	}

	s.setupRoutes()

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all routes
func (s *RESTServer) setupRoutes() {
	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS: the browser client uploads files from a different origin
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})
}

// ListenAndServe starts the server
func (s *RESTServer) ListenAndServe(addr string) error {
	s.server.Addr = addr

	// Mount the static upload UI for non-API paths
	webDir := s.config.Web.StaticDir

	if _, err := os.Stat(webDir); os.IsNotExist(err) {
		log.Warn().Str("dir", webDir).Msg("Web directory not found, upload UI will not be available")
	} else {
		log.Info().Str("dir", webDir).Msg("Serving upload UI from directory")

		s.server.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				s.router.ServeHTTP(w, r)
				return
			}

			fs := http.FileServer(http.Dir(webDir))

			if r.URL.Path == "/" || (!strings.Contains(r.URL.Path, ".") && r.URL.Path != "/") {
				http.ServeFile(w, r, filepath.Join(webDir, "index.html"))
				return
			}

			fs.ServeHTTP(w, r)
		})
	}

	log.Info().Str("addr", addr).Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *RESTServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
