package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/interview-assistant/internal/config"
	"github.com/terra-clan/interview-assistant/internal/extractor"
	"github.com/terra-clan/interview-assistant/internal/models"
	"github.com/terra-clan/interview-assistant/internal/services"
	"github.com/terra-clan/interview-assistant/internal/session"
)

// Interview is the candidate-facing session surface
type Interview interface {
	State() models.SessionState
	Upload(ctx context.Context, doc extractor.Document) (models.SessionState, error)
	FillMissing(p models.Profile) (models.SessionState, error)
	SetDraft(text string) (models.SessionState, error)
	Submit(ctx context.Context) (models.SessionState, error)
	Finish(ctx context.Context) (models.SessionState, error)
	Reset() models.SessionState
	Subscribe() (<-chan session.Event, func())
}

// Roster is the read-only candidate list behind the dashboard
type Roster interface {
	Candidates() []models.Candidate
	Get(id string) (models.Candidate, bool)
}

// Server represents the HTTP API server
type Server struct {
	config    config.ServerConfig
	router    *chi.Mux
	interview Interview
	roster    Roster
	registry  *services.Registry
	logger    *slog.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	interview Interview,
	roster Roster,
	registry *services.Registry,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:    cfg,
		interview: interview,
		roster:    roster,
		registry:  registry,
		logger:    logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// The event stream is long-lived and stays outside the request timeout
	r.Get("/api/v1/interview/events", s.handleEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/interview", func(r chi.Router) {
				r.Get("/", s.handleGetInterview)
				r.Post("/resume", s.handleUploadResume)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequestSize(maxJSONBody))
					r.Put("/profile", s.handleFillProfile)
					r.Put("/draft", s.handleSetDraft)
					r.Post("/answer", s.handleSubmitAnswer)
				})
				r.Post("/finish", s.handleFinish)
				r.Post("/reset", s.handleReset)
			})

			r.Route("/candidates", func(r chi.Router) {
				r.Get("/", s.handleListCandidates)
				r.Get("/export.xlsx", s.handleExportCandidates)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetCandidate)
					r.Get("/report.pdf", s.handleCandidateReport)
				})
			})
		})
	})

	s.router = r
}
