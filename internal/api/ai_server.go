package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/interview-assistant/internal/models"
)

// QuestionService generates questions, scores answers and writes summaries
type QuestionService interface {
	GenerateQuestions(ctx context.Context) ([]models.Question, error)
	Score(ctx context.Context, req models.ScoreRequest) (int, error)
	Finalize(ctx context.Context, candidateID string) (string, error)
}

// AIServer exposes the question/scoring service over plain JSON
type AIServer struct {
	router  *chi.Mux
	service QuestionService
	apiKey  string
	logger  *slog.Logger
}

// NewAIServer creates the /ai HTTP surface. Every /ai route requires apiKey.
func NewAIServer(service QuestionService, apiKey string, logger *slog.Logger) *AIServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AIServer{
		service: service,
		apiKey:  strings.TrimSpace(apiKey),
		logger:  logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *AIServer) Router() http.Handler {
	return s.router
}

func (s *AIServer) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/ai", func(r chi.Router) {
		r.Use(apiKeyAuth(s.apiKey, s.logger))
		r.Use(middleware.RequestSize(maxJSONBody))
		r.Get("/generate-questions", s.handleGenerateQuestions)
		r.Post("/score", s.handleScore)
		r.Post("/finalize", s.handleFinalize)
	})

	s.router = r
}

func (s *AIServer) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := s.service.GenerateQuestions(r.Context())
	if err != nil {
		s.logger.Error("failed to generate questions", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate questions"})
		return
	}

	writeJSON(w, http.StatusOK, qs)
}

func (s *AIServer) handleScore(w http.ResponseWriter, r *http.Request) {
	var req models.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	score, err := s.service.Score(r.Context(), req)
	if err != nil {
		s.logger.Error("failed to score answer", "candidate_id", req.CandidateID, "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to score answer"})
		return
	}

	writeJSON(w, http.StatusOK, models.ScoreResponse{Score: score})
}

func (s *AIServer) handleFinalize(w http.ResponseWriter, r *http.Request) {
	var req models.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	summary, err := s.service.Finalize(r.Context(), req.CandidateID)
	if err != nil {
		s.logger.Error("failed to finalize interview", "candidate_id", req.CandidateID, "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to finalize interview"})
		return
	}

	writeJSON(w, http.StatusOK, models.FinalizeResponse{Summary: summary})
}

// writeJSON writes v without the application envelope
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
