// Package ai implements the placeholder question generation and scoring logic
// served by the ai-server command.
package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/terra-clan/interview-assistant/internal/models"
)

const (
	// AnsweredScore is awarded for any non-blank answer
	AnsweredScore = 10

	// FinalSummary is the summary returned for every finalized candidate
	FinalSummary = "Candidate answered all questions."
)

// QuestionSource supplies the ordered question set
type QuestionSource interface {
	List() []models.Question
}

// Service generates questions, scores answers and summarizes candidates
type Service struct {
	questions QuestionSource
	logger    *slog.Logger
}

// NewService creates a new placeholder service
func NewService(questions QuestionSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		questions: questions,
		logger:    logger,
	}
}

// GenerateQuestions returns the configured question set
func (s *Service) GenerateQuestions(ctx context.Context) ([]models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	qs := s.questions.List()
	s.logger.Debug("questions generated", "count", len(qs))
	return qs, nil
}

// Score awards AnsweredScore when the trimmed answer is non-empty, 0 otherwise
func (s *Service) Score(ctx context.Context, req models.ScoreRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	score := 0
	if strings.TrimSpace(req.Answer) != "" {
		score = AnsweredScore
	}
	s.logger.Debug("answer scored", "candidate_id", req.CandidateID, "score", score)
	return score, nil
}

// Finalize produces the candidate summary
func (s *Service) Finalize(ctx context.Context, candidateID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.logger.Debug("candidate finalized", "candidate_id", candidateID)
	return FinalSummary, nil
}
