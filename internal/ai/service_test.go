package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/interview-assistant/internal/models"
	"github.com/terra-clan/interview-assistant/internal/questions"
)

func TestService_GenerateQuestions(t *testing.T) {
	svc := NewService(questions.NewBank(), nil)

	qs, err := svc.GenerateQuestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, questions.Defaults(), qs)
}

func TestService_Score(t *testing.T) {
	svc := NewService(questions.NewBank(), nil)

	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{name: "answered", answer: "A UI library", want: 10},
		{name: "empty", answer: "", want: 0},
		{name: "whitespace only", answer: " \n\t ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Score(context.Background(), models.ScoreRequest{Answer: tt.answer})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Finalize(t *testing.T) {
	svc := NewService(questions.NewBank(), nil)

	summary, err := svc.Finalize(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Candidate answered all questions.", summary)
}

func TestService_CancelledContext(t *testing.T) {
	svc := NewService(questions.NewBank(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateQuestions(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.Score(ctx, models.ScoreRequest{Answer: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
