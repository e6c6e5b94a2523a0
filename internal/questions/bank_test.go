package questions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/interview-assistant/internal/models"
)

func TestDefaults(t *testing.T) {
	qs := Defaults()
	require.Len(t, qs, 6)

	wantLevels := []models.Level{
		models.LevelEasy, models.LevelEasy,
		models.LevelMedium, models.LevelMedium,
		models.LevelHard, models.LevelHard,
	}
	wantTimes := []int{20, 20, 60, 60, 120, 120}
	for i, q := range qs {
		assert.Equal(t, wantLevels[i], q.Level)
		assert.Equal(t, wantTimes[i], q.Time)
		assert.NotEmpty(t, q.Question)
	}
	assert.NoError(t, Validate(qs))
}

func TestBank_ListReturnsCopy(t *testing.T) {
	b := NewBank()
	qs := b.List()
	qs[0].Question = "mutated"

	assert.Equal(t, "What is React?", b.List()[0].Question)
	assert.Equal(t, "defaults", b.Source())
}

func TestBank_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	content := `questions:
  - level: Easy
    time: 30
    question: What is a goroutine?
  - level: Hard
    time: 90
    question: Explain the Go memory model.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	b := NewBank()
	require.NoError(t, b.LoadFromFile(path))

	qs := b.List()
	require.Len(t, qs, 2)
	assert.Equal(t, models.Question{Level: models.LevelEasy, Time: 30, Question: "What is a goroutine?"}, qs[0])
	assert.Equal(t, path, b.Source())
}

func TestBank_LoadYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed", data: "questions: [unterminated"},
		{name: "empty", data: "questions: []"},
		{name: "unknown level", data: "questions:\n  - level: Expert\n    time: 10\n    question: q\n"},
		{name: "zero time", data: "questions:\n  - level: Easy\n    time: 0\n    question: q\n"},
		{name: "blank text", data: "questions:\n  - level: Easy\n    time: 10\n    question: '  '\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBank()
			assert.Error(t, b.LoadYAML([]byte(tt.data)))
			assert.Equal(t, 6, b.Len(), "failed load must keep the current set")
		})
	}
}

func TestBank_LoadFromFile_Missing(t *testing.T) {
	b := NewBank()
	assert.Error(t, b.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestValidate_Empty(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrEmptyBank)
}
