package questions

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/interview-assistant/internal/models"
)

var ErrEmptyBank = errors.New("question bank is empty")

// Defaults is the built-in six-question set, two per difficulty
func Defaults() []models.Question {
	return []models.Question{
		{Level: models.LevelEasy, Time: 20, Question: "What is React?"},
		{Level: models.LevelEasy, Time: 20, Question: "Explain useState hook."},
		{Level: models.LevelMedium, Time: 60, Question: "Describe Redux and its benefits."},
		{Level: models.LevelMedium, Time: 60, Question: "Explain React lifecycle methods."},
		{Level: models.LevelHard, Time: 120, Question: "How would you optimize React performance?"},
		{Level: models.LevelHard, Time: 120, Question: "Explain context API vs Redux."},
	}
}

// Bank holds the ordered question set handed to every new candidate
type Bank struct {
	mu        sync.RWMutex
	questions []models.Question
	source    string
}

// NewBank creates a bank seeded with the default question set
func NewBank() *Bank {
	return &Bank{
		questions: Defaults(),
		source:    "defaults",
	}
}

// LoadFromFile replaces the bank contents with the questions in a YAML file.
// On error the current set is kept.
func (b *Bank) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := b.LoadYAML(data); err != nil {
		return err
	}

	b.mu.Lock()
	b.source = path
	b.mu.Unlock()

	slog.Info("question bank loaded", "file", path, "count", b.Len())
	return nil
}

// LoadYAML replaces the bank contents with questions parsed from YAML
func (b *Bank) LoadYAML(data []byte) error {
	var bf bankFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := Validate(bf.Questions); err != nil {
		return err
	}

	b.mu.Lock()
	b.questions = bf.Questions
	b.source = "yaml"
	b.mu.Unlock()
	return nil
}

// Validate checks an ordered question set
func Validate(qs []models.Question) error {
	if len(qs) == 0 {
		return ErrEmptyBank
	}
	for i, q := range qs {
		if !q.Level.Valid() {
			return fmt.Errorf("question %d: unknown level %q", i+1, q.Level)
		}
		if q.Time <= 0 {
			return fmt.Errorf("question %d: time must be positive", i+1)
		}
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d: text is required", i+1)
		}
	}
	return nil
}

// List returns a copy of the question set in interview order
func (b *Bank) List() []models.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]models.Question, len(b.questions))
	copy(result, b.questions)
	return result
}

// Len returns the number of questions
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}

// Source names where the current set came from
func (b *Bank) Source() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.source
}

// bankFile represents the YAML structure of a question file
type bankFile struct {
	Questions []models.Question `yaml:"questions"`
}
