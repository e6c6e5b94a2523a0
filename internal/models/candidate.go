package models

import (
	"strings"

	"github.com/google/uuid"
)

// Level represents the difficulty of an interview question
type Level string

const (
	LevelEasy   Level = "Easy"
	LevelMedium Level = "Medium"
	LevelHard   Level = "Hard"
)

// Valid returns true if the level is one of the known difficulties
func (l Level) Valid() bool {
	return l == LevelEasy || l == LevelMedium || l == LevelHard
}

// Question is a single timed interview question.
// Ordering within a question set defines the interview sequence.
type Question struct {
	Level    Level  `yaml:"level" json:"level"`
	Time     int    `yaml:"time" json:"time"` // seconds
	Question string `yaml:"question" json:"question"`
}

// Answer is a recorded response to a question
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
}

// Candidate is a person going through the interview flow.
// ID is immutable once assigned; len(Answers) never exceeds len(Questions).
type Candidate struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Questions []Question `json:"questions"`
	Answers   []Answer   `json:"answers"`
	Score     int        `json:"score"`
	Summary   string     `json:"summary,omitempty"`
	Completed bool       `json:"completed"`
}

// NewCandidateID returns a collision-resistant candidate identifier
func NewCandidateID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the candidate
func (c Candidate) Clone() Candidate {
	out := c
	if c.Questions != nil {
		out.Questions = make([]Question, len(c.Questions))
		copy(out.Questions, c.Questions)
	}
	if c.Answers != nil {
		out.Answers = make([]Answer, len(c.Answers))
		copy(out.Answers, c.Answers)
	}
	return out
}

// Profile returns the contact fields of the candidate
func (c Candidate) Profile() Profile {
	return Profile{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// MissingFields returns the names of blank contact fields in name, email, phone order
func (c Candidate) MissingFields() []string {
	return c.Profile().MissingFields()
}

// AnswerScoreTotal sums the per-answer scores
func (c Candidate) AnswerScoreTotal() int {
	total := 0
	for _, a := range c.Answers {
		total += a.Score
	}
	return total
}

// NextQuestionIndex is the index of the first unanswered question
func (c Candidate) NextQuestionIndex() int {
	return len(c.Answers)
}

// AllAnswered returns true once every question has an answer
func (c Candidate) AllAnswered() bool {
	return len(c.Questions) > 0 && len(c.Answers) >= len(c.Questions)
}

// Profile holds the contact fields recovered from a resume or entered by the candidate
type Profile struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

// MissingFields returns the names of blank fields in name, email, phone order
func (p Profile) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(p.Phone) == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// Trimmed returns the profile with surrounding whitespace removed from every field
func (p Profile) Trimmed() Profile {
	return Profile{
		Name:  strings.TrimSpace(p.Name),
		Email: strings.TrimSpace(p.Email),
		Phone: strings.TrimSpace(p.Phone),
	}
}
