// Package dashboard builds the read-only interviewer views over the candidate roster.
package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/terra-clan/interview-assistant/internal/models"
)

const (
	NoAnswer     = "No Answer"
	NoAnswersYet = "No answers submitted"
)

// Row is one line of the ranked roster
type Row struct {
	Rank      int    `json:"rank"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Score     int    `json:"score"`
	Answered  int    `json:"answered"`
	Total     int    `json:"total"`
	Completed bool   `json:"completed"`
}

// Rank orders candidates by score, highest first. Equal scores keep roster order.
func Rank(candidates []models.Candidate) []Row {
	sorted := make([]models.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	rows := make([]Row, len(sorted))
	for i, c := range sorted {
		rows[i] = Row{
			Rank:      i + 1,
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Score:     c.Score,
			Answered:  len(c.Answers),
			Total:     len(c.Questions),
			Completed: c.Completed,
		}
	}
	return rows
}

// Page returns rows[offset:offset+limit], clamped to the slice
func Page(rows []Row, limit, offset int) []Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []Row{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

// Item is one question/answer pair of the detail view
type Item struct {
	Number   int          `json:"number"`
	Level    models.Level `json:"level,omitempty"`
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Answered bool         `json:"answered"`
	Score    int          `json:"score"`
}

// Detail is the per-candidate view opened from the roster
type Detail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Score       int    `json:"score"`
	Completed   bool   `json:"completed"`
	Items       []Item `json:"items"`
	Summary     string `json:"summary,omitempty"`
	SummaryLine string `json:"summary_line"`
}

// BuildDetail lists every recorded answer with its question
func BuildDetail(c models.Candidate) Detail {
	d := Detail{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Score:       c.Score,
		Completed:   c.Completed,
		Items:       make([]Item, 0, len(c.Answers)),
		Summary:     c.Summary,
		SummaryLine: SummaryLine(len(c.Answers)),
	}

	for i, a := range c.Answers {
		item := Item{
			Number:   i + 1,
			Question: a.Question,
			Answer:   a.Answer,
			Answered: strings.TrimSpace(a.Answer) != "",
			Score:    a.Score,
		}
		if i < len(c.Questions) {
			item.Level = c.Questions[i].Level
		}
		if !item.Answered {
			item.Answer = NoAnswer
		}
		d.Items = append(d.Items, item)
	}
	return d
}

// SummaryLine is the computed one-line summary shown under the answers
func SummaryLine(answered int) string {
	noun := "question"
	if answered > 1 {
		noun = "questions"
	}
	return fmt.Sprintf("This candidate answered %d %s.", answered, noun)
}
