package store

import (
	"errors"
	"fmt"

	"github.com/terra-clan/interview-assistant/internal/models"
)

var (
	ErrUnknownCandidate   = errors.New("candidate not in roster")
	ErrDuplicateCandidate = errors.New("candidate already in roster")
	ErrUnknownCommand     = errors.New("unknown command")
)

// Command is a mutation request handled by Reduce
type Command interface {
	Name() string
}

// AddCandidate appends a candidate to the roster and makes it current
type AddCandidate struct{ Candidate models.Candidate }

// UpdateCandidate replaces the roster entry with the same id, and the current reference if it matches
type UpdateCandidate struct{ Candidate models.Candidate }

// SaveCurrentProgress replaces the roster entry with the same id and always makes it current
type SaveCurrentProgress struct{ Candidate models.Candidate }

// CompleteCandidate marks a candidate completed and recomputes its score
type CompleteCandidate struct{ Candidate models.Candidate }

// ClearCurrent drops the current pointer without touching the roster
type ClearCurrent struct{}

func (AddCandidate) Name() string        { return "add_candidate" }
func (UpdateCandidate) Name() string     { return "update_candidate" }
func (SaveCurrentProgress) Name() string { return "save_current_progress" }
func (CompleteCandidate) Name() string   { return "complete_candidate" }
func (ClearCurrent) Name() string        { return "clear_current" }

// Reduce computes the next state for a command. It never mutates prev.
// A non-nil error reports a data-integrity problem; the returned state is still the one to keep.
func Reduce(prev State, cmd Command) (State, error) {
	next := prev.Clone()

	switch c := cmd.(type) {
	case AddCandidate:
		if next.indexOf(c.Candidate.ID) >= 0 {
			return prev, fmt.Errorf("%w: %s", ErrDuplicateCandidate, c.Candidate.ID)
		}
		added := c.Candidate.Clone()
		next.List = append(next.List, added)
		cur := added.Clone()
		next.Current = &cur
		return next, nil

	case UpdateCandidate:
		i := next.indexOf(c.Candidate.ID)
		if i < 0 {
			return prev, fmt.Errorf("%w: %s", ErrUnknownCandidate, c.Candidate.ID)
		}
		next.List[i] = c.Candidate.Clone()
		if next.Current != nil && next.Current.ID == c.Candidate.ID {
			cur := c.Candidate.Clone()
			next.Current = &cur
		}
		return next, nil

	case SaveCurrentProgress:
		cur := c.Candidate.Clone()
		next.Current = &cur
		i := next.indexOf(c.Candidate.ID)
		if i < 0 {
			return next, fmt.Errorf("%w: %s", ErrUnknownCandidate, c.Candidate.ID)
		}
		next.List[i] = c.Candidate.Clone()
		return next, nil

	case CompleteCandidate:
		i := next.indexOf(c.Candidate.ID)
		if i < 0 {
			return prev, fmt.Errorf("%w: %s", ErrUnknownCandidate, c.Candidate.ID)
		}
		done := c.Candidate.Clone()
		done.Completed = true
		done.Score = done.AnswerScoreTotal()
		next.List[i] = done
		if next.Current != nil && next.Current.ID == done.ID {
			cur := done.Clone()
			next.Current = &cur
		}
		return next, nil

	case ClearCurrent:
		next.Current = nil
		return next, nil

	default:
		return prev, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}
