package store

import (
	"encoding/json"
	"fmt"

	"github.com/terra-clan/interview-assistant/internal/models"
)

// State is the roster plus the candidate currently being interviewed
type State struct {
	List    []models.Candidate
	Current *models.Candidate
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	out := State{}
	if s.List != nil {
		out.List = make([]models.Candidate, len(s.List))
		for i, c := range s.List {
			out.List[i] = c.Clone()
		}
	}
	if s.Current != nil {
		cur := s.Current.Clone()
		out.Current = &cur
	}
	return out
}

// Find returns the roster entry with the given id
func (s State) Find(id string) (models.Candidate, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.List[i].Clone(), true
	}
	return models.Candidate{}, false
}

func (s State) indexOf(id string) int {
	for i := range s.List {
		if s.List[i].ID == id {
			return i
		}
	}
	return -1
}

// Snapshot is an immutable, versioned view of the store
type Snapshot struct {
	Version uint64
	State   State
}

// persistedState is the on-disk layout shared by every persister
type persistedState struct {
	Candidates persistedCandidates `json:"candidates"`
}

type persistedCandidates struct {
	List             []models.Candidate `json:"list"`
	CurrentCandidate *models.Candidate  `json:"currentCandidate"`
}

// Encode serializes the state into the persisted blob layout
func Encode(s State) ([]byte, error) {
	list := s.List
	if list == nil {
		list = []models.Candidate{}
	}
	data, err := json.Marshal(persistedState{
		Candidates: persistedCandidates{
			List:             list,
			CurrentCandidate: s.Current,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode validates a persisted blob against the state schema and decodes it
func Decode(blob []byte) (State, error) {
	if err := ValidateBlob(blob); err != nil {
		return State{}, err
	}

	var ps persistedState
	if err := json.Unmarshal(blob, &ps); err != nil {
		return State{}, fmt.Errorf("failed to decode state: %w", err)
	}

	return State{
		List:    ps.Candidates.List,
		Current: ps.Candidates.CurrentCandidate,
	}, nil
}
