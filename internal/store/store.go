// Package store holds the candidate roster and the in-progress candidate.
//
// A single goroutine owns the state. Mutations are sent as Commands, reduced
// with Reduce, published as an immutable Snapshot and persisted as one blob.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/terra-clan/interview-assistant/internal/models"
)

var ErrClosed = errors.New("store is closed")

const persistTimeout = 5 * time.Second

type request struct {
	cmd   Command
	reply chan Snapshot
}

// Store is the owned, versioned candidate state container
type Store struct {
	persister Persister
	logger    *slog.Logger

	requests chan request
	snap     atomic.Pointer[Snapshot]

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// Open rehydrates the persisted state and starts the owner goroutine.
// A blob that fails schema validation is returned as *SchemaError and nothing is started.
func Open(ctx context.Context, persister Persister, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	blob, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted state: %w", err)
	}

	initial := State{}
	if len(blob) > 0 {
		initial, err = Decode(blob)
		if err != nil {
			return nil, err
		}
		logger.Info("state rehydrated",
			"candidates", len(initial.List),
			"has_current", initial.Current != nil,
		)
	}

	s := &Store{
		persister: persister,
		logger:    logger,
		requests:  make(chan request),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	s.snap.Store(&Snapshot{Version: 0, State: initial})

	go s.loop()

	return s, nil
}

func (s *Store) loop() {
	defer close(s.stopped)

	for {
		select {
		case <-s.done:
			return
		case req := <-s.requests:
			req.reply <- s.apply(req.cmd)
		}
	}
}

// apply reduces one command, publishes the result and persists it
func (s *Store) apply(cmd Command) Snapshot {
	prev := s.snap.Load()

	next, err := Reduce(prev.State, cmd)
	if err != nil {
		s.logger.Warn("store command rejected", "command", cmd.Name(), "error", err)
		if !appliedDespite(cmd, err) {
			return prev.clone()
		}
	}

	snap := &Snapshot{Version: prev.Version + 1, State: next}
	s.snap.Store(snap)
	s.persist(snap)

	return snap.clone()
}

// appliedDespite reports whether Reduce still produced a new state alongside err
func appliedDespite(cmd Command, err error) bool {
	_, save := cmd.(SaveCurrentProgress)
	return save && errors.Is(err, ErrUnknownCandidate)
}

func (s *Store) persist(snap *Snapshot) {
	blob, err := Encode(snap.State)
	if err != nil {
		s.logger.Error("failed to encode state", "error", err, "version", snap.Version)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.persister.Save(ctx, blob); err != nil {
		s.logger.Error("failed to persist state", "error", err, "version", snap.Version)
	}
}

// Dispatch applies a command and returns the resulting snapshot.
// After Close the current snapshot is returned unchanged.
func (s *Store) Dispatch(cmd Command) Snapshot {
	reply := make(chan Snapshot, 1)
	select {
	case s.requests <- request{cmd: cmd, reply: reply}:
	case <-s.done:
		s.logger.Warn("command dropped", "command", cmd.Name(), "error", ErrClosed)
		return s.Snapshot()
	}

	return <-reply
}

// Snapshot returns a deep copy of the latest published state
func (s *Store) Snapshot() Snapshot {
	return s.snap.Load().clone()
}

func (s *Snapshot) clone() Snapshot {
	return Snapshot{Version: s.Version, State: s.State.Clone()}
}

// AddCandidate appends a candidate and makes it current
func (s *Store) AddCandidate(c models.Candidate) Snapshot {
	return s.Dispatch(AddCandidate{Candidate: c})
}

// UpdateCandidate replaces the roster entry with the same id
func (s *Store) UpdateCandidate(c models.Candidate) Snapshot {
	return s.Dispatch(UpdateCandidate{Candidate: c})
}

// SaveCurrentProgress checkpoints the in-progress candidate
func (s *Store) SaveCurrentProgress(c models.Candidate) Snapshot {
	return s.Dispatch(SaveCurrentProgress{Candidate: c})
}

// CompleteCandidate marks the candidate completed with score = sum of answer scores
func (s *Store) CompleteCandidate(c models.Candidate) Snapshot {
	return s.Dispatch(CompleteCandidate{Candidate: c})
}

// ClearCurrent drops the current pointer
func (s *Store) ClearCurrent() Snapshot {
	return s.Dispatch(ClearCurrent{})
}

// Current returns the in-progress candidate, if any
func (s *Store) Current() (models.Candidate, bool) {
	snap := s.snap.Load()
	if snap.State.Current == nil {
		return models.Candidate{}, false
	}
	return snap.State.Current.Clone(), true
}

// Candidates returns the roster in insertion order
func (s *Store) Candidates() []models.Candidate {
	return s.snap.Load().State.Clone().List
}

// Get returns the roster entry with the given id
func (s *Store) Get(id string) (models.Candidate, bool) {
	return s.snap.Load().State.Find(id)
}

// Version returns the version of the latest snapshot
func (s *Store) Version() uint64 {
	return s.snap.Load().Version
}

// Ping checks the persistence backend
func (s *Store) Ping(ctx context.Context) error {
	return s.persister.Ping(ctx)
}

// Close stops the owner goroutine. The persister is left open.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		<-s.stopped
	})
	return nil
}
