package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/interview-assistant/internal/models"
)

func candidate(id string) models.Candidate {
	return models.Candidate{
		ID:    id,
		Name:  "Ada",
		Email: "ada@example.com",
		Phone: "1234567890",
		Questions: []models.Question{
			{Level: models.LevelEasy, Time: 20, Question: "q1"},
			{Level: models.LevelEasy, Time: 20, Question: "q2"},
		},
	}
}

func TestReduce_AddCandidate(t *testing.T) {
	next, err := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})
	require.NoError(t, err)

	require.Len(t, next.List, 1)
	require.NotNil(t, next.Current)
	assert.Equal(t, "c1", next.Current.ID)
}

func TestReduce_AddDuplicateIsRejected(t *testing.T) {
	state, err := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})
	require.NoError(t, err)

	next, err := Reduce(state, AddCandidate{Candidate: candidate("c1")})
	assert.ErrorIs(t, err, ErrDuplicateCandidate)
	assert.Equal(t, state, next)
}

func TestReduce_UpdateIsIdempotent(t *testing.T) {
	state, err := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})
	require.NoError(t, err)

	updated := candidate("c1")
	updated.Answers = []models.Answer{{Question: "q1", Answer: "a", Score: 10}}

	once, err := Reduce(state, UpdateCandidate{Candidate: updated})
	require.NoError(t, err)
	twice, err := Reduce(once, UpdateCandidate{Candidate: updated})
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, updated, once.List[0])
	assert.Equal(t, updated, *once.Current)
}

func TestReduce_UpdateUnknownLeavesState(t *testing.T) {
	state, err := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})
	require.NoError(t, err)

	next, err := Reduce(state, UpdateCandidate{Candidate: candidate("missing")})
	assert.ErrorIs(t, err, ErrUnknownCandidate)
	assert.Equal(t, state, next)
}

func TestReduce_UpdateDoesNotTouchOtherCurrent(t *testing.T) {
	state, _ := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})
	state, _ = Reduce(state, AddCandidate{Candidate: candidate("c2")})

	renamed := candidate("c1")
	renamed.Name = "Grace"
	next, err := Reduce(state, UpdateCandidate{Candidate: renamed})
	require.NoError(t, err)

	assert.Equal(t, "Grace", next.List[0].Name)
	assert.Equal(t, "c2", next.Current.ID)
}

func TestReduce_SaveCurrentProgressAlwaysSetsCurrent(t *testing.T) {
	state, _ := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})
	state, _ = Reduce(state, ClearCurrent{})
	require.Nil(t, state.Current)

	next, err := Reduce(state, SaveCurrentProgress{Candidate: candidate("c1")})
	require.NoError(t, err)
	require.NotNil(t, next.Current)
	assert.Equal(t, "c1", next.Current.ID)

	orphan, err := Reduce(state, SaveCurrentProgress{Candidate: candidate("ghost")})
	assert.ErrorIs(t, err, ErrUnknownCandidate)
	require.NotNil(t, orphan.Current)
	assert.Equal(t, "ghost", orphan.Current.ID)
	assert.Len(t, orphan.List, 1)
}

func TestReduce_CompleteCandidateSumsScores(t *testing.T) {
	state, _ := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})

	done := candidate("c1")
	done.Score = 999
	done.Summary = "Candidate answered all questions."
	done.Answers = []models.Answer{
		{Question: "q1", Answer: "a", Score: 10},
		{Question: "q2", Answer: "", Score: 0},
	}

	next, err := Reduce(state, CompleteCandidate{Candidate: done})
	require.NoError(t, err)

	assert.True(t, next.List[0].Completed)
	assert.Equal(t, 10, next.List[0].Score)
	assert.Equal(t, next.List[0].AnswerScoreTotal(), next.List[0].Score)
	assert.Equal(t, next.List[0], *next.Current)
}

func TestReduce_ClearCurrentKeepsRoster(t *testing.T) {
	state, _ := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})

	next, err := Reduce(state, ClearCurrent{})
	require.NoError(t, err)
	assert.Nil(t, next.Current)
	assert.Len(t, next.List, 1)
}

func TestReduce_DoesNotMutatePrevious(t *testing.T) {
	state, _ := Reduce(State{}, AddCandidate{Candidate: candidate("c1")})
	before := state.Clone()

	updated := candidate("c1")
	updated.Answers = []models.Answer{{Question: "q1", Answer: "a"}}
	_, err := Reduce(state, UpdateCandidate{Candidate: updated})
	require.NoError(t, err)

	assert.Equal(t, before, state)
}
