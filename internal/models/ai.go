package models

// ScoreRequest is the body of POST /ai/score
type ScoreRequest struct {
	CandidateID string `json:"candidateId,omitempty"`
	Question    string `json:"question,omitempty"`
	Answer      string `json:"answer"`
}

// ScoreResponse is returned by POST /ai/score
type ScoreResponse struct {
	Score int `json:"score"`
}

// FinalizeRequest is the body of POST /ai/finalize
type FinalizeRequest struct {
	CandidateID string `json:"candidateId"`
}

// FinalizeResponse is returned by POST /ai/finalize
type FinalizeResponse struct {
	Summary string `json:"summary"`
}

// ErrorResponse is the failure body of the /ai endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}
