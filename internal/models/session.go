package models

// Step represents the current stage of an interview session
type Step string

const (
	StepUpload       Step = "upload"        // Waiting for a resume
	StepFillMissing  Step = "fill_missing"  // Resume parsed, contact fields incomplete
	StepInterviewing Step = "interviewing"  // Question loop, timer ticking
	StepCompleted    Step = "completed"     // Finalized, read-only summary
)

// IsTerminal returns true if the step is the final state of a session
func (s Step) IsTerminal() bool {
	return s == StepCompleted
}

// WelcomeBackNotice is shown once when an unfinished interview is resumed
const WelcomeBackNotice = "You have an unfinished interview. Resuming..."

// SessionState is a read-only view of the active interview session
type SessionState struct {
	Step                 Step       `json:"step"`
	Candidate            *Candidate `json:"candidate,omitempty"`
	CurrentQuestionIndex int        `json:"current_question_index"`
	CurrentQuestion      *Question  `json:"current_question,omitempty"`
	TotalQuestions       int        `json:"total_questions"`
	RemainingSeconds     int        `json:"remaining_seconds"`
	DraftAnswer          string     `json:"draft_answer"`
	AwaitingFinish       bool       `json:"awaiting_finish,omitempty"`
	Notice               string     `json:"notice,omitempty"`
}

// ProfileRequest represents a request to fill in missing contact fields
type ProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DraftRequest represents a request to update the draft answer
type DraftRequest struct {
	Answer string `json:"answer"`
}
