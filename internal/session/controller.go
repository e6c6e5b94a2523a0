// Package session drives one candidate at a time through the interview:
// resume upload, contact completion, the timed question loop and finalization.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/terra-clan/interview-assistant/internal/extractor"
	"github.com/terra-clan/interview-assistant/internal/models"
	"github.com/terra-clan/interview-assistant/internal/questions"
	"github.com/terra-clan/interview-assistant/internal/store"
)

// QuestionService generates the question set, scores answers and summarizes candidates
type QuestionService interface {
	GenerateQuestions(ctx context.Context) ([]models.Question, error)
	Score(ctx context.Context, req models.ScoreRequest) (int, error)
	Finalize(ctx context.Context, candidateID string) (string, error)
}

// Extractor recovers contact fields from a resume
type Extractor interface {
	Extract(ctx context.Context, doc extractor.Document) (models.Profile, error)
}

// Store is the candidate store the controller checkpoints into
type Store interface {
	AddCandidate(c models.Candidate) store.Snapshot
	SaveCurrentProgress(c models.Candidate) store.Snapshot
	CompleteCandidate(c models.Candidate) store.Snapshot
	ClearCurrent() store.Snapshot
	Current() (models.Candidate, bool)
}

// Timer is the per-question countdown
type Timer interface {
	Start(total int, onTick func(remaining int), onExpire func())
	Cancel()
	Remaining() int
}

// Controller is the interview session state machine.
// Network calls run outside mu; run invalidates callbacks from superseded sessions.
type Controller struct {
	questions QuestionService
	extractor Extractor
	store     Store
	timer     Timer
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	step           models.Step
	candidate      *models.Candidate
	draft          string
	awaitingFinish bool
	notice         string
	busy           bool
	run            uint64
	scoring        *sync.WaitGroup

	subsMu  sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// New creates a controller and resumes any unfinished interview held by the store
func New(qs QuestionService, ex Extractor, st Store, timer Timer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		questions: qs,
		extractor: ex,
		store:     st,
		timer:     timer,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		step:      models.StepUpload,
		scoring:   &sync.WaitGroup{},
		subs:      make(map[int]chan Event),
	}

	c.mu.Lock()
	c.resumeLocked()
	c.mu.Unlock()

	return c
}

// resumeLocked rebuilds the session from the persisted current candidate
func (c *Controller) resumeLocked() {
	cur, ok := c.store.Current()
	if !ok {
		return
	}

	if cur.Completed {
		c.candidate = &cur
		c.step = models.StepCompleted
		c.logger.Info("resumed completed interview", "candidate_id", cur.ID)
		return
	}

	if len(cur.Questions) == 0 {
		c.logger.Warn("persisted candidate has no questions, starting over", "candidate_id", cur.ID)
		c.store.ClearCurrent()
		return
	}

	c.candidate = &cur
	c.notice = models.WelcomeBackNotice

	if len(cur.MissingFields()) > 0 {
		c.step = models.StepFillMissing
		c.logger.Info("resumed interview", "candidate_id", cur.ID, "step", c.step)
		return
	}

	c.step = models.StepInterviewing
	if cur.AllAnswered() {
		c.awaitingFinish = true
	} else {
		c.startQuestionLocked(cur.NextQuestionIndex())
	}
	c.logger.Info("resumed interview",
		"candidate_id", cur.ID,
		"step", c.step,
		"question_index", cur.NextQuestionIndex(),
		"awaiting_finish", c.awaitingFinish,
	)
}

// Upload extracts contact fields from a resume, fetches the question set and creates the candidate
func (c *Controller) Upload(ctx context.Context, doc extractor.Document) (models.SessionState, error) {
	if len(doc.Data) == 0 {
		return c.State(), ErrEmptyFile
	}

	run, err := c.acquire(models.StepUpload)
	if err != nil {
		return c.State(), err
	}
	defer c.release(run)

	profile, err := c.extractor.Extract(ctx, doc)
	if err != nil {
		c.logger.Warn("resume extraction failed", "filename", doc.Filename, "error", err)
		if errors.Is(err, extractor.ErrEmptyFile) {
			return c.State(), ErrEmptyFile
		}
		return c.State(), fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	qs, err := c.questions.GenerateQuestions(ctx)
	if err == nil {
		err = questions.Validate(qs)
	}
	if err != nil {
		c.logger.Warn("question fetch failed", "error", err)
		return c.State(), fmt.Errorf("%w: %v", ErrQuestionsUnavailable, err)
	}

	profile = profile.Trimmed()
	cand := models.Candidate{
		ID:        models.NewCandidateID(),
		Name:      profile.Name,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Questions: qs,
		Answers:   []models.Answer{},
	}

	c.mu.Lock()
	if c.run != run {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrInvalidStep
	}

	c.store.AddCandidate(cand.Clone())
	c.candidate = &cand

	if missing := cand.MissingFields(); len(missing) > 0 {
		c.step = models.StepFillMissing
		c.logger.Info("candidate created, fields missing", "candidate_id", cand.ID, "missing", missing)
	} else {
		c.step = models.StepInterviewing
		c.startQuestionLocked(0)
		c.logger.Info("candidate created, interview started", "candidate_id", cand.ID, "questions", len(qs))
	}
	view := c.viewLocked()
	c.mu.Unlock()

	c.publishState(view)
	return view, nil
}

// FillMissing merges the supplied contact fields and starts the interview once all are present
func (c *Controller) FillMissing(p models.Profile) (models.SessionState, error) {
	c.mu.Lock()
	if c.step != models.StepFillMissing || c.candidate == nil {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrInvalidStep
	}

	// Only the fields typed here are checked; malformed ones are not merged
	in := p.Trimmed()
	invalid := in.InvalidFields()
	cand := c.candidate
	if in.Name != "" && !slices.Contains(invalid, "name") {
		cand.Name = in.Name
	}
	if in.Email != "" && !slices.Contains(invalid, "email") {
		cand.Email = in.Email
	}
	if in.Phone != "" && !slices.Contains(invalid, "phone") {
		cand.Phone = in.Phone
	}
	c.store.SaveCurrentProgress(cand.Clone())

	if len(invalid) > 0 {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(invalid, ", "))
	}

	if missing := cand.MissingFields(); len(missing) > 0 {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, &MissingFieldsError{Fields: missing}
	}

	c.step = models.StepInterviewing
	if cand.AllAnswered() {
		c.awaitingFinish = true
	} else {
		c.startQuestionLocked(cand.NextQuestionIndex())
	}
	c.logger.Info("contact details complete, interview started",
		"candidate_id", cand.ID,
		"question_index", cand.NextQuestionIndex(),
	)
	view := c.viewLocked()
	c.mu.Unlock()

	c.publishState(view)
	return view, nil
}

// SetDraft replaces the transient answer text for the current question
func (c *Controller) SetDraft(text string) (models.SessionState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != models.StepInterviewing || c.awaitingFinish {
		return c.viewLocked(), ErrInvalidStep
	}
	c.draft = text
	return c.viewLocked(), nil
}

// Submit records the draft as the answer to the current question
func (c *Controller) Submit(ctx context.Context) (models.SessionState, error) {
	return c.submit(ctx, false, 0, 0)
}

// autoSubmit is the countdown expiry path for question idx of session run
func (c *Controller) autoSubmit(run uint64, idx int) {
	c.logger.Info("time is up, submitting answer", "question_index", idx)
	if _, err := c.submit(c.ctx, true, run, idx); err != nil && !errors.Is(err, ErrInvalidStep) {
		c.logger.Warn("automatic submit failed", "error", err)
	}
}

func (c *Controller) submit(ctx context.Context, auto bool, expectRun uint64, expectIdx int) (models.SessionState, error) {
	c.mu.Lock()
	if c.step != models.StepInterviewing || c.candidate == nil || c.awaitingFinish {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrInvalidStep
	}
	cand := c.candidate
	idx := cand.NextQuestionIndex()
	if auto && (c.run != expectRun || idx != expectIdx) {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrInvalidStep
	}
	if c.busy {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrBusy
	}

	answer := models.Answer{
		Question: cand.Questions[idx].Question,
		Answer:   c.draft,
	}
	cand.Answers = append(cand.Answers, answer)
	c.draft = ""
	c.store.SaveCurrentProgress(cand.Clone())

	run := c.run
	scoring := c.scoring
	candidateID := cand.ID
	c.logger.Info("answer recorded",
		"candidate_id", candidateID,
		"question_index", idx,
		"automatic", auto,
	)

	if idx < len(cand.Questions)-1 {
		c.startQuestionLocked(idx + 1)
		scoring.Add(1)
		go func() {
			defer scoring.Done()
			score := c.scoreAnswer(c.ctx, candidateID, answer)
			c.applyScore(run, candidateID, idx, score)
		}()

		view := c.viewLocked()
		c.mu.Unlock()
		c.publishState(view)
		return view, nil
	}

	// last question: score it, wait for earlier scores, then finalize
	c.timer.Cancel()
	c.awaitingFinish = true
	c.busy = true
	view := c.viewLocked()
	c.mu.Unlock()
	c.publishState(view)

	score := c.scoreAnswer(ctx, candidateID, answer)
	c.applyScore(run, candidateID, idx, score)
	scoring.Wait()

	return c.finalize(ctx, run)
}

// scoreAnswer returns the service score, or 0 when scoring fails
func (c *Controller) scoreAnswer(ctx context.Context, candidateID string, a models.Answer) int {
	score, err := c.questions.Score(ctx, models.ScoreRequest{
		CandidateID: candidateID,
		Question:    a.Question,
		Answer:      a.Answer,
	})
	if err != nil {
		c.logger.Warn("scoring failed, recording 0", "candidate_id", candidateID, "error", err)
		return 0
	}
	return score
}

// applyScore attaches a score to answer idx if the session is still the one that produced it
func (c *Controller) applyScore(run uint64, candidateID string, idx, score int) {
	c.mu.Lock()
	if c.run != run || c.candidate == nil || c.candidate.ID != candidateID ||
		idx >= len(c.candidate.Answers) || c.candidate.Completed {
		c.mu.Unlock()
		c.logger.Debug("stale score ignored", "candidate_id", candidateID, "question_index", idx)
		return
	}

	c.candidate.Answers[idx].Score = score
	c.store.SaveCurrentProgress(c.candidate.Clone())
	view := c.viewLocked()
	c.mu.Unlock()

	c.logger.Debug("answer scored", "candidate_id", candidateID, "question_index", idx, "score", score)
	c.publishState(view)
}

// Finish retries finalization after a failed attempt
func (c *Controller) Finish(ctx context.Context) (models.SessionState, error) {
	c.mu.Lock()
	if c.step != models.StepInterviewing || !c.awaitingFinish {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrInvalidStep
	}
	if c.busy {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrBusy
	}
	c.busy = true
	run := c.run
	c.mu.Unlock()

	return c.finalize(ctx, run)
}

// finalize requests the summary and completes the candidate. Caller holds the busy flag for run.
func (c *Controller) finalize(ctx context.Context, run uint64) (models.SessionState, error) {
	c.mu.Lock()
	if c.run != run || c.candidate == nil {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrInvalidStep
	}
	candidateID := c.candidate.ID
	c.mu.Unlock()

	summary, err := c.questions.Finalize(ctx, candidateID)

	c.mu.Lock()
	if c.run != run || c.candidate == nil || c.candidate.ID != candidateID {
		view := c.viewLocked()
		c.mu.Unlock()
		return view, ErrInvalidStep
	}
	c.busy = false

	if err != nil {
		c.awaitingFinish = true
		view := c.viewLocked()
		c.mu.Unlock()
		c.logger.Warn("finalization failed", "candidate_id", candidateID, "error", err)
		c.publishState(view)
		return view, fmt.Errorf("%w: %v", ErrFinalizeFailed, err)
	}

	done := c.candidate.Clone()
	done.Summary = summary
	snap := c.store.CompleteCandidate(done)
	if completed, ok := snap.State.Find(candidateID); ok {
		done = completed
	} else {
		done.Completed = true
		done.Score = done.AnswerScoreTotal()
	}
	c.candidate = &done
	c.step = models.StepCompleted
	c.awaitingFinish = false
	view := c.viewLocked()
	c.mu.Unlock()

	c.logger.Info("interview completed",
		"candidate_id", candidateID,
		"score", done.Score,
		"answers", len(done.Answers),
	)
	c.publishState(view)
	return view, nil
}

// Reset abandons the current session and returns to Upload. The roster is untouched.
func (c *Controller) Reset() models.SessionState {
	c.mu.Lock()
	c.timer.Cancel()
	c.run++
	c.scoring = &sync.WaitGroup{}
	c.busy = false
	c.draft = ""
	c.awaitingFinish = false
	c.notice = ""
	prev := c.candidate
	c.candidate = nil
	c.step = models.StepUpload
	c.store.ClearCurrent()
	view := c.viewLocked()
	c.mu.Unlock()

	if prev != nil {
		c.logger.Info("session reset", "candidate_id", prev.ID)
	}
	c.publishState(view)
	return view
}

// State returns the current session view. The welcome-back notice is included once.
func (c *Controller) State() models.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := c.viewLocked()
	if c.notice != "" {
		view.Notice = c.notice
		c.notice = ""
	}
	return view
}

// Close stops the countdown and ends every subscription
func (c *Controller) Close() {
	c.mu.Lock()
	c.timer.Cancel()
	c.run++
	c.mu.Unlock()

	c.cancel()
	c.closeSubscribers()
}

// acquire marks the controller busy for an operation allowed only in step
func (c *Controller) acquire(step models.Step) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != step {
		return 0, ErrInvalidStep
	}
	if c.busy {
		return 0, ErrBusy
	}
	c.busy = true
	return c.run, nil
}

func (c *Controller) release(run uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == run {
		c.busy = false
	}
}

// startQuestionLocked restarts the countdown for question idx
func (c *Controller) startQuestionLocked(idx int) {
	run := c.run
	total := c.candidate.Questions[idx].Time
	c.timer.Start(total,
		func(remaining int) {
			c.mu.Lock()
			stale := c.run != run
			c.mu.Unlock()
			if !stale {
				c.publish(Event{Type: EventTick, Remaining: remaining})
			}
		},
		func() { c.autoSubmit(run, idx) },
	)
}

func (c *Controller) viewLocked() models.SessionState {
	view := models.SessionState{
		Step:           c.step,
		DraftAnswer:    c.draft,
		AwaitingFinish: c.awaitingFinish,
	}
	if c.candidate == nil {
		return view
	}

	cand := c.candidate.Clone()
	view.Candidate = &cand
	view.TotalQuestions = len(cand.Questions)

	switch c.step {
	case models.StepInterviewing:
		idx := cand.NextQuestionIndex()
		view.CurrentQuestionIndex = idx
		if idx < len(cand.Questions) {
			q := cand.Questions[idx]
			view.CurrentQuestion = &q
			if !c.awaitingFinish {
				view.RemainingSeconds = c.timer.Remaining()
			}
		}
	case models.StepCompleted:
		view.CurrentQuestionIndex = len(cand.Questions)
	}
	return view
}
