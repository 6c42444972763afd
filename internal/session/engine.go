// Package session owns the quiz lifecycle: plan creation and selection,
// starting and resuming quiz attempts, the resumable grading loop, and
// plan deletion with its cascade. All state lives in the store's KV keys;
// the Engine reloads from storage on every operation so persisted data
// stays the single source of truth.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radarsat1/re-up/internal/store"
	"github.com/radarsat1/re-up/internal/study"
)

var (
	ErrPlanNotFound    = errors.New("study plan not found")
	ErrSectionNotFound = errors.New("section not found in plan")
	ErrSessionNotFound = errors.New("session not found")

	// ErrAnswerCountMismatch rejects an answers slice whose length differs
	// from the session's question count. Answers and questions are parallel
	// arrays; a short slice would panic the grading loop.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")

	// ErrGradingInFlight rejects a FinishQuiz call while another grading
	// loop for the same session is still running.
	ErrGradingInFlight = errors.New("grading already in progress for this session")
)

// Generator produces plans, questions and grades. *studygen.Service is
// the production implementation.
type Generator interface {
	GeneratePlan(ctx context.Context, topic, planContext string) (*study.StudyPlan, error)
	GenerateQuestions(ctx context.Context, sectionTitle, topic string) ([]study.Question, error)
	GradeAnswer(ctx context.Context, question, userAnswer string) (*study.GradedAnswer, error)
}

// ProgressFunc reports grading progress as (current, total) after each
// graded answer. It is display-only state.
type ProgressFunc func(current, total int)

// Engine drives all session and plan operations over a KV store and a
// Generator.
type Engine struct {
	kv  store.KV
	gen Generator

	now   func() time.Time
	newID func() string

	mu      sync.Mutex
	grading map[string]bool
}

// NewEngine creates an Engine over the given store and generator.
func NewEngine(kv store.KV, gen Generator) *Engine {
	return &Engine{
		kv:      kv,
		gen:     gen,
		now:     time.Now,
		newID:   uuid.NewString,
		grading: make(map[string]bool),
	}
}

// Plans returns all stored study plans.
func (e *Engine) Plans() []study.StudyPlan {
	return store.Load(e.kv, store.KeyStudyPlans, []study.StudyPlan{})
}

// History returns all stored session records, newest first.
func (e *Engine) History() []study.SessionRecord {
	return store.Load(e.kv, store.KeySessionHistory, []study.SessionRecord{})
}

// ActivePlanID returns the persisted active plan id, or "" when none.
func (e *Engine) ActivePlanID() string {
	return store.Load(e.kv, store.KeyActivePlanID, "")
}

// ActiveSessionID returns the persisted active session id, or "" when none.
func (e *Engine) ActiveSessionID() string {
	return store.Load(e.kv, store.KeyActiveSessionID, "")
}

// Plan returns the stored plan with the given id.
func (e *Engine) Plan(planID string) (*study.StudyPlan, error) {
	for _, p := range e.Plans() {
		if p.ID == planID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
}

// Session returns the stored session record with the given id.
func (e *Engine) Session(sessionID string) (*study.SessionRecord, error) {
	for _, r := range e.History() {
		if r.ID == sessionID {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
}

// CreatePlan generates a new study plan for topic, stores it and makes it
// the active plan. The optional planContext steers generation.
func (e *Engine) CreatePlan(ctx context.Context, topic, planContext string) (*study.StudyPlan, error) {
	plan, err := e.gen.GeneratePlan(ctx, topic, planContext)
	if err != nil {
		return nil, err
	}
	plan.ID = e.newID()

	plans := append(e.Plans(), *plan)
	store.Save(e.kv, store.KeyStudyPlans, plans)
	store.Save(e.kv, store.KeyActivePlanID, plan.ID)
	return plan, nil
}

// SelectPlan makes the given plan active and clears any active session.
func (e *Engine) SelectPlan(planID string) error {
	if _, err := e.Plan(planID); err != nil {
		return err
	}
	store.Save(e.kv, store.KeyActivePlanID, planID)
	store.Save(e.kv, store.KeyActiveSessionID, "")
	return nil
}

// ClearActivePlan clears the active plan and session.
func (e *Engine) ClearActivePlan() {
	store.Save(e.kv, store.KeyActivePlanID, "")
	store.Save(e.kv, store.KeyActiveSessionID, "")
}

// StartQuiz begins or resumes a quiz attempt for one plan section.
//
// An existing in-progress session for the same plan and section is resumed
// as-is unless forceNew is set. Otherwise a new session is created: with
// forceNew, or with no prior attempt for the section, fresh questions are
// generated; else the questions of the most recent prior attempt are
// reused. Generation failure creates no record and changes no state.
func (e *Engine) StartQuiz(ctx context.Context, planID, sectionTitle string, forceNew bool) (*study.SessionRecord, error) {
	plan, err := e.Plan(planID)
	if err != nil {
		return nil, err
	}
	section, ok := plan.SectionByTitle(sectionTitle)
	if !ok {
		return nil, fmt.Errorf("%w: %q in plan %s", ErrSectionNotFound, sectionTitle, planID)
	}

	history := e.History()

	if !forceNew {
		for i := range history {
			r := &history[i]
			if r.PlanID == planID && r.Section.Title == sectionTitle && r.Status == study.StatusInProgress {
				store.Save(e.kv, store.KeyActivePlanID, planID)
				store.Save(e.kv, store.KeyActiveSessionID, r.ID)
				rec := *r
				return &rec, nil
			}
		}
	}

	var questions []study.Question
	if prior := latestForSection(history, planID, sectionTitle); prior != nil && !forceNew {
		questions = prior.Questions
	} else {
		questions, err = e.gen.GenerateQuestions(ctx, sectionTitle, plan.Topic)
		if err != nil {
			return nil, err
		}
	}

	rec := study.SessionRecord{
		ID:            e.newID(),
		PlanID:        planID,
		Topic:         plan.Topic,
		Section:       section,
		Questions:     questions,
		UserAnswers:   make([]string, len(questions)),
		GradedAnswers: []study.GradedAnswer{},
		Date:          e.now().UTC().Format(time.RFC3339),
		Status:        study.StatusInProgress,
	}

	history = append([]study.SessionRecord{rec}, history...)
	store.Save(e.kv, store.KeySessionHistory, history)
	store.Save(e.kv, store.KeyActivePlanID, planID)
	store.Save(e.kv, store.KeyActiveSessionID, rec.ID)
	return &rec, nil
}

// UpdateAnswers overwrites the session's user answers. Called on every
// navigation away from the quiz view so typed input survives a crash.
func (e *Engine) UpdateAnswers(sessionID string, answers []string) error {
	history := e.History()
	idx := indexOf(history, sessionID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if len(answers) != len(history[idx].Questions) {
		return fmt.Errorf("%w: got %d answers for %d questions", ErrAnswerCountMismatch, len(answers), len(history[idx].Questions))
	}
	history[idx].UserAnswers = answers
	store.Save(e.kv, store.KeySessionHistory, history)
	return nil
}

// FinishQuiz runs the resumable grading loop for one session.
//
// The given answers are persisted before any grading call. Grading resumes
// at the first ungraded index; each graded answer is persisted immediately,
// so a failure mid-loop loses nothing. On failure the session stays
// in-progress and a later call resumes where this one stopped. Only one
// grading loop may run per session at a time.
func (e *Engine) FinishQuiz(ctx context.Context, sessionID string, answers []string, progress ProgressFunc) (*study.SessionRecord, error) {
	e.mu.Lock()
	if e.grading[sessionID] {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrGradingInFlight, sessionID)
	}
	e.grading[sessionID] = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		delete(e.grading, sessionID)
		e.mu.Unlock()
	}()

	history := e.History()
	idx := indexOf(history, sessionID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	rec := &history[idx]
	if len(answers) != len(rec.Questions) {
		return nil, fmt.Errorf("%w: got %d answers for %d questions", ErrAnswerCountMismatch, len(answers), len(rec.Questions))
	}
	rec.UserAnswers = answers
	store.Save(e.kv, store.KeySessionHistory, history)

	total := len(rec.Questions)
	for i := rec.ResumeIndex(); i < total; i++ {
		graded, err := e.gen.GradeAnswer(ctx, rec.Questions[i].Question, rec.UserAnswers[i])
		if err != nil {
			return nil, fmt.Errorf("grading failed at question %d of %d, progress saved: %w", i+1, total, err)
		}
		rec.GradedAnswers = append(rec.GradedAnswers, *graded)
		store.Save(e.kv, store.KeySessionHistory, history)
		if progress != nil {
			progress(len(rec.GradedAnswers), total)
		}
	}

	rec.Status = study.StatusCompleted
	store.Save(e.kv, store.KeySessionHistory, history)

	out := *rec
	return &out, nil
}

// ReviewSession makes an existing session active again, forcing its owning
// plan active as well. A completed session reopens in feedback.
func (e *Engine) ReviewSession(sessionID string) (*study.SessionRecord, error) {
	rec, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	store.Save(e.kv, store.KeyActivePlanID, rec.PlanID)
	store.Save(e.kv, store.KeyActiveSessionID, rec.ID)
	return rec, nil
}

// CloseSession clears the active session, returning navigation to the
// active plan.
func (e *Engine) CloseSession() {
	store.Save(e.kv, store.KeyActiveSessionID, "")
}

// DeletePlan removes a plan and every session recorded against it. Active
// ids pointing into the deleted plan are cleared.
func (e *Engine) DeletePlan(planID string) error {
	plans := e.Plans()
	kept := plans[:0]
	found := false
	for _, p := range plans {
		if p.ID == planID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
	}
	store.Save(e.kv, store.KeyStudyPlans, kept)

	history := e.History()
	activeSession := e.ActiveSessionID()
	keptHistory := history[:0]
	for _, r := range history {
		if r.PlanID == planID {
			if r.ID == activeSession {
				store.Save(e.kv, store.KeyActiveSessionID, "")
			}
			continue
		}
		keptHistory = append(keptHistory, r)
	}
	store.Save(e.kv, store.KeySessionHistory, keptHistory)

	if e.ActivePlanID() == planID {
		store.Save(e.kv, store.KeyActivePlanID, "")
	}
	return nil
}

// latestForSection returns the most recently dated session for the given
// plan section, regardless of status, or nil when none exists.
func latestForSection(history []study.SessionRecord, planID, sectionTitle string) *study.SessionRecord {
	var latest *study.SessionRecord
	for i := range history {
		r := &history[i]
		if r.PlanID != planID || r.Section.Title != sectionTitle {
			continue
		}
		if latest == nil || r.Date > latest.Date {
			latest = r
		}
	}
	return latest
}

func indexOf(history []study.SessionRecord, sessionID string) int {
	for i := range history {
		if history[i].ID == sessionID {
			return i
		}
	}
	return -1
}
