// Package study defines the core entities of a study plan and its quiz
// history: plans, sections, questions, graded answers and session records.
package study

// Difficulty is the stated level of a plan section.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Section is one topic unit within a plan. Sections carry no synthetic id;
// they are matched across the plan and the session history by Title.
type Section struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
}

// StudyPlan is a generated curriculum of sections for a topic.
// Immutable after creation, except for deletion.
type StudyPlan struct {
	ID       string    `json:"id"`
	Topic    string    `json:"topic"`
	Summary  string    `json:"summary"`
	Sections []Section `json:"sections"`
}

// SectionByTitle returns the plan section with the given title.
func (p *StudyPlan) SectionByTitle(title string) (Section, bool) {
	for _, s := range p.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// Question is a single generated interview question.
type Question struct {
	Question string `json:"question"`
	Topic    string `json:"topic"`
}

// GradedAnswer is the collaborator's evaluation of one answer.
type GradedAnswer struct {
	Question               string   `json:"question"`
	UserAnswer             string   `json:"userAnswer"`
	Grade                  string   `json:"grade"`
	Summary                string   `json:"summary"`
	KeyConceptsMissed      []string `json:"keyConceptsMissed"`
	SuggestedResearchLinks []string `json:"suggestedResearchLinks"`
}

// SessionStatus is the lifecycle state of a quiz attempt.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in-progress"
	StatusCompleted  SessionStatus = "completed"
)

// SessionRecord is one quiz attempt against a plan section.
//
// UserAnswers is a parallel array to Questions (same length and order).
// GradedAnswers is always a prefix of the questions, grown one entry at a
// time as grading proceeds; the record completes only when every question
// has been graded.
type SessionRecord struct {
	ID            string         `json:"id"`
	PlanID        string         `json:"planId"`
	Topic         string         `json:"topic"`
	Section       Section        `json:"section"`
	Questions     []Question     `json:"questions"`
	UserAnswers   []string       `json:"userAnswers"`
	GradedAnswers []GradedAnswer `json:"gradedAnswers"`
	Date          string         `json:"date"`
	Status        SessionStatus  `json:"status"`
}

// ResumeIndex is the first ungraded answer index, where an interrupted
// grading pass picks up.
func (r *SessionRecord) ResumeIndex() int {
	return len(r.GradedAnswers)
}

// Complete reports whether every question has been graded.
func (r *SessionRecord) Complete() bool {
	return len(r.GradedAnswers) == len(r.Questions)
}
