// Package studygen talks to the generative-AI collaborator: it produces
// study plans and quiz questions and grades free-text answers. Every call
// can fail for transient reasons; callers treat any error as retryable.
package studygen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/radarsat1/re-up/internal/llm"
	"github.com/radarsat1/re-up/internal/study"
)

const (
	// QuestionsPerQuiz is the fixed batch size for question generation.
	QuestionsPerQuiz = 5

	minSections = 3
	maxSections = 7
)

// Config tunes generation parameters.
type Config struct {
	MaxTokens       int
	PlanTemperature float64
	QuizTemperature float64
	GradeTemp       float64
}

// DefaultConfig returns generation defaults. Question generation runs
// hotter than grading so repeat attempts vary.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       4096,
		PlanTemperature: 0.5,
		QuizTemperature: 0.8,
		GradeTemp:       0.3,
	}
}

// Service implements the three collaborator operations over an llm.Provider.
type Service struct {
	provider llm.Provider
	config   Config
}

// New creates a Service with the given provider and config.
func New(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// GeneratePlan produces a study plan for topic. The optional context
// (e.g. a job description) steers section selection. The returned plan has
// no ID; the caller assigns one.
func (s *Service) GeneratePlan(ctx context.Context, topic, planContext string) (*study.StudyPlan, error) {
	ctx = llm.WithPurpose(ctx, "plan-gen")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      planSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildPlanPrompt(topic, planContext)}},
		Schema:      PlanSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.PlanTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate study plan: %w", err)
	}

	var plan study.StudyPlan
	if err := json.Unmarshal(resp.Content, &plan); err != nil {
		return nil, fmt.Errorf("parse study plan response: %w", err)
	}
	if n := len(plan.Sections); n < minSections || n > maxSections {
		return nil, fmt.Errorf("generated plan has %d sections, want %d-%d", n, minSections, maxSections)
	}
	return &plan, nil
}

// GenerateQuestions produces the fixed batch of questions for one plan
// section.
func (s *Service) GenerateQuestions(ctx context.Context, sectionTitle, topic string) ([]study.Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildQuestionsPrompt(sectionTitle, topic)}},
		Schema:      QuestionsSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.QuizTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var questions []study.Question
	if err := json.Unmarshal(resp.Content, &questions); err != nil {
		return nil, fmt.Errorf("parse questions response: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("generated question batch is empty")
	}
	return questions, nil
}

// GradeAnswer evaluates one free-text answer. The returned GradedAnswer
// carries the question and answer alongside the collaborator's feedback.
func (s *Service) GradeAnswer(ctx context.Context, question, userAnswer string) (*study.GradedAnswer, error) {
	ctx = llm.WithPurpose(ctx, "grading")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      gradingSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildGradingPrompt(question, userAnswer)}},
		Schema:      GradingSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.GradeTemp,
	})
	if err != nil {
		return nil, fmt.Errorf("grade answer: %w", err)
	}

	var graded study.GradedAnswer
	if err := json.Unmarshal(resp.Content, &graded); err != nil {
		return nil, fmt.Errorf("parse grading response: %w", err)
	}
	graded.Question = question
	graded.UserAnswer = userAnswer
	return &graded, nil
}
