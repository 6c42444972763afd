package studygen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/radarsat1/re-up/internal/llm"
)

func TestGeneratePlan(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"topic": "Go Concurrency",
			"summary": "Goroutines, channels and the memory model.",
			"sections": [
				{"title": "Goroutines", "description": "Lightweight threads", "difficulty": "Beginner"},
				{"title": "Channels", "description": "Typed conduits", "difficulty": "Intermediate"},
				{"title": "Memory Model", "description": "Happens-before", "difficulty": "Advanced"}
			]
		}`),
	})

	svc := New(mock, DefaultConfig())
	plan, err := svc.GeneratePlan(context.Background(), "Go Concurrency", "")
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if plan.Topic != "Go Concurrency" {
		t.Errorf("topic = %q", plan.Topic)
	}
	if len(plan.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(plan.Sections))
	}
	if plan.Sections[1].Title != "Channels" {
		t.Errorf("section[1].Title = %q", plan.Sections[1].Title)
	}
	if plan.ID != "" {
		t.Errorf("plan ID should be unset, got %q", plan.ID)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema != PlanSchema {
		t.Error("request did not carry the plan schema")
	}
	if !strings.Contains(req.Messages[0].Content, "Go Concurrency") {
		t.Error("prompt missing the topic")
	}
}

func TestGeneratePlanWithContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"topic":"SRE","summary":"s","sections":[
			{"title":"A","description":"d","difficulty":"Beginner"},
			{"title":"B","description":"d","difficulty":"Beginner"},
			{"title":"C","description":"d","difficulty":"Beginner"}]}`),
	})

	svc := New(mock, DefaultConfig())
	if _, err := svc.GeneratePlan(context.Background(), "SRE", "Senior SRE role at a fintech"); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "Senior SRE role at a fintech") {
		t.Error("prompt missing the provided context")
	}
}

func TestGeneratePlanSectionCountRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"topic":"X","summary":"s","sections":[
			{"title":"A","description":"d","difficulty":"Beginner"},
			{"title":"B","description":"d","difficulty":"Beginner"}]}`),
	})

	svc := New(mock, DefaultConfig())
	if _, err := svc.GeneratePlan(context.Background(), "X", ""); err == nil {
		t.Fatal("expected error for 2-section plan")
	}
}

func TestGeneratePlanProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	svc := New(mock, DefaultConfig())
	_, err := svc.GeneratePlan(context.Background(), "X", "")
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestGenerateQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[
			{"question": "Q1?", "topic": "Channels"},
			{"question": "Q2?", "topic": "Channels"},
			{"question": "Q3?", "topic": "Channels"},
			{"question": "Q4?", "topic": "Channels"},
			{"question": "Q5?", "topic": "Channels"}
		]`),
	})

	svc := New(mock, DefaultConfig())
	questions, err := svc.GenerateQuestions(context.Background(), "Channels", "Go Concurrency")
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if len(questions) != QuestionsPerQuiz {
		t.Fatalf("questions = %d, want %d", len(questions), QuestionsPerQuiz)
	}
	if questions[4].Question != "Q5?" {
		t.Errorf("questions[4] = %q", questions[4].Question)
	}

	req := mock.Calls[0]
	if req.Schema != QuestionsSchema {
		t.Error("request did not carry the questions schema")
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, "Channels") || !strings.Contains(prompt, "Go Concurrency") {
		t.Errorf("prompt missing section or topic: %q", prompt)
	}
}

func TestGenerateQuestionsEmptyBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[]`)})

	svc := New(mock, DefaultConfig())
	if _, err := svc.GenerateQuestions(context.Background(), "Channels", "Go"); err == nil {
		t.Fatal("expected error for empty question batch")
	}
}

func TestGradeAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"grade": "B+",
			"summary": "Solid but missed buffering semantics.",
			"keyConceptsMissed": ["buffered channels"],
			"suggestedResearchLinks": ["https://go.dev/ref/mem"]
		}`),
	})

	svc := New(mock, DefaultConfig())
	graded, err := svc.GradeAnswer(context.Background(), "What is a channel?", "A typed conduit.")
	if err != nil {
		t.Fatalf("GradeAnswer: %v", err)
	}
	if graded.Grade != "B+" {
		t.Errorf("grade = %q", graded.Grade)
	}
	if graded.Question != "What is a channel?" {
		t.Errorf("question not carried through: %q", graded.Question)
	}
	if graded.UserAnswer != "A typed conduit." {
		t.Errorf("answer not carried through: %q", graded.UserAnswer)
	}
	if len(graded.KeyConceptsMissed) != 1 {
		t.Errorf("keyConceptsMissed = %v", graded.KeyConceptsMissed)
	}

	if mock.Calls[0].Schema != GradingSchema {
		t.Error("request did not carry the grading schema")
	}
}

func TestGradeAnswerMalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})

	svc := New(mock, DefaultConfig())
	if _, err := svc.GradeAnswer(context.Background(), "Q", "A"); err == nil {
		t.Fatal("expected parse error")
	}
}
