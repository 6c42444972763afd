package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProviderServesResponsesInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("first content = %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("input tokens = %d, want 10", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("second content = %s", resp2.Content)
	}
}

func TestMockProviderEmptyQueue(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %v", err)
	}
}

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if len(mock.Calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(mock.Calls))
	}
	if mock.Calls[0].System != "sys" || mock.Calls[0].Messages[0].Content != "hello" {
		t.Fatalf("recorded call = %+v", mock.Calls[0])
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if got := PurposeFrom(ctx); got != "unknown" {
		t.Errorf("PurposeFrom(bare ctx) = %q, want unknown", got)
	}
	ctx = WithPurpose(ctx, "grading")
	if got := PurposeFrom(ctx); got != "grading" {
		t.Errorf("PurposeFrom = %q, want grading", got)
	}
}
