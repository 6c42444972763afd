// Package llm abstracts the generative-AI collaborator behind a single
// Provider interface with structured (JSON-schema constrained) output,
// retry and event-logging decorators, and concrete providers for
// Anthropic, OpenAI, OpenRouter and Gemini.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the boundary to the external generative service. Every call
// may fail for transient reasons (network, auth, quota); callers treat any
// error as retryable.
type Provider interface {
	// Generate sends one request and returns the structured response.
	// When Request.Schema is set the response Content is JSON validated
	// against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Single-turn calls carry one user message.
	Messages []Message

	// Schema, when set, pins the response to a JSON structure via the
	// provider's native structured-output mechanism.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]; zero means deterministic.
	Temperature float64
}

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "study-plan".
	Name string

	// Description guides the model toward the intended structure.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	// Content is the generated JSON (schema-validated when a Schema was
	// requested) or the raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
