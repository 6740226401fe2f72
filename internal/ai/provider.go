package ai

import "context"

// Provider is the interface that all text-generation backends implement.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Name() string // "gemini" or "openai"
}

// ChatRequest is a provider-agnostic request.
type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// ChatResponse is a provider-agnostic response.
type ChatResponse struct {
	Content    string
	TokensUsed int
	Model      string
	Provider   string
}

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// FunctionDecl describes one tool offered to a tool-calling model.
// Parameters is a JSON Schema object.
type FunctionDecl struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	Name string
	Args map[string]string
}

// FunctionResponse carries a tool's output back to the model.
type FunctionResponse struct {
	Name    string
	Content string
}

// ToolMessage is one turn in a tool-calling conversation.
// Role "user" and "model" turns carry text; "model" turns may carry
// function calls; "tool" turns carry a function response.
type ToolMessage struct {
	Role     string
	Text     string
	Calls    []FunctionCall
	Response *FunctionResponse
}

// ToolTurn is the model's reply in a tool-calling conversation: either
// free text, one or more function calls, or both.
type ToolTurn struct {
	Text  string
	Calls []FunctionCall
}

// ToolCaller is implemented by providers that support function calling.
type ToolCaller interface {
	ChatTools(ctx context.Context, system string, history []ToolMessage, decls []FunctionDecl) (*ToolTurn, error)
}
