package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

// Gemini API request/response types (unexported).

type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	Tools             []geminiTool     `json:"tools,omitempty"`
	GenerationConfig  *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text             string              `json:"text,omitempty"`
	FunctionCall     *geminiFuncCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFuncResponse `json:"functionResponse,omitempty"`
}

type geminiFuncCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

type geminiFuncResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFuncDecl `json:"functionDeclarations"`
}

type geminiFuncDecl struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata *geminiUsage      `json:"usageMetadata,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// GeminiProvider implements Provider and ToolCaller for Google's Gemini API.
type GeminiProvider struct {
	httpClient *http.Client
	apiKey     string
}

// NewGeminiProvider creates a Gemini provider. The key is injected at
// construction; an empty key makes every call fail, which callers treat
// as "unconfigured" and route to their fallbacks.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiKey:     apiKey,
	}
}

func (g *GeminiProvider) Name() string { return "gemini" }

// Configured reports whether an API key is present.
func (g *GeminiProvider) Configured() bool { return g.apiKey != "" }

func (g *GeminiProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	body := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: messagesToPrompt(req.Messages)}},
		}},
		GenerationConfig: &geminiGenConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}

	genResp, err := g.send(ctx, body)
	if err != nil {
		return nil, err
	}

	tokensUsed := 0
	if genResp.UsageMetadata != nil {
		tokensUsed = genResp.UsageMetadata.TotalTokenCount
	}

	content := ""
	if len(genResp.Candidates) > 0 && len(genResp.Candidates[0].Content.Parts) > 0 {
		content = genResp.Candidates[0].Content.Parts[0].Text
	}

	return &ChatResponse{
		Content:    content,
		TokensUsed: tokensUsed,
		Model:      "gemini-2.5-flash",
		Provider:   "gemini",
	}, nil
}

// ChatTools sends a tool-calling conversation turn and returns the
// model's text and/or requested function calls.
func (g *GeminiProvider) ChatTools(ctx context.Context, system string, history []ToolMessage, decls []FunctionDecl) (*ToolTurn, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	body := geminiRequest{
		Contents:         toGeminiContents(history),
		GenerationConfig: &geminiGenConfig{MaxOutputTokens: 8192},
	}
	if system != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	if len(decls) > 0 {
		funcs := make([]geminiFuncDecl, 0, len(decls))
		for _, d := range decls {
			funcs = append(funcs, geminiFuncDecl{Name: d.Name, Description: d.Description, Parameters: d.Parameters})
		}
		body.Tools = []geminiTool{{FunctionDeclarations: funcs}}
	}

	genResp, err := g.send(ctx, body)
	if err != nil {
		return nil, err
	}
	if len(genResp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	turn := &ToolTurn{}
	var text strings.Builder
	for _, part := range genResp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
		if part.FunctionCall != nil {
			turn.Calls = append(turn.Calls, FunctionCall{
				Name: part.FunctionCall.Name,
				Args: decodeArgs(part.FunctionCall.Args),
			})
		}
	}
	turn.Text = text.String()
	return turn, nil
}

func (g *GeminiProvider) send(ctx context.Context, body geminiRequest) (*geminiResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := geminiBaseURL + "?key=" + g.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var genResp geminiResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	return &genResp, nil
}

func toGeminiContents(history []ToolMessage) []geminiContent {
	contents := make([]geminiContent, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case "model":
			var parts []geminiPart
			if m.Text != "" {
				parts = append(parts, geminiPart{Text: m.Text})
			}
			for _, call := range m.Calls {
				args, _ := json.Marshal(call.Args)
				parts = append(parts, geminiPart{FunctionCall: &geminiFuncCall{Name: call.Name, Args: args}})
			}
			contents = append(contents, geminiContent{Role: "model", Parts: parts})
		case "tool":
			contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{
				FunctionResponse: &geminiFuncResponse{
					Name:     m.Response.Name,
					Response: map[string]any{"output": m.Response.Content},
				},
			}}})
		default:
			contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Text}}})
		}
	}
	return contents
}

// decodeArgs flattens a JSON args object into strings; all tool
// parameters in this codebase are string-typed.
func decodeArgs(raw json.RawMessage) map[string]string {
	args := make(map[string]string)
	if len(raw) == 0 {
		return args
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return args
	}
	for k, v := range decoded {
		switch val := v.(type) {
		case string:
			args[k] = val
		default:
			args[k] = fmt.Sprint(val)
		}
	}
	return args
}

// messagesToPrompt concatenates chat messages into a single prompt string.
// The simple generateContent path doesn't use role-based messages, so they
// are formatted as text.
func messagesToPrompt(messages []Message) string {
	if len(messages) == 1 {
		return messages[0].Content
	}

	var sb strings.Builder
	for _, m := range messages {
		if m.Role == "system" {
			sb.WriteString(m.Content)
			sb.WriteString("\n\n")
		} else {
			sb.WriteString(m.Content)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
