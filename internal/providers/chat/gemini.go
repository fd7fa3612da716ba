package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type GeminiOptions struct {
	APIKey        string
	BaseURL       string
	SystemMessage string
	HTTPClient    *http.Client
}

// GeminiBackend completes prompts against the Gemini generateContent API.
type GeminiBackend struct {
	apiKey        string
	baseURL       string
	systemMessage string
	client        *http.Client
}

const (
	geminiProviderName   = "gemini"
	geminiDefaultTimeout = 60 * time.Second
)

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiBackend(opts GeminiOptions) (*GeminiBackend, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	systemMessage := strings.TrimSpace(opts.SystemMessage)
	if systemMessage == "" {
		systemMessage = DefaultSystemMessage
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &GeminiBackend{
		apiKey:        strings.TrimSpace(opts.APIKey),
		baseURL:       baseURL,
		systemMessage: systemMessage,
		client:        client,
	}, nil
}

// Complete sends one generateContent request and returns the first non-empty
// candidate text. Gemini has no session field, so the session identifier only
// travels in an auxiliary header for request correlation.
func (g *GeminiBackend) Complete(ctx context.Context, sessionID, model, prompt string) (string, error) {
	payload := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: g.systemMessage}}},
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", &Error{Provider: geminiProviderName, Err: fmt.Errorf("encode request: %w", err)}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(model), &buf)
	if err != nil {
		return "", &Error{Provider: geminiProviderName, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)
	httpReq.Header.Set("X-Session-ID", sessionID)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &Error{Provider: geminiProviderName, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", &Error{Provider: geminiProviderName, Status: resp.StatusCode, Err: errors.New("unexpected status")}
	}
	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &Error{Provider: geminiProviderName, Err: fmt.Errorf("decode response: %w", err)}
	}
	text := extractCandidateText(out)
	if text == "" {
		return "", &Error{Provider: geminiProviderName, Err: errors.New("empty completion")}
	}
	return text, nil
}

func (g *GeminiBackend) endpoint(model string) string {
	if strings.TrimSpace(model) == "" {
		model = "gemini-1.5-flash"
	}
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(model))
}

func extractCandidateText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

var _ Backend = (*GeminiBackend)(nil)
