package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type OpenAIOptions struct {
	APIKey        string
	BaseURL       string
	Organization  string
	SystemMessage string
	HTTPClient    *http.Client
}

// OpenAIBackend completes prompts against an OpenAI-compatible
// /chat/completions endpoint.
type OpenAIBackend struct {
	apiKey        string
	baseURL       string
	organization  string
	systemMessage string
	client        *http.Client
}

const (
	openAIProviderName   = "openai"
	openAIDefaultTimeout = 60 * time.Second
)

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	User        string          `json:"user,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAIBackend(opts OpenAIOptions) (*OpenAIBackend, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	systemMessage := strings.TrimSpace(opts.SystemMessage)
	if systemMessage == "" {
		systemMessage = DefaultSystemMessage
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAIBackend{
		apiKey:        strings.TrimSpace(opts.APIKey),
		baseURL:       baseURL,
		organization:  strings.TrimSpace(opts.Organization),
		systemMessage: systemMessage,
		client:        client,
	}, nil
}

// Complete sends one chat completion request and returns the model text. The
// session identifier is forwarded in the request's user field for provider
// side correlation and abuse tracing.
func (o *OpenAIBackend) Complete(ctx context.Context, sessionID, model, prompt string) (string, error) {
	payload := openAIChatRequest{
		Model:       model,
		Temperature: 0.7,
		User:        sessionID,
		Messages: []openAIMessage{
			{Role: "system", Content: o.systemMessage},
			{Role: "user", Content: prompt},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", &Error{Provider: openAIProviderName, Err: fmt.Errorf("encode request: %w", err)}
	}
	endpoint := fmt.Sprintf("%s/chat/completions", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", &Error{Provider: openAIProviderName, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	if o.organization != "" {
		httpReq.Header.Set("OpenAI-Organization", o.organization)
	}
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", &Error{Provider: openAIProviderName, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", &Error{Provider: openAIProviderName, Status: resp.StatusCode, Err: errors.New("unexpected status")}
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &Error{Provider: openAIProviderName, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(out.Choices) == 0 {
		return "", &Error{Provider: openAIProviderName, Err: errors.New("no choices returned")}
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", &Error{Provider: openAIProviderName, Err: errors.New("empty completion")}
	}
	return text, nil
}

var _ Backend = (*OpenAIBackend)(nil)
