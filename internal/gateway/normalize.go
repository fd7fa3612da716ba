package gateway

import (
	"encoding/json"
	"strings"
)

// Status reports whether a generation request produced an answer at all.
// Malformed structured replies are still answers; only backend-layer
// failures yield StatusFailure.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the uniform envelope handed back for every generation request.
// On success exactly one of Structured or Raw is populated; on failure both
// are empty and Error carries the reason.
type Result struct {
	Status     Status         `json:"status"`
	Schema     SchemaTag      `json:"schema"`
	Structured map[string]any `json:"structured,omitempty"`
	Raw        string         `json:"raw,omitempty"`
	Error      string         `json:"error,omitempty"`

	// Kind-specific metadata.
	Platform          string `json:"platform,omitempty"`
	UserID            string `json:"user_id,omitempty"`
	AttachmentPreview string `json:"attachment_preview,omitempty"`
}

// normalize recovers a structured object from backend text. Backends
// frequently wrap JSON in markdown fences despite being asked not to, so the
// fences are stripped first; when decoding still fails the original text is
// returned verbatim as a successful raw result. The caller always gets text
// back, never a parse error.
func normalize(raw string, tag SchemaTag) Result {
	candidate := trimCodeFence(strings.TrimSpace(raw))
	var decoded map[string]any
	if err := json.Unmarshal([]byte(candidate), &decoded); err != nil || decoded == nil {
		decoded = nil
		if fragment := extractJSONFragment(candidate); fragment != "" {
			_ = json.Unmarshal([]byte(fragment), &decoded)
		}
	}
	if decoded == nil {
		return Result{Status: StatusSuccess, Schema: tag, Raw: raw}
	}
	return Result{Status: StatusSuccess, Schema: tag, Structured: decoded}
}

// extractJSONFragment narrows text to the outermost object literal, which
// rescues replies that surround the JSON with prose.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
