// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llmcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"
	"time"

	"github.com/pdiddy/transcheck/internal/httputil"
)

// checkPromptTmpl instructs the model to compare aligned segments and
// report issues as bare JSON. Severity vocabulary matches the output
// contract so normalization stays mechanical.
var checkPromptTmpl = template.Must(template.New("check").Parse(`You are a meticulous bilingual translation QA engine. Compare each source segment with its target segment and report translation issues. Be strict with numbers, dates, names, and terminology; do not invent issues. If a segment is fine, do not report anything for it.

Return ONLY a JSON object of this shape:
{"issues": [{"segment": <int>, "type": "number_error|date_error|name_error|terminology|omission|addition|mistranslation|orthography|punctuation|formatting|other", "severity": "high|medium|low", "evidence": "<string>", "suggestion": "<string, optional>"}]}

Segments:
{{range .}}[{{.Segment}}] SRC: {{.Src}}
[{{.Segment}}] TGT: {{.Tgt}}
{{end}}`))

// apiURL is the chat completions endpoint. Package-level var for test
// substitution.
var apiURL = "https://api.openai.com/v1/chat/completions"

// OpenAIBackend calls an OpenAI-style chat completions API.
type OpenAIBackend struct {
	APIKey     string
	Model      string
	MaxRetries int
	Client     *http.Client

	// LogW receives retry progress lines; nil silences them.
	LogW io.Writer
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// checkResponse is the JSON payload the prompt asks for.
type checkResponse struct {
	Issues []RawIssue `json:"issues"`
}

// Check renders the prompt for one batch, calls the API with bounded
// retry, classifies HTTP failures into the package error categories,
// and parses the JSON the model returns. A response that cannot be
// parsed maps to ErrMalformed so the caller can degrade the batch.
func (o *OpenAIBackend) Check(ctx context.Context, batch []SegmentPair) ([]RawIssue, error) {
	var prompt bytes.Buffer
	if err := checkPromptTmpl.Execute(&prompt, batch); err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: o.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt.String()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, o.MaxRetries, o.LogW)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (HTTP %d): check the API key", ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: try again later", ErrRateLimit)
	case resp.StatusCode == http.StatusBadRequest:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, string(msg))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d", ErrNetwork, resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrMalformed)
	}

	parsed, ok := extractJSON(cr.Choices[0].Message.Content)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrMalformed)
	}
	return parsed.Issues, nil
}

// extractJSON parses the model output as the expected JSON object,
// first as-is, then from the outermost brace pair in case the model
// wrapped the object in prose or a code fence.
func extractJSON(s string) (checkResponse, bool) {
	var out checkResponse
	if err := json.Unmarshal([]byte(s), &out); err == nil {
		return out, true
	}
	start := bytes.IndexByte([]byte(s), '{')
	end := bytes.LastIndexByte([]byte(s), '}')
	if start == -1 || end <= start {
		return checkResponse{}, false
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), &out); err != nil {
		return checkResponse{}, false
	}
	return out, true
}
