// Package summarizer calls a local summarization model over HTTP.
//
// Summaries are optional: when the model is not configured or unreachable
// the caller stores a null summary and moves on — scoring is unaffected.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	httpTimeout   = 60 * time.Second
	maxInputRunes = 4000
)

const promptTemplate = `Summarize the following job description in 2-3 plain sentences.
Focus on the role, required skills and seniority. Do not use markdown.

%s`

// Client talks to an Ollama-compatible /api/generate endpoint.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
	group   singleflight.Group
}

// NewClient constructs a Client. An empty baseURL yields a disabled client:
// Summarize returns ("", nil) without any network call.
func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// Enabled reports whether a summarizer endpoint is configured.
func (c *Client) Enabled() bool { return c.baseURL != "" }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Summarize produces a short summary of text. Concurrent calls with the
// same key (listing external id) collapse into a single model request.
func (c *Client) Summarize(ctx context.Context, key, text string) (string, error) {
	if !c.Enabled() || strings.TrimSpace(text) == "" {
		return "", nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.generate(ctx, text)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) generate(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: fmt.Sprintf(promptTemplate, truncateRunes(text, maxInputRunes)),
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarizer POST: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("summarizer read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer returned %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("summarizer json unmarshal: %w", err)
	}
	return strings.TrimSpace(out.Response), nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
