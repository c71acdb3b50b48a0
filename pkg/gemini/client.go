// Package gemini talks to the Google generateContent REST API. It is one of
// the two interchangeable generation providers; pkg/aigateway is the other.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clinsight/cdss-gateway/pkg/domain"
	"github.com/clinsight/cdss-gateway/pkg/prompt"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

const chatMaxOutputTokens = 1000

type client struct {
	apiKey  string
	model   string
	baseURL string
	hc      *http.Client
}

// NewClient validates the credential eagerly: a client without a key is a
// configuration failure, not something to discover on the first request.
func NewClient(apiKey, model string) (*client, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	return &client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// Analyze sends the payload segments under the fixed CDSS system instruction
// and asks the endpoint to constrain output to JSON. The reply text is
// returned as-is; extraction and decoding happen downstream.
func (c *client) Analyze(ctx context.Context, segments []prompt.Segment) (string, error) {
	req := generateContentRequest{
		SystemInstruction: &content{Parts: []part{{Text: prompt.SystemInstruction}}},
		Contents:          []content{{Role: "user", Parts: partsFromSegments(segments)}},
		GenerationConfig:  &generationConfig{ResponseMIMEType: "application/json"},
	}

	return c.generate(ctx, req)
}

// Chat replays the case context as a priming exchange, then the prior
// transcript in order, then the new message. The reply is free text.
func (c *client) Chat(ctx context.Context, contextBlock string, history []domain.ChatMessage, message string) (string, error) {
	contents := []content{
		{Role: "user", Parts: []part{{Text: contextBlock}}},
		{Role: "model", Parts: []part{{Text: prompt.ChatAcknowledgement}}},
	}
	for _, m := range history {
		contents = append(contents, content{Role: string(m.Role), Parts: []part{{Text: m.Content}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: message}}})

	req := generateContentRequest{
		Contents:         contents,
		GenerationConfig: &generationConfig{MaxOutputTokens: chatMaxOutputTokens},
	}

	return c.generate(ctx, req)
}

func (c *client) generate(ctx context.Context, request generateContentRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(bodyBytes),
		}
	}

	var response generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decoding response data: %w", err)
	}

	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var text strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}

func partsFromSegments(segments []prompt.Segment) []part {
	parts := make([]part, 0, len(segments))
	for _, s := range segments {
		switch s.Kind {
		case prompt.SegmentText:
			parts = append(parts, part{Text: s.Text})
		case prompt.SegmentMedia:
			parts = append(parts, part{InlineData: &inlineData{MIMEType: s.MIME, Data: s.Data}})
		}
	}
	return parts
}
