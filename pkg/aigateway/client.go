// Package aigateway is the chat-completions deployment path: the same prompt
// construction as pkg/gemini, sent to an OpenAI-compatible gateway. Media
// segments travel as image_url parts carrying data URLs.
package aigateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/clinsight/cdss-gateway/pkg/domain"
	"github.com/clinsight/cdss-gateway/pkg/prompt"
)

type client struct {
	api   *openai.Client
	model string
}

func NewClient(token, baseURL, model string) (*client, error) {
	if token == "" {
		return nil, domain.ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

// Analyze sends the fixed system instruction plus one user message of mixed
// text/image_url parts and returns the reply text verbatim.
func (c *client) Analyze(ctx context.Context, segments []prompt.Segment) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: prompt.SystemInstruction},
		{Role: openai.ChatMessageRoleUser, MultiContent: partsFromSegments(segments)},
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", mapErr(err)
	}

	return firstChoice(resp)
}

// Chat primes the conversation with the case context, replays the transcript
// and appends the new user message.
func (c *client) Chat(ctx context.Context, contextBlock string, history []domain.ChatMessage, message string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: contextBlock},
		{Role: openai.ChatMessageRoleAssistant, Content: prompt.ChatAcknowledgement},
	}
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: roleFor(m.Role), Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", mapErr(err)
	}

	return firstChoice(resp)
}

func partsFromSegments(segments []prompt.Segment) []openai.ChatMessagePart {
	parts := make([]openai.ChatMessagePart, 0, len(segments))
	for _, s := range segments {
		switch s.Kind {
		case prompt.SegmentText:
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: s.Text,
			})
		case prompt.SegmentMedia:
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: s.DataURL()},
			})
		}
	}
	return parts
}

func roleFor(role domain.ChatRole) string {
	if role == domain.ChatRoleModel {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

func firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no completion response from API")
	}
	return resp.Choices[0].Message.Content, nil
}

func mapErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{
			StatusCode: apiErr.HTTPStatusCode,
			Status:     http.StatusText(apiErr.HTTPStatusCode),
			Body:       apiErr.Message,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.UpstreamError{
			StatusCode: reqErr.HTTPStatusCode,
			Status:     http.StatusText(reqErr.HTTPStatusCode),
			Body:       reqErr.Error(),
		}
	}

	return err
}
