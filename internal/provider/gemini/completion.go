package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Cyclone1070/patchpane/internal/gateway"
)

// Completion implements gateway.Completion on a GeminiClient.
type Completion struct {
	client          GeminiClient
	model           string
	maxOutputTokens int
}

// NewCompletion creates a Completion using the given model.
func NewCompletion(client GeminiClient, model string, maxOutputTokens int) *Completion {
	if client == nil {
		panic("client is required")
	}
	if model == "" {
		panic("model is required")
	}
	return &Completion{client: client, model: model, maxOutputTokens: maxOutputTokens}
}

// RequestCompletion sends the conversation and returns the model's text.
func (c *Completion) RequestCompletion(ctx context.Context, messages []gateway.Message) (string, error) {
	contents, system := toContents(messages)

	config := &genai.GenerateContentConfig{}
	if c.maxOutputTokens > 0 {
		config.MaxOutputTokens = int32(c.maxOutputTokens)
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", mapError(err)
	}

	text := responseText(resp)
	if text == "" {
		return "", &gateway.NetworkError{Message: "empty response from model"}
	}
	return text, nil
}

// toContents converts gateway messages to SDK contents. System messages are
// pulled out into a single system instruction; "assistant" maps to the SDK's
// model role, everything else to user.
func toContents(messages []gateway.Message) ([]*genai.Content, string) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = append(system, m.Content)
		case "assistant", "model":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return contents, strings.Join(system, "\n\n")
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// mapError maps SDK errors onto the gateway error model.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return gateway.ErrCancelled
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return fmt.Errorf("%w: %s", gateway.ErrUnauthorized, apiErr.Message)
		case apiErr.Code == 429:
			return &gateway.NetworkError{Message: "rate limit exceeded", Cause: err}
		case apiErr.Code >= 500:
			return &gateway.NetworkError{Message: "model service unavailable", Cause: err}
		default:
			return &gateway.NetworkError{Message: fmt.Sprintf("request failed with status %d", apiErr.Code), Cause: err}
		}
	}
	return &gateway.NetworkError{Message: "completion request failed", Cause: err}
}
