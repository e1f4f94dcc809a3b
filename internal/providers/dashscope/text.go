package dashscope

import (
	"context"
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

// GenerateText invokes the text-generation endpoint once and returns the
// extracted content verbatim.
func (c *Client) GenerateText(ctx context.Context, req generation.TextRequest) (*generation.TextResult, error) {
	if !c.HasCredentials() {
		return nil, generation.ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &generation.ValidationError{Field: "prompt"}
	}

	payload := chatRequest{
		Model: c.textModel,
		Input: chatInput{
			Messages: []chatMessage{
				{Role: "system", Content: textSystemPrompt},
				{Role: "user", Content: buildTextContent(req)},
			},
		},
		Parameters: chatParams{ResultFormat: "message"},
	}

	var decoded chatResponse
	if err := c.postJSON(ctx, c.textPath, payload, false, &decoded); err != nil {
		return nil, err
	}
	if err := apiError(decoded.Code, decoded.Message); err != nil {
		return nil, err
	}

	content := firstChatContent(decoded)
	if content == "" {
		return nil, &generation.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "Invalid response from DashScope",
		}
	}

	c.logger.Debug().
		Str("model", c.textModel).
		Str("request_id", decoded.RequestID).
		Msg("dashscope: generated text content")
	return &generation.TextResult{Content: content, Model: c.textModel}, nil
}

// NotesToSlides converts raw notes into a slide deck. The deck comes back as
// a single text blob the front end parses further.
func (c *Client) NotesToSlides(ctx context.Context, req generation.SlidesRequest) (*generation.SlidesResult, error) {
	if !c.HasCredentials() {
		return nil, generation.ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Notes) == "" {
		return nil, &generation.ValidationError{Field: "notes"}
	}

	payload := chatRequest{
		Model: c.textModel,
		Input: chatInput{
			Messages: []chatMessage{
				{Role: "system", Content: slidesSystemPrompt},
				{Role: "user", Content: buildSlidesContent(req)},
			},
		},
		Parameters: chatParams{ResultFormat: "message"},
	}

	var decoded chatResponse
	if err := c.postJSON(ctx, c.textPath, payload, false, &decoded); err != nil {
		return nil, err
	}
	if err := apiError(decoded.Code, decoded.Message); err != nil {
		return nil, err
	}

	content := firstChatContent(decoded)
	if content == "" {
		return nil, &generation.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "Invalid response from DashScope",
		}
	}

	c.logger.Debug().
		Str("model", c.textModel).
		Str("request_id", decoded.RequestID).
		Msg("dashscope: generated slide deck")
	return &generation.SlidesResult{Content: content, Model: c.textModel}, nil
}
