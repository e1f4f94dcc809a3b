package dashscope

import (
	"context"
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

// GenerateSpeech invokes the speech-synthesis endpoint once and returns
// either a hosted audio URL or a base64 data URI, whichever the provider
// answered with.
func (c *Client) GenerateSpeech(ctx context.Context, req generation.SpeechRequest) (*generation.SpeechResult, error) {
	if !c.HasCredentials() {
		return nil, generation.ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, &generation.ValidationError{Field: "text"}
	}

	payload := speechRequest{
		Model: c.audioModel,
		Input: speechInput{
			Text: req.Text,
			Meta: &speechMeta{
				AudioType: req.AudioType,
				Voice:     req.Voice,
				Language:  req.Language,
				Speed:     req.Speed,
				Pitch:     req.Pitch,
			},
		},
		Parameters: speechParams{Format: "mp3"},
	}

	var decoded speechResponse
	if err := c.postJSON(ctx, c.audioPath, payload, false, &decoded); err != nil {
		return nil, err
	}
	if err := apiError(decoded.Code, decoded.Message); err != nil {
		return nil, err
	}

	audioURL := speechAudioURL(decoded)
	if audioURL == "" {
		return nil, &generation.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "Invalid response from DashScope (no audio)",
		}
	}

	c.logger.Debug().
		Str("model", c.audioModel).
		Str("request_id", decoded.RequestID).
		Msg("dashscope: generated audio asset")
	return &generation.SpeechResult{AudioURL: audioURL, Model: c.audioModel}, nil
}
