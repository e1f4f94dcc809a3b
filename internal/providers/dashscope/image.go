package dashscope

import (
	"context"
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

const defaultImageSize = "1328*1328"

// GenerateImages invokes the multimodal generation endpoint once and returns
// every image URL found in the response.
func (c *Client) GenerateImages(ctx context.Context, req generation.ImageRequest) (*generation.ImageResult, error) {
	if !c.HasCredentials() {
		return nil, generation.ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &generation.ValidationError{Field: "prompt"}
	}

	size := strings.TrimSpace(req.AspectRatio)
	if size == "" {
		size = defaultImageSize
	}
	promptExtend := true
	payload := multimodalRequest{
		Model: c.imageModel,
		Input: multimodalInput{
			Messages: []multimodalMessage{{
				Role:    "user",
				Content: []multimodalContent{{Text: req.Prompt}},
			}},
		},
		Parameters: imageParams{
			PromptExtend: &promptExtend,
			Watermark:    false,
			Size:         size,
			ImageType:    req.ImageType,
			Style:        req.Style,
			Quality:      req.Quality,
		},
	}

	var decoded multimodalResponse
	if err := c.postJSON(ctx, c.imagePath, payload, false, &decoded); err != nil {
		return nil, err
	}
	if err := apiError(decoded.Code, decoded.Message); err != nil {
		return nil, err
	}

	images := imageURLs(decoded)
	if len(images) == 0 {
		return nil, &generation.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "No images found in DashScope response",
		}
	}

	c.logger.Debug().
		Str("model", c.imageModel).
		Str("request_id", decoded.RequestID).
		Int("images", len(images)).
		Msg("dashscope: generated image assets")
	return &generation.ImageResult{Images: images, Model: c.imageModel}, nil
}

// EditImage applies instruction-driven edits to an existing image and returns
// the edited variants.
func (c *Client) EditImage(ctx context.Context, req generation.EditRequest) (*generation.EditResult, error) {
	if !c.HasCredentials() {
		return nil, generation.ErrMissingAPIKey
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, &generation.ValidationError{Field: "imageUrl"}
	}
	if strings.TrimSpace(req.EditPrompt) == "" {
		return nil, &generation.ValidationError{Field: "editPrompt"}
	}

	payload := multimodalRequest{
		Model: c.imageEditModel,
		Input: multimodalInput{
			Messages: []multimodalMessage{{
				Role: "user",
				Content: []multimodalContent{
					{Image: req.ImageURL},
					{Text: req.EditPrompt},
				},
			}},
		},
		Parameters: imageParams{
			NegativePrompt: req.NegativePrompt,
			Watermark:      false,
		},
	}

	var decoded multimodalResponse
	if err := c.postJSON(ctx, c.imageEditPath, payload, false, &decoded); err != nil {
		return nil, err
	}
	if err := apiError(decoded.Code, decoded.Message); err != nil {
		return nil, err
	}

	edited := imageURLs(decoded)
	if len(edited) == 0 {
		return nil, &generation.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "No edited images returned from DashScope",
		}
	}

	c.logger.Debug().
		Str("model", c.imageEditModel).
		Str("request_id", decoded.RequestID).
		Int("images", len(edited)).
		Msg("dashscope: edited image assets")
	return &generation.EditResult{
		EditedImages:  edited,
		Model:         c.imageEditModel,
		OriginalImage: req.ImageURL,
	}, nil
}
