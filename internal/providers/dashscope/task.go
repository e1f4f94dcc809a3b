package dashscope

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

// TaskStatus enumerates the provider-side lifecycle of an asynchronous
// generation task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskRunning   TaskStatus = "RUNNING"
	TaskSucceeded TaskStatus = "SUCCEEDED"
	TaskFailed    TaskStatus = "FAILED"
	TaskCanceled  TaskStatus = "CANCELED"
)

// GenerateVideo submits an asynchronous text-to-video task and polls it to a
// terminal state within the configured budget.
func (c *Client) GenerateVideo(ctx context.Context, req generation.VideoRequest) (*generation.VideoResult, error) {
	if !c.HasCredentials() {
		return nil, generation.ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &generation.ValidationError{Field: "prompt"}
	}

	payload := videoSubmitRequest{
		Model: c.videoModel,
		Input: videoInput{
			Prompt: req.Prompt,
			Meta: &videoMeta{
				VideoType:  req.VideoType,
				Duration:   req.Duration,
				Resolution: req.Resolution,
				FPS:        req.FPS,
			},
		},
	}

	videoURL, err := c.runVideoTask(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &generation.VideoResult{VideoURL: videoURL, Model: c.videoModel}, nil
}

// GeneratePromoVideo is the promo-flavored variant: the prompt is enriched
// with script and visual theme context, and UI aspect ratios are mapped to
// model resolutions. It shares the submit-and-poll machinery with
// GenerateVideo.
func (c *Client) GeneratePromoVideo(ctx context.Context, req generation.PromoVideoRequest) (*generation.PromoVideoResult, error) {
	if !c.HasCredentials() {
		return nil, generation.ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &generation.ValidationError{Field: "prompt"}
	}

	aspectRatio := strings.TrimSpace(req.AspectRatio)
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}
	duration := req.Duration
	if duration <= 0 {
		duration = 20
	}
	quality := req.Quality
	if quality <= 0 {
		quality = 80
	}

	payload := videoSubmitRequest{
		Model: c.videoModel,
		Input: videoInput{
			Prompt: buildPromoPrompt(req),
			Meta: &videoMeta{
				VideoType:  "promo",
				Duration:   duration,
				Resolution: promoResolution(aspectRatio),
				FPS:        24,
			},
		},
		Parameters: videoParams{Quality: quality},
	}

	videoURL, err := c.runVideoTask(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &generation.PromoVideoResult{
		VideoURL:    videoURL,
		Model:       c.videoModel,
		Duration:    duration,
		AspectRatio: aspectRatio,
	}, nil
}

func (c *Client) runVideoTask(ctx context.Context, payload videoSubmitRequest) (string, error) {
	taskID, err := c.submitTask(ctx, payload)
	if err != nil {
		return "", err
	}
	return c.waitForTask(ctx, taskID)
}

// submitTask posts the generation request in asynchronous mode and returns
// the provider-issued task identifier.
func (c *Client) submitTask(ctx context.Context, payload videoSubmitRequest) (string, error) {
	var decoded taskEnvelope
	if err := c.postJSON(ctx, c.videoPath, payload, true, &decoded); err != nil {
		return "", err
	}
	if err := apiError(decoded.Code, decoded.Message); err != nil {
		return "", err
	}
	taskID := strings.TrimSpace(decoded.Output.TaskID)
	if taskID == "" {
		return "", &generation.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "DashScope error: response missing task_id",
		}
	}
	c.logger.Debug().
		Str("model", c.videoModel).
		Str("task_id", taskID).
		Str("request_id", decoded.RequestID).
		Msg("dashscope: submitted video task")
	return taskID, nil
}

// waitForTask polls the task status endpoint until a terminal state or the
// attempt budget runs out. Unrecognized status values are treated as still
// pending so a provider-side vocabulary change degrades into a timeout rather
// than a crash. The loop stops as soon as the request context is canceled.
func (c *Client) waitForTask(ctx context.Context, taskID string) (string, error) {
	path := "/tasks/" + url.PathEscape(taskID)
	for attempt := 1; attempt <= c.pollMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("dashscope: poll task %s: %w", taskID, ctx.Err())
		case <-time.After(c.pollInterval):
		}

		var decoded taskEnvelope
		if err := c.getJSON(ctx, path, &decoded); err != nil {
			return "", err
		}

		status := TaskStatus(decoded.Output.TaskStatus)
		switch status {
		case TaskSucceeded:
			videoURL := strings.TrimSpace(decoded.Output.VideoURL)
			if videoURL == "" {
				return "", &generation.UpstreamError{
					StatusCode: http.StatusBadGateway,
					Message:    fmt.Sprintf("DashScope task %s succeeded without a video url", taskID),
				}
			}
			c.logger.Debug().
				Str("task_id", taskID).
				Int("polls", attempt).
				Msg("dashscope: video task succeeded")
			return videoURL, nil
		case TaskFailed, TaskCanceled:
			message := "DashScope video generation failed"
			if detail := strings.TrimSpace(decoded.Output.Message); detail != "" {
				message += ": " + detail
			}
			return "", &generation.UpstreamError{
				StatusCode: http.StatusBadGateway,
				Message:    message,
			}
		case TaskPending, TaskRunning:
			// still in flight
		default:
			c.logger.Warn().
				Str("task_id", taskID).
				Str("status", string(status)).
				Msg("dashscope: unrecognized task status, still waiting")
		}
	}
	return "", &generation.TimeoutError{
		TaskID:   taskID,
		Attempts: c.pollMaxAttempts,
		Interval: c.pollInterval,
	}
}
