package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
	"github.com/Manavarya09/Synthia-Studio/internal/infra"
)

// asyncHeader tells DashScope to return a task handle instead of blocking
// until the generation finishes.
const (
	asyncHeaderName  = "X-DashScope-Async"
	asyncHeaderValue = "enable"
)

// Options configures the DashScope client. Zero values fall back to the
// hardcoded service defaults from internal/infra.
type Options struct {
	APIKey  string
	BaseURL string

	TextPath      string
	ImagePath     string
	VideoPath     string
	AudioPath     string
	ImageEditPath string

	TextModel      string
	ImageModel     string
	VideoModel     string
	AudioModel     string
	ImageEditModel string

	PollInterval    time.Duration
	PollMaxAttempts int

	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the DashScope generative AI API and
// normalizes its heterogeneous response shapes into the generation contract.
type Client struct {
	apiKey  string
	baseURL string

	textPath      string
	imagePath     string
	videoPath     string
	audioPath     string
	imageEditPath string

	textModel      string
	imageModel     string
	videoModel     string
	audioModel     string
	imageEditModel string

	pollInterval    time.Duration
	pollMaxAttempts int

	httpClient *http.Client
	logger     *infra.Logger
}

var _ generation.Generator = (*Client)(nil)

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 45 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = infra.DefaultDashScopeBaseURL
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	pollMaxAttempts := opts.PollMaxAttempts
	if pollMaxAttempts <= 0 {
		pollMaxAttempts = 60
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:          strings.TrimSpace(opts.APIKey),
		baseURL:         baseURL,
		textPath:        defaultString(opts.TextPath, infra.DefaultTextPath),
		imagePath:       defaultString(opts.ImagePath, infra.DefaultImagePath),
		videoPath:       defaultString(opts.VideoPath, infra.DefaultVideoPath),
		audioPath:       defaultString(opts.AudioPath, infra.DefaultAudioPath),
		imageEditPath:   defaultString(opts.ImageEditPath, infra.DefaultImageEditPath),
		textModel:       defaultString(opts.TextModel, infra.DefaultTextModel),
		imageModel:      defaultString(opts.ImageModel, infra.DefaultImageModel),
		videoModel:      defaultString(opts.VideoModel, infra.DefaultVideoModel),
		audioModel:      defaultString(opts.AudioModel, infra.DefaultAudioModel),
		imageEditModel:  defaultString(opts.ImageEditModel, infra.DefaultImageEditModel),
		pollInterval:    pollInterval,
		pollMaxAttempts: pollMaxAttempts,
		httpClient:      httpClient,
		logger:          logger,
	}, nil
}

// FromConfig builds client options out of the process-wide configuration.
func FromConfig(cfg *infra.Config, logger *infra.Logger) Options {
	return Options{
		APIKey:          cfg.DashScopeAPIKey,
		BaseURL:         cfg.DashScopeBaseURL,
		TextPath:        cfg.TextPath,
		ImagePath:       cfg.ImagePath,
		VideoPath:       cfg.VideoPath,
		AudioPath:       cfg.AudioPath,
		ImageEditPath:   cfg.ImageEditPath,
		TextModel:       cfg.TextModel,
		ImageModel:      cfg.ImageModel,
		VideoModel:      cfg.VideoModel,
		AudioModel:      cfg.AudioModel,
		ImageEditModel:  cfg.ImageEditModel,
		PollInterval:    cfg.PollInterval,
		PollMaxAttempts: cfg.PollMaxAttempts,
		Logger:          logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, async bool, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("dashscope: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("dashscope: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if async {
		req.Header.Set(asyncHeaderName, asyncHeaderValue)
	}
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("dashscope: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dashscope: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("dashscope: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return upstreamStatusError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &generation.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    "Invalid response from DashScope",
		}
	}
	return nil
}

// upstreamStatusError turns a non-2xx response into an error that carries the
// upstream status code and whatever detail the body provides.
func upstreamStatusError(status int, raw []byte) error {
	var detail errorResponse
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Message != "" {
		return &generation.UpstreamError{
			StatusCode: status,
			Message:    fmt.Sprintf("DashScope error: %s (%s)", detail.Message, detail.Code),
		}
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = http.StatusText(status)
	}
	return &generation.UpstreamError{
		StatusCode: status,
		Message:    fmt.Sprintf("DashScope error: %s", text),
	}
}

// apiError maps a business error reported inside a 2xx body to an upstream
// failure. DashScope signals those with a non-empty code field.
func apiError(code, message string) error {
	if code == "" {
		return nil
	}
	return &generation.UpstreamError{
		StatusCode: http.StatusBadGateway,
		Message:    fmt.Sprintf("DashScope error: %s (%s)", message, code),
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
