package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DashScope endpoint and model defaults. Each one can be overridden through
// the environment variables consumed by LoadConfig.
const (
	DefaultDashScopeBaseURL = "https://dashscope-intl.aliyuncs.com/api/v1"

	DefaultTextPath      = "/services/aigc/text-generation/generation"
	DefaultImagePath     = "/services/aigc/multimodal-generation/generation"
	DefaultVideoPath     = "/services/aigc/video-generation/video-synthesis"
	DefaultAudioPath     = "/services/aigc/speech-synthesis/generation"
	DefaultImageEditPath = "/services/aigc/text2image-editing/image-editing"

	DefaultTextModel      = "qwen-max"
	DefaultImageModel     = "qwen-image"
	DefaultVideoModel     = "wan2.2-t2v-plus"
	DefaultAudioModel     = "qwen-audio"
	DefaultImageEditModel = "qwen-image-edit"
)

// Config represents application configuration loaded from environment variables.
// It is read once at startup and treated as immutable afterwards.
type Config struct {
	AppEnv      string
	Port        string
	PingMessage string

	DashScopeAPIKey  string
	DashScopeBaseURL string

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

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	RateLimitPerMin    int
	CORSAllowedOrigins []string
	GeoIPDBPath        string
	DefaultLocale      string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The DashScope API key is deliberately not required
// here: its absence surfaces as a 500 on generation endpoints so that the
// server can still boot and answer /api/ping in unconfigured environments.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		PingMessage: getEnv("PING_MESSAGE", "ping"),

		DashScopeAPIKey:  os.Getenv("DASHSCOPE_API_KEY"),
		DashScopeBaseURL: getEnv("DASHSCOPE_BASE_URL", DefaultDashScopeBaseURL),

		TextPath:      getEnv("DASHSCOPE_TEXT_PATH", DefaultTextPath),
		ImagePath:     getEnv("DASHSCOPE_IMAGE_PATH", DefaultImagePath),
		VideoPath:     getEnv("DASHSCOPE_VIDEO_PATH", DefaultVideoPath),
		AudioPath:     getEnv("DASHSCOPE_AUDIO_PATH", DefaultAudioPath),
		ImageEditPath: getEnv("DASHSCOPE_IMAGE_EDIT_PATH", DefaultImageEditPath),

		TextModel:      getEnv("DASHSCOPE_TEXT_MODEL", DefaultTextModel),
		ImageModel:     getEnv("DASHSCOPE_IMAGE_MODEL", DefaultImageModel),
		VideoModel:     getEnv("DASHSCOPE_VIDEO_MODEL", DefaultVideoModel),
		AudioModel:     getEnv("DASHSCOPE_AUDIO_MODEL", DefaultAudioModel),
		ImageEditModel: getEnv("DASHSCOPE_IMAGE_EDIT_MODEL", DefaultImageEditModel),

		PollInterval:    time.Second * time.Duration(getEnvInt("DASHSCOPE_POLL_INTERVAL_SECONDS", 5)),
		PollMaxAttempts: getEnvInt("DASHSCOPE_POLL_MAX_ATTEMPTS", 60),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 330)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),

		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("DASHSCOPE_POLL_INTERVAL_SECONDS must be positive")
	}
	if cfg.PollMaxAttempts <= 0 {
		return nil, fmt.Errorf("DASHSCOPE_POLL_MAX_ATTEMPTS must be positive")
	}
	// A write timeout below the poll ceiling would cut off successful video
	// generations right before they complete.
	if ceiling := cfg.PollInterval * time.Duration(cfg.PollMaxAttempts); cfg.HTTPWriteTimeout <= ceiling {
		return nil, fmt.Errorf("HTTP_WRITE_TIMEOUT_SECONDS must exceed the poll ceiling of %s", ceiling)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
