package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Manavarya09/Synthia-Studio/internal/http/handlers"
	"github.com/Manavarya09/Synthia-Studio/internal/infra"
	"github.com/Manavarya09/Synthia-Studio/internal/providers/dashscope"
)

// fakeDashScope plays both the synchronous generation endpoints and the
// asynchronous task lifecycle so the full stack, router through provider
// client, can be exercised without the real API.
type fakeDashScope struct {
	mu         sync.Mutex
	pollCount  int
	taskStates []string
}

func (f *fakeDashScope) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "text-generation"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"output": map[string]any{
					"choices": []any{
						map[string]any{"message": map[string]any{"content": "generated copy"}},
					},
				},
			})
		case strings.Contains(r.URL.Path, "video-generation"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"output": map[string]any{"task_id": "task-777", "task_status": "PENDING"},
			})
		case strings.HasPrefix(r.URL.Path, "/tasks/"):
			f.mu.Lock()
			idx := f.pollCount
			if idx >= len(f.taskStates) {
				idx = len(f.taskStates) - 1
			}
			status := f.taskStates[idx]
			f.pollCount++
			f.mu.Unlock()
			output := map[string]any{"task_id": "task-777", "task_status": status}
			if status == "SUCCEEDED" {
				output["video_url"] = "https://cdn.test/task-777.mp4"
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"output": output})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestStack(t *testing.T, upstream string) http.Handler {
	t.Helper()
	cfg := &infra.Config{
		AppEnv:           "test",
		PingMessage:      "synthia backend is running",
		DashScopeAPIKey:  "test-key",
		DashScopeBaseURL: upstream,
		PollInterval:     time.Millisecond,
		PollMaxAttempts:  10,
		RateLimitPerMin:  1000,
		DefaultLocale:    "en",
	}
	logger := infra.Logger(zerolog.New(io.Discard))
	client, err := dashscope.NewClient(dashscope.FromConfig(cfg, &logger))
	require.NoError(t, err)
	app := handlers.NewApp(cfg, logger, client)
	return NewRouter(app, nil)
}

func TestRouterGenerateTextEndToEnd(t *testing.T) {
	upstream := httptest.NewServer((&fakeDashScope{}).handler())
	defer upstream.Close()

	router := newTestStack(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-text", strings.NewReader(`{"prompt":"write a tagline"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "generated copy", body["content"])
	require.Equal(t, "qwen-max", body["model"])
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterGenerateVideoDrivesTaskToCompletion(t *testing.T) {
	fake := &fakeDashScope{taskStates: []string{"PENDING", "RUNNING", "SUCCEEDED"}}
	upstream := httptest.NewServer(fake.handler())
	defer upstream.Close()

	router := newTestStack(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-video", strings.NewReader(`{"prompt":"a lighthouse at dusk"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "https://cdn.test/task-777.mp4", body["videoUrl"])
	require.Equal(t, 3, fake.pollCount)
}

func TestRouterGenerateVideoTimeoutSurfacesAs502(t *testing.T) {
	fake := &fakeDashScope{taskStates: []string{"RUNNING"}}
	upstream := httptest.NewServer(fake.handler())
	defer upstream.Close()

	router := newTestStack(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-video", strings.NewReader(`{"prompt":"a lighthouse at dusk"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "generation_timeout", body["code"])
	require.Contains(t, body["error"], "did not finish")
	require.Equal(t, 10, fake.pollCount)
}

func TestRouterPing(t *testing.T) {
	upstream := httptest.NewServer((&fakeDashScope{}).handler())
	defer upstream.Close()

	router := newTestStack(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "synthia backend is running", body["message"])
}

func TestRouterHealthz(t *testing.T) {
	upstream := httptest.NewServer((&fakeDashScope{}).handler())
	defer upstream.Close()

	router := newTestStack(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterValidationNeverReachesUpstream(t *testing.T) {
	hit := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := newTestStack(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-image", strings.NewReader(`{"prompt":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, hit, "validation failures must not call upstream")
}

func TestRouterCORSPreflight(t *testing.T) {
	upstream := httptest.NewServer((&fakeDashScope{}).handler())
	defer upstream.Close()

	router := newTestStack(t, upstream.URL)

	req := httptest.NewRequest(http.MethodOptions, "/api/generate-text", nil)
	req.Header.Set("Origin", "https://studio.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://studio.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
