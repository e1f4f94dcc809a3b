package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
	"github.com/Manavarya09/Synthia-Studio/internal/infra"
)

// stubGenerator counts invocations and answers with canned results so handler
// tests can assert both the response shape and that validation short-circuits
// before the provider is touched.
type stubGenerator struct {
	calls int

	textResult   *generation.TextResult
	imageResult  *generation.ImageResult
	videoResult  *generation.VideoResult
	promoResult  *generation.PromoVideoResult
	speechResult *generation.SpeechResult
	editResult   *generation.EditResult
	slidesResult *generation.SlidesResult
	err          error

	lastTextReq   generation.TextRequest
	lastSlidesReq generation.SlidesRequest
}

func (s *stubGenerator) GenerateText(_ context.Context, req generation.TextRequest) (*generation.TextResult, error) {
	s.calls++
	s.lastTextReq = req
	return s.textResult, s.err
}

func (s *stubGenerator) GenerateImages(_ context.Context, req generation.ImageRequest) (*generation.ImageResult, error) {
	s.calls++
	return s.imageResult, s.err
}

func (s *stubGenerator) GenerateVideo(_ context.Context, req generation.VideoRequest) (*generation.VideoResult, error) {
	s.calls++
	return s.videoResult, s.err
}

func (s *stubGenerator) GeneratePromoVideo(_ context.Context, req generation.PromoVideoRequest) (*generation.PromoVideoResult, error) {
	s.calls++
	return s.promoResult, s.err
}

func (s *stubGenerator) GenerateSpeech(_ context.Context, req generation.SpeechRequest) (*generation.SpeechResult, error) {
	s.calls++
	return s.speechResult, s.err
}

func (s *stubGenerator) EditImage(_ context.Context, req generation.EditRequest) (*generation.EditResult, error) {
	s.calls++
	return s.editResult, s.err
}

func (s *stubGenerator) NotesToSlides(_ context.Context, req generation.SlidesRequest) (*generation.SlidesResult, error) {
	s.calls++
	s.lastSlidesReq = req
	return s.slidesResult, s.err
}

func newTestApp(gen *stubGenerator) *App {
	cfg := &infra.Config{
		DashScopeAPIKey: "test-key",
		PingMessage:     "pong",
	}
	return NewApp(cfg, zerolog.New(io.Discard), gen)
}

func decodeBody(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestValidationRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		handler func(*App) http.HandlerFunc
		body    string
		field   string
	}{
		{"text", func(a *App) http.HandlerFunc { return a.GenerateText }, `{"tone":"casual"}`, "prompt"},
		{"image", func(a *App) http.HandlerFunc { return a.GenerateImage }, `{"style":"flat"}`, "prompt"},
		{"video", func(a *App) http.HandlerFunc { return a.GenerateVideo }, `{"duration":5}`, "prompt"},
		{"promo", func(a *App) http.HandlerFunc { return a.GeneratePromoVideo }, `{"script":"hi"}`, "prompt"},
		{"audio", func(a *App) http.HandlerFunc { return a.GenerateAudio }, `{"voice":"x"}`, "text"},
		{"edit missing url", func(a *App) http.HandlerFunc { return a.EditImage }, `{"editPrompt":"crop"}`, "imageUrl"},
		{"edit missing prompt", func(a *App) http.HandlerFunc { return a.EditImage }, `{"imageUrl":"https://x/a.png"}`, "editPrompt"},
		{"slides", func(a *App) http.HandlerFunc { return a.NotesToSlides }, `{"subject":"math"}`, "notes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{}
			app := newTestApp(gen)

			rec := postJSON(tc.handler(app), tc.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, decodeBody(rec, &body))
			require.Equal(t, "Missing required field: "+tc.field, body["error"])
			require.Equal(t, "bad_request", body["code"])
			require.Zero(t, gen.calls, "provider must not be called on validation failure")
		})
	}
}

func TestInvalidJSONPayload(t *testing.T) {
	gen := &stubGenerator{}
	app := newTestApp(gen)

	rec := postJSON(app.GenerateText, `{"prompt": `)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, gen.calls)
}

func TestMissingAPIKeyShortCircuits(t *testing.T) {
	gen := &stubGenerator{}
	app := newTestApp(gen)
	app.Config.DashScopeAPIKey = ""

	rec := postJSON(app.GenerateText, `{"prompt":"hello"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, "Server misconfigured: missing DASHSCOPE_API_KEY", body["error"])
	require.Equal(t, "server_misconfigured", body["code"])
	require.Zero(t, gen.calls)
}

func TestGenerateTextSuccess(t *testing.T) {
	content := "  exact content ✓\nwith newline  "
	gen := &stubGenerator{textResult: &generation.TextResult{Content: content, Model: "qwen-max"}}
	app := newTestApp(gen)

	rec := postJSON(app.GenerateText, `{"prompt":"write","contentType":"blog","tone":"witty"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body generateTextResponse
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, content, body.Content)
	require.Equal(t, "qwen-max", body.Model)
	require.Equal(t, 1, gen.calls)
	require.Equal(t, "blog", gen.lastTextReq.ContentType)
	require.Equal(t, "witty", gen.lastTextReq.Tone)
	require.Equal(t, "en", gen.lastTextReq.Locale)
}

func TestGenerateImageSuccess(t *testing.T) {
	gen := &stubGenerator{imageResult: &generation.ImageResult{
		Images: []string{"https://cdn.test/a.png", "https://cdn.test/b.png"},
		Model:  "qwen-image",
	}}
	app := newTestApp(gen)

	rec := postJSON(app.GenerateImage, `{"prompt":"a mountain"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body generateImageResponse
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, []string{"https://cdn.test/a.png", "https://cdn.test/b.png"}, body.Images)
	require.Equal(t, "qwen-image", body.Model)
}

func TestGenerateVideoSuccess(t *testing.T) {
	gen := &stubGenerator{videoResult: &generation.VideoResult{
		VideoURL: "https://cdn.test/out.mp4",
		Model:    "wan2.2-t2v-plus",
	}}
	app := newTestApp(gen)

	rec := postJSON(app.GenerateVideo, `{"prompt":"drone shot","duration":8,"fps":30}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body generateVideoResponse
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, "https://cdn.test/out.mp4", body.VideoURL)
	require.Equal(t, "wan2.2-t2v-plus", body.Model)
}

func TestGeneratePromoVideoSuccess(t *testing.T) {
	gen := &stubGenerator{promoResult: &generation.PromoVideoResult{
		VideoURL:    "https://cdn.test/promo.mp4",
		Model:       "wan2.2-t2v-plus",
		Duration:    20,
		AspectRatio: "16:9",
	}}
	app := newTestApp(gen)

	rec := postJSON(app.GeneratePromoVideo, `{"prompt":"show the product"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body generatePromoVideoResponse
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, "https://cdn.test/promo.mp4", body.VideoURL)
	require.Equal(t, 20, body.Duration)
	require.Equal(t, "16:9", body.AspectRatio)
}

func TestGenerateAudioSuccess(t *testing.T) {
	gen := &stubGenerator{speechResult: &generation.SpeechResult{
		AudioURL: "data:audio/mpeg;base64,Zm9v",
		Model:    "qwen-audio",
	}}
	app := newTestApp(gen)

	rec := postJSON(app.GenerateAudio, `{"text":"hello listeners"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body generateAudioResponse
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, "data:audio/mpeg;base64,Zm9v", body.AudioURL)
}

func TestEditImageSuccess(t *testing.T) {
	gen := &stubGenerator{editResult: &generation.EditResult{
		EditedImages:  []string{"https://cdn.test/edited.png"},
		Model:         "qwen-image-edit",
		OriginalImage: "https://cdn.test/source.png",
	}}
	app := newTestApp(gen)

	rec := postJSON(app.EditImage, `{"imageUrl":"https://cdn.test/source.png","editPrompt":"crop"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body editImageResponse
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, []string{"https://cdn.test/edited.png"}, body.EditedImages)
	require.Equal(t, "https://cdn.test/source.png", body.OriginalImage)
}

func TestNotesToSlidesSuccess(t *testing.T) {
	gen := &stubGenerator{slidesResult: &generation.SlidesResult{
		Content: "Slide 1: Intro",
		Model:   "qwen-max",
	}}
	app := newTestApp(gen)

	rec := postJSON(app.NotesToSlides, `{"notes":"photosynthesis","subject":"biology"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body notesToSlidesResponse
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, "Slide 1: Intro", body.Content)
	require.Equal(t, "biology", gen.lastSlidesReq.Subject)
}

func TestFailMapsErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"upstream keeps status", &generation.UpstreamError{StatusCode: http.StatusServiceUnavailable, Message: "DashScope error: busy"}, http.StatusServiceUnavailable, "upstream_error"},
		{"shape drift is 502", &generation.UpstreamError{StatusCode: http.StatusBadGateway, Message: "Invalid response from DashScope"}, http.StatusBadGateway, "upstream_error"},
		{"timeout is 502", &generation.TimeoutError{TaskID: "t-1", Attempts: 60}, http.StatusBadGateway, "generation_timeout"},
		{"validation from provider", &generation.ValidationError{Field: "prompt"}, http.StatusBadRequest, "bad_request"},
		{"missing key", generation.ErrMissingAPIKey, http.StatusInternalServerError, "server_misconfigured"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{err: tc.err}
			app := newTestApp(gen)

			rec := postJSON(app.GenerateText, `{"prompt":"hello"}`)

			require.Equal(t, tc.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, decodeBody(rec, &body))
			require.Equal(t, tc.wantCode, body["code"])
			require.NotEmpty(t, body["error"])
			require.Equal(t, 1, gen.calls)
		})
	}
}

func TestUpstreamErrorMessageIsVerbatim(t *testing.T) {
	gen := &stubGenerator{err: &generation.UpstreamError{
		StatusCode: http.StatusTooManyRequests,
		Message:    "DashScope error: request rate exceeded (Throttling)",
	}}
	app := newTestApp(gen)

	rec := postJSON(app.GenerateText, `{"prompt":"hello"}`)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body map[string]string
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, "DashScope error: request rate exceeded (Throttling)", body["error"])
}

func TestPingAnswersConfiguredMessage(t *testing.T) {
	app := newTestApp(&stubGenerator{})
	app.Config.PingMessage = "synthia is alive"

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	app.Ping(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, "synthia is alive", body["message"])
}

func TestHealth(t *testing.T) {
	app := newTestApp(&stubGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	app.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, decodeBody(rec, &body))
	require.Equal(t, "ok", body["status"])
}
