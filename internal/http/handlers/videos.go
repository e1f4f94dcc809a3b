package handlers

import (
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

type generateVideoRequest struct {
	Prompt     string `json:"prompt"`
	VideoType  string `json:"videoType"`
	Duration   int    `json:"duration"`
	Resolution string `json:"resolution"`
	FPS        int    `json:"fps"`
}

type generateVideoResponse struct {
	VideoURL string `json:"videoUrl"`
	Model    string `json:"model"`
}

// GenerateVideo blocks this request on the provider's asynchronous task until
// it reaches a terminal state or the poll budget runs out. Concurrent
// requests each drive their own independent poll loop.
func (a *App) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req generateVideoRequest
	if err := a.decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required field: prompt")
		return
	}
	if !a.requireAPIKey(w) {
		return
	}

	result, err := a.Generator.GenerateVideo(r.Context(), generation.VideoRequest{
		Prompt:     req.Prompt,
		VideoType:  req.VideoType,
		Duration:   req.Duration,
		Resolution: req.Resolution,
		FPS:        req.FPS,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, generateVideoResponse{VideoURL: result.VideoURL, Model: result.Model})
}
