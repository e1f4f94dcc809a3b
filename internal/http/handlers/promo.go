package handlers

import (
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

type generatePromoVideoRequest struct {
	Prompt      string `json:"prompt"`
	Script      string `json:"script"`
	VisualTheme string `json:"visualTheme"`
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspectRatio"`
	Quality     int    `json:"quality"`
}

type generatePromoVideoResponse struct {
	VideoURL    string `json:"videoUrl"`
	Model       string `json:"model"`
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspectRatio"`
}

func (a *App) GeneratePromoVideo(w http.ResponseWriter, r *http.Request) {
	var req generatePromoVideoRequest
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

	result, err := a.Generator.GeneratePromoVideo(r.Context(), generation.PromoVideoRequest{
		Prompt:      req.Prompt,
		Script:      req.Script,
		VisualTheme: req.VisualTheme,
		Duration:    req.Duration,
		AspectRatio: req.AspectRatio,
		Quality:     req.Quality,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, generatePromoVideoResponse{
		VideoURL:    result.VideoURL,
		Model:       result.Model,
		Duration:    result.Duration,
		AspectRatio: result.AspectRatio,
	})
}
