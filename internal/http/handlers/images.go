package handlers

import (
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

type generateImageRequest struct {
	Prompt      string `json:"prompt"`
	ImageType   string `json:"imageType"`
	Style       string `json:"style"`
	AspectRatio string `json:"aspectRatio"`
	Quality     string `json:"quality"`
}

type generateImageResponse struct {
	Images []string `json:"images"`
	Model  string   `json:"model"`
}

func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
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

	result, err := a.Generator.GenerateImages(r.Context(), generation.ImageRequest{
		Prompt:      req.Prompt,
		ImageType:   req.ImageType,
		Style:       req.Style,
		AspectRatio: req.AspectRatio,
		Quality:     req.Quality,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, generateImageResponse{Images: result.Images, Model: result.Model})
}
