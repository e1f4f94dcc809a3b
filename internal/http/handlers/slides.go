package handlers

import (
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
	"github.com/Manavarya09/Synthia-Studio/internal/middleware"
)

type notesToSlidesRequest struct {
	Notes      string `json:"notes"`
	SlideStyle string `json:"slideStyle"`
	VoiceStyle string `json:"voiceStyle"`
	Subject    string `json:"subject"`
}

type notesToSlidesResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

func (a *App) NotesToSlides(w http.ResponseWriter, r *http.Request) {
	var req notesToSlidesRequest
	if err := a.decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Notes) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required field: notes")
		return
	}
	if !a.requireAPIKey(w) {
		return
	}

	result, err := a.Generator.NotesToSlides(r.Context(), generation.SlidesRequest{
		Notes:      req.Notes,
		SlideStyle: req.SlideStyle,
		VoiceStyle: req.VoiceStyle,
		Subject:    req.Subject,
		Locale:     middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, notesToSlidesResponse{Content: result.Content, Model: result.Model})
}
