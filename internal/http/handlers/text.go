package handlers

import (
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
	"github.com/Manavarya09/Synthia-Studio/internal/middleware"
)

type generateTextRequest struct {
	Prompt      string `json:"prompt"`
	ContentType string `json:"contentType"`
	Tone        string `json:"tone"`
}

type generateTextResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

func (a *App) GenerateText(w http.ResponseWriter, r *http.Request) {
	var req generateTextRequest
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

	result, err := a.Generator.GenerateText(r.Context(), generation.TextRequest{
		Prompt:      req.Prompt,
		ContentType: req.ContentType,
		Tone:        req.Tone,
		Locale:      middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, generateTextResponse{Content: result.Content, Model: result.Model})
}
