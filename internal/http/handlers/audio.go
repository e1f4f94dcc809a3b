package handlers

import (
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

type generateAudioRequest struct {
	Text      string  `json:"text"`
	AudioType string  `json:"audioType"`
	Voice     string  `json:"voice"`
	Language  string  `json:"language"`
	Speed     float64 `json:"speed"`
	Pitch     float64 `json:"pitch"`
}

type generateAudioResponse struct {
	AudioURL string `json:"audioUrl"`
	Model    string `json:"model"`
}

func (a *App) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	var req generateAudioRequest
	if err := a.decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required field: text")
		return
	}
	if !a.requireAPIKey(w) {
		return
	}

	result, err := a.Generator.GenerateSpeech(r.Context(), generation.SpeechRequest{
		Text:      req.Text,
		AudioType: req.AudioType,
		Voice:     req.Voice,
		Language:  req.Language,
		Speed:     req.Speed,
		Pitch:     req.Pitch,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, generateAudioResponse{AudioURL: result.AudioURL, Model: result.Model})
}
