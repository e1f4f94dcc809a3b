package handlers

import (
	"net/http"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

type editImageRequest struct {
	ImageURL       string `json:"imageUrl"`
	EditPrompt     string `json:"editPrompt"`
	NegativePrompt string `json:"negativePrompt"`
}

type editImageResponse struct {
	EditedImages  []string `json:"editedImages"`
	Model         string   `json:"model"`
	OriginalImage string   `json:"originalImage"`
}

func (a *App) EditImage(w http.ResponseWriter, r *http.Request) {
	var req editImageRequest
	if err := a.decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required field: imageUrl")
		return
	}
	if strings.TrimSpace(req.EditPrompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required field: editPrompt")
		return
	}
	if !a.requireAPIKey(w) {
		return
	}

	result, err := a.Generator.EditImage(r.Context(), generation.EditRequest{
		ImageURL:       req.ImageURL,
		EditPrompt:     req.EditPrompt,
		NegativePrompt: req.NegativePrompt,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, editImageResponse{
		EditedImages:  result.EditedImages,
		Model:         result.Model,
		OriginalImage: result.OriginalImage,
	})
}
