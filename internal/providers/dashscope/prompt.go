package dashscope

import (
	"fmt"
	"strings"

	"github.com/Manavarya09/Synthia-Studio/internal/generation"
)

const textSystemPrompt = "You are a helpful writing assistant. Produce well-structured, clear, and concise content that matches the requested format and tone."

const slidesSystemPrompt = "You are a helpful assistant. Convert notes into a structured presentation with slides, summary, and suggested visuals."

// buildTextContent assembles the user message for text generation. The
// locale, when known and non-English, is added as a hint so the model answers
// in the caller's language.
func buildTextContent(req generation.TextRequest) string {
	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = "general"
	}
	tone := strings.TrimSpace(req.Tone)
	if tone == "" {
		tone = "professional"
	}
	content := fmt.Sprintf("Content type: %s\nTone: %s\n\nPrompt: %s", contentType, tone, req.Prompt)
	if locale := strings.TrimSpace(req.Locale); locale != "" && locale != "en" {
		content += "\nLanguage: " + locale
	}
	return content
}

// buildSlidesContent assembles the user message for notes-to-slides.
func buildSlidesContent(req generation.SlidesRequest) string {
	content := fmt.Sprintf(
		"Convert these notes into a presentation with slides.\nNotes: %s\nSubject: %s\nSlide Style: %s\nVoice Style: %s\nFormat: Plain text with clear slide separation and a summary at the end.",
		req.Notes, req.Subject, req.SlideStyle, req.VoiceStyle,
	)
	if locale := strings.TrimSpace(req.Locale); locale != "" && locale != "en" {
		content += "\nLanguage: " + locale
	}
	return content
}

// buildPromoPrompt enriches a promo video prompt with the script and visual
// theme context.
func buildPromoPrompt(req generation.PromoVideoRequest) string {
	theme := strings.TrimSpace(req.VisualTheme)
	if theme == "" {
		theme = "corporate"
	}
	if script := strings.TrimSpace(req.Script); script != "" {
		return fmt.Sprintf("Create a promotional video based on this script: %q. Visual style: %s. %s", script, theme, req.Prompt)
	}
	return fmt.Sprintf("Create a promotional video with %s visual style. %s", theme, req.Prompt)
}

// promoResolution maps a UI aspect ratio onto the concrete resolution the
// video model expects.
func promoResolution(aspectRatio string) string {
	switch aspectRatio {
	case "16:9":
		return "1280x720"
	case "1:1":
		return "720x720"
	case "9:16":
		return "720x1280"
	case "4:5":
		return "720x900"
	default:
		return "1280x720"
	}
}
