package generation

import "context"

// TextRequest asks for free-form written content.
type TextRequest struct {
	Prompt      string
	ContentType string
	Tone        string
	Locale      string
}

// TextResult is the normalized text artifact.
type TextResult struct {
	Content string
	Model   string
}

// ImageRequest asks for one or more generated images.
type ImageRequest struct {
	Prompt      string
	ImageType   string
	Style       string
	AspectRatio string
	Quality     string
}

// ImageResult carries the URLs of every generated image.
type ImageResult struct {
	Images []string
	Model  string
}

// VideoRequest asks for a text-to-video generation.
type VideoRequest struct {
	Prompt     string
	VideoType  string
	Duration   int
	Resolution string
	FPS        int
}

// VideoResult is the normalized video artifact.
type VideoResult struct {
	VideoURL string
	Model    string
}

// PromoVideoRequest asks for a promotional video built from an optional
// script and visual theme on top of the base prompt.
type PromoVideoRequest struct {
	Prompt      string
	Script      string
	VisualTheme string
	Duration    int
	AspectRatio string
	Quality     int
}

// PromoVideoResult echoes the effective duration and aspect ratio alongside
// the video artifact.
type PromoVideoResult struct {
	VideoURL    string
	Model       string
	Duration    int
	AspectRatio string
}

// SpeechRequest asks for synthesized speech from raw text.
type SpeechRequest struct {
	Text      string
	AudioType string
	Voice     string
	Language  string
	Speed     float64
	Pitch     float64
}

// SpeechResult is the normalized audio artifact. AudioURL is either a remote
// URL or a base64 data URI, depending on what the provider returned.
type SpeechResult struct {
	AudioURL string
	Model    string
}

// EditRequest asks for instruction-driven edits of an existing image.
type EditRequest struct {
	ImageURL       string
	EditPrompt     string
	NegativePrompt string
}

// EditResult carries the edited image URLs plus the source image for the UI.
type EditResult struct {
	EditedImages  []string
	Model         string
	OriginalImage string
}

// SlidesRequest asks for a slide deck synthesized from raw notes.
type SlidesRequest struct {
	Notes      string
	SlideStyle string
	VoiceStyle string
	Subject    string
	Locale     string
}

// SlidesResult carries the deck as a single text blob the caller parses further.
type SlidesResult struct {
	Content string
	Model   string
}

// Generator is the single seam between the HTTP handlers and the upstream
// provider. Implementations translate these normalized requests into
// provider-specific calls and must only return results carrying at least one
// non-empty artifact.
type Generator interface {
	GenerateText(ctx context.Context, req TextRequest) (*TextResult, error)
	GenerateImages(ctx context.Context, req ImageRequest) (*ImageResult, error)
	GenerateVideo(ctx context.Context, req VideoRequest) (*VideoResult, error)
	GeneratePromoVideo(ctx context.Context, req PromoVideoRequest) (*PromoVideoResult, error)
	GenerateSpeech(ctx context.Context, req SpeechRequest) (*SpeechResult, error)
	EditImage(ctx context.Context, req EditRequest) (*EditResult, error)
	NotesToSlides(ctx context.Context, req SlidesRequest) (*SlidesResult, error)
}
