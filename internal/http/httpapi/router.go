package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Manavarya09/Synthia-Studio/internal/http/handlers"
	"github.com/Manavarya09/Synthia-Studio/internal/middleware"
)

// NewRouter wires the generation endpoints behind the shared middleware
// chain. The country lookup is optional; without it locale detection relies
// on request headers alone.
func NewRouter(app *handlers.App, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		middleware.Logger(app.Logger),
		chimiddleware.Recoverer,
		middleware.CORS(app.Config.CORSAllowedOrigins),
		middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute),
		middleware.Locale(app.Config.DefaultLocale, lookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", app.Ping)
		r.Post("/generate-text", app.GenerateText)
		r.Post("/generate-image", app.GenerateImage)
		r.Post("/generate-video", app.GenerateVideo)
		r.Post("/generate-promo-video", app.GeneratePromoVideo)
		r.Post("/generate-audio", app.GenerateAudio)
		r.Post("/edit-image", app.EditImage)
		r.Post("/notes-to-slides", app.NotesToSlides)
	})

	return r
}
