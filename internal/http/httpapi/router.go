package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shilpkart/server/internal/http/handlers"
	"github.com/shilpkart/server/internal/infra"
	"github.com/shilpkart/server/internal/middleware"
)

// NewRouter wires the full route table. Generation endpoints sit behind a
// per-IP rate limit because each one spends a paid backend call.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.I18N(cfg.DefaultLocale, lookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Post("/v1/auth/register", app.Register)

	r.Route("/v1/products", func(r chi.Router) {
		r.Post("/", app.ProductsCreate)
		r.Get("/", app.ProductsList)
		r.Get("/{product_id}", app.ProductGet)
	})

	r.Route("/v1/stories", func(r chi.Router) {
		r.Post("/", app.StoriesCreate)
		r.Get("/", app.StoriesList)
		r.Get("/artisan/{artisan_id}", app.StoriesByArtisan)
	})

	r.Route("/v1/ai", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
		r.Post("/analyze-product", app.AIAnalyzeProduct)
		r.Post("/generate-story", app.AIGenerateStory)
		r.Post("/social-content", app.AISocialContent)
		r.Post("/translate", app.AITranslate)
		r.Get("/recommendations/{user_id}", app.AIRecommendations)
	})

	return r
}
