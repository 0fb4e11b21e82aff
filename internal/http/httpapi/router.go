package httpapi

import (
	"net/http"
	"time"

	"signage/internal/http/handlers"
	appmw "signage/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options configures the cross-cutting middleware of the router.
type Options struct {
	Logger          zerolog.Logger
	CORSOrigins     []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		appmw.RequestID,
		middleware.RealIP,
		appmw.Logger(opts.Logger),
		middleware.Recoverer,
		appmw.CORS(opts.CORSOrigins),
	)

	r.Get("/", app.Root)
	r.Get("/health", app.Health)
	r.Get("/openapi.json", app.OpenAPIJSON)
	r.Get("/docs", app.Docs)
	r.Get("/redoc", app.Docs)

	r.With(appmw.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/validate", app.Validate)

	return r
}
