package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"framecraft/internal/httpapi/handlers"
	"framecraft/internal/httpkit"
	"framecraft/internal/pkg/logger"
	"framecraft/internal/pkg/middleware"
)

type Options struct {
	AllowedOrigins []string
	// RequestTimeout bounds each request, provider calls included.
	RequestTimeout time.Duration
}

func NewRouter(d handlers.Deps, opts Options) http.Handler {
	log := d.Log
	if log == nil {
		log = logger.Discard()
	}
	d.Log = log

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAgeSeconds:  600,
	}))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	h := handlers.New(d)

	// ---- HEALTH ----
	r.Get("/health", h.Health)

	// ---- RENDERS ----
	r.Post("/shotstack", middleware.WrapHandler(log, h.PostRender))
	r.Get("/shotstack/{id}", middleware.WrapHandler(log, h.GetRender))

	return r
}
