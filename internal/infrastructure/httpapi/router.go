package httpapi

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"
)

const accessLogService = "lindia-b"

type RouterConfig struct {
	Handlers       *Handlers
	Metrics        http.Handler
	AllowedOrigins []string
	// AccessLog enables the httplog request logger.
	AccessLog bool
}

func NewRouter(cfg RouterConfig) chi.Router {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.AccessLog {
		r.Use(httplog.RequestLogger(httplog.NewLogger(accessLogService, httplog.Options{JSON: true})))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(corsOptions(origins)))

	h := cfg.Handlers
	if h == nil {
		h = NewHandlers(nil, nil, nil)
	}

	r.Get("/health", h.Health)
	r.Get("/", h.Root)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/junior", h.Junior)
		r.Post("/research", h.Research)
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	return r
}

// corsOptions echoes the request origin when every origin is allowed:
// browsers reject a literal "*" on credentialed requests.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if slices.Contains(origins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}
	return opts
}
