// Package api exposes the draft board over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/malexanderboyd/pwr9-draftboard/internal"
	"github.com/malexanderboyd/pwr9-draftboard/internal/director"
)

type RouterConfig struct {
	Director *director.Director
	// WebRoot is served at /. Empty disables static files.
	WebRoot        string
	AllowedOrigins []string
	Logger         *zap.SugaredLogger
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = internal.GetLogger().SugaredLogger
	}
	h := NewHandler(cfg.Director, logger)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", ConfirmRemoveHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/config", h.GetConfig)
		r.Get("/board", h.GetBoard)
		r.Get("/summary", h.GetSummary)
		r.Get("/slots/{pick}", h.GetSlot)

		r.Route("/picks", func(r chi.Router) {
			r.Get("/", h.ListPicks)
			r.Post("/", h.AddPick)
			r.Delete("/", h.ResetBoard)
			r.Get("/search", h.SearchPicks)
			r.Delete("/{pick}", h.RemovePick)
		})
	})

	if cfg.Director != nil {
		router.Get("/ws", cfg.Director.ServeHTTP)
	}
	if cfg.WebRoot != "" {
		router.Handle("/*", http.FileServer(http.Dir(cfg.WebRoot)))
	}
	return router
}

func requestLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debugw("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", chiMiddleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
