package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/logging"
)

// RouterConfig wires the HTTP surface.
type RouterConfig struct {
	Logger         zerolog.Logger
	WS             *WSHandler
	History        app.HistoryStore
	Metrics        http.Handler
	AllowedOrigins []string
}

type categoryView struct {
	ID    domain.Category `json:"id"`
	Title string          `json:"title"`
}

// NewRouter mounts health, metrics, catalog, history and websocket routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}
	r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
		views := make([]categoryView, 0, len(domain.Categories()))
		for _, c := range domain.Categories() {
			views = append(views, categoryView{ID: c, Title: c.Title()})
		}
		respondJSON(w, http.StatusOK, views)
	})
	if cfg.History != nil {
		r.Get("/history", historyHandler(cfg.History))
	}
	if cfg.WS != nil {
		r.Get("/ws", cfg.WS.ServeWS)
	}
	return r
}

func historyHandler(store app.HistoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())
		entries, err := store.ListAll(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("list history")
			respondJSON(w, http.StatusInternalServerError, errorPayload{Message: "history unavailable"})
			return
		}
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// requestLogger puts a request-scoped logger into the context and logs each request.
func requestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("path", r.URL.Path).
				Logger()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(logging.IntoContext(r.Context(), logger)))
			logger.Debug().
				Str("method", r.Method).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request served")
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
