// Package server implements the LevelUp HTTP API consumed by the terminal client.
package server

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/at-ishikawa/levelup/internal/flashcard"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

const apiV1Prefix = "/api/v1"

type Options struct {
	App     string
	Version string
	// RequestsPerMinute limits requests per client IP. Zero disables the limit.
	RequestsPerMinute int
}

// Handler serves flashcards and generated quizzes from a flashcard.Repository.
type Handler struct {
	repository flashcard.Repository
	options    Options
	validate   *validator.Validate
	trans      ut.Translator
	metrics    *metrics

	mu      sync.Mutex
	rand    *rand.Rand
	quizzes []quizResponse
}

func NewHandler(repository flashcard.Repository, options Options) (*Handler, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}
	return &Handler{
		repository: repository,
		options:    options,
		validate:   validate,
		trans:      trans,
		metrics:    newMetrics(),
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Routes returns the router with every API route registered.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(h.metrics.middleware)
	r.Use(middleware.Recoverer)
	if h.options.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(h.options.RequestsPerMinute, time.Minute))
	}

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", h.metrics.handler())
	r.Route(apiV1Prefix, func(r chi.Router) {
		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", h.ListFlashcards)
			r.Post("/", h.CreateFlashcard)
			r.Get("/{id}", h.GetFlashcard)
		})
		r.Route("/quiz", func(r chi.Router) {
			r.Get("/", h.ListQuizzes)
			r.Post("/generate", h.GenerateQuiz)
		})
	})
	return r
}

type healthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		App:     h.options.App,
		Version: h.options.Version,
	})
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Error("failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}

// requestLogger logs each request once it has been served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Default().Info("HTTP request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
