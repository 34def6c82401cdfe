// Package server exposes the cached tests over HTTP. Answers never leave
// the server in question listings; clients learn correctness only through
// the check endpoint.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pdfquiz/internal/config"
	"pdfquiz/internal/models"
	"pdfquiz/internal/store"
)

// UploadFunc parses uploaded PDF bytes into a test. The file name feeds
// the test id and display name.
type UploadFunc func(data []byte, filename string) (*models.Test, error)

type Server struct {
	cache  *store.Cache
	cfg    config.Config
	logger *zap.Logger
	upload UploadFunc
}

func New(cache *store.Cache, cfg config.Config, upload UploadFunc, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cache: cache, cfg: cfg, logger: logger, upload: upload}
}

// Router builds the HTTP handler with the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Get("/tests", s.handleListTests)
		api.Get("/tests/{testID}/questions", s.handleQuestions)
		api.Post("/tests/{testID}/check/{questionID}", s.handleCheck)
		api.Post("/upload", s.handleUpload)
	})

	return r
}

type apiResponse struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, res apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}
