// Command server exposes the keyforms engine as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/stem?word=<word>[&locale=<locale>]
//	GET  /api/inflection?word=<word>[&locale=<locale>]
//	POST /api/forms              body: Document
//	POST /api/forms/stems        body: {"document":{...},"stems":[...]}
//	POST /api/prominent-words    body: Document
//	POST /api/analyze            body: {"documents":[...]}
//	GET  /api/languages
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/cors"

	"github.com/cours-de-latin/keyforms"
)

// ---- JSON request and response types ------------------------------------

type stemResponse struct {
	Word     string `json:"word"`
	Language string `json:"language"`
	Stem     string `json:"stem"`
}

type formsForStemsRequest struct {
	Document keyforms.Document `json:"document"`
	Stems    []string          `json:"stems"`
}

type formsForStemsResponse struct {
	Groups []keyforms.StemWithForms `json:"groups"`
}

type prominentWordsResponse struct {
	ProminentWords []keyforms.ProminentWord `json:"prominentWords"`
}

type analyzeRequest struct {
	Documents []keyforms.Document `json:"documents"`
}

type analyzeResponse struct {
	Results []keyforms.Analysis `json:"results"`
}

type languagesResponse struct {
	Languages map[string]string `json:"languages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

type server struct {
	engine       *keyforms.Engine
	log          *slog.Logger
	workers      int
	maxBodyBytes int64
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// decode reads a JSON body into v and answers 400 or 413 on failure.
func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.writeError(w, http.StatusBadRequest, "body must be valid JSON")
		return false
	}
	return true
}

// wordAndLocale reads the word and locale query parameters. An explicit
// locale must belong to a registered language.
func (s *server) wordAndLocale(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
		return "", "", false
	}
	locale := r.URL.Query().Get("locale")
	if locale != "" && !s.engine.Registered(locale) {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("language of locale %q not found", locale))
		return "", "", false
	}
	return word, locale, true
}

// ---- handlers -----------------------------------------------------------

func (s *server) handleStem(w http.ResponseWriter, r *http.Request) {
	word, locale, ok := s.wordAndLocale(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, stemResponse{
		Word:     word,
		Language: s.engine.Language(locale).Code,
		Stem:     s.engine.Stem(word, locale),
	})
}

func (s *server) handleInflection(w http.ResponseWriter, r *http.Request) {
	word, locale, ok := s.wordAndLocale(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.engine.Inflect(word, locale))
}

func (s *server) handleForms(w http.ResponseWriter, r *http.Request) {
	var doc keyforms.Document
	if !s.decode(w, r, &doc) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.engine.MatchForms(doc))
}

func (s *server) handleFormsForStems(w http.ResponseWriter, r *http.Request) {
	var req formsForStemsRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.writeJSON(w, http.StatusOK, formsForStemsResponse{
		Groups: s.engine.FormsForStems(req.Document, req.Stems),
	})
}

func (s *server) handleProminentWords(w http.ResponseWriter, r *http.Request) {
	var doc keyforms.Document
	if !s.decode(w, r, &doc) {
		return
	}
	s.writeJSON(w, http.StatusOK, prominentWordsResponse{
		ProminentWords: s.engine.ProminentWords(doc),
	})
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	results, err := s.engine.AnalyzeAll(r.Context(), req.Documents, s.workers)
	if err != nil {
		s.log.Warn("analysis interrupted", "documents", len(req.Documents), "error", err)
		s.writeError(w, http.StatusServiceUnavailable, "analysis interrupted")
		return
	}
	s.writeJSON(w, http.StatusOK, analyzeResponse{Results: results})
}

func (s *server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, languagesResponse{Languages: s.engine.Languages()})
}

func newHandler(engine *keyforms.Engine, log *slog.Logger, cfg Config) http.Handler {
	s := &server{
		engine:       engine,
		log:          log,
		workers:      cfg.Workers,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = 1 << 20
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stem", s.handleStem)
	mux.HandleFunc("GET /api/inflection", s.handleInflection)
	mux.HandleFunc("POST /api/forms", s.handleForms)
	mux.HandleFunc("POST /api/forms/stems", s.handleFormsForStems)
	mux.HandleFunc("POST /api/prominent-words", s.handleProminentWords)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/languages", s.handleLanguages)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// ---- main ---------------------------------------------------------------

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "server configuration file")
	flag.Parse()

	cfg := MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func loadEngine(cfg Config, log *slog.Logger) (*keyforms.Engine, error) {
	opts := []keyforms.Option{
		keyforms.WithLogger(log),
		keyforms.WithMinOccurrences(cfg.MinOccurrences),
		keyforms.WithMaxProminentWords(cfg.MaxProminentWords),
	}
	if cfg.DataDir == "" {
		return keyforms.Default(opts...)
	}
	return keyforms.New(cfg.DataDir, opts...)
}

func run(cfg Config, log *slog.Logger) error {
	log.Info("starting server")
	log.Debug("debug messages are enabled")

	engine, err := loadEngine(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	log.Info("data loaded", "languages", engine.Codes())

	srv := http.Server{
		Addr:        cfg.Address,
		ReadTimeout: cfg.Timeout,
		Handler:     newHandler(engine, log, cfg),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Debug("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("erroneous shutdown", "error", err)
		}
	}()

	log.Info("listening", "address", cfg.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func mustMakeLogger(levelStr, format string) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		panic("unknown log level: " + levelStr)
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		panic("unknown log format: " + format)
	}
	return slog.New(handler)
}
