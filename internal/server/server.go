package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-moses-tokenizer/internal/config"
	"github.com/example/go-moses-tokenizer/internal/lang"
	"github.com/example/go-moses-tokenizer/internal/text"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Tokenizer splits text into tokens for a language code.
type Tokenizer interface {
	Tokenize(text, lang string, escape bool) ([]string, error)
	PennTokenize(text, lang string) ([]string, error)
}

// LanguageLister returns the language codes the tokenizer serves.
type LanguageLister interface {
	Languages() []string
}

// Normalizer rewrites punctuation in text for a language code.
type Normalizer interface {
	Normalize(text, lang string) (string, error)
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes   int
	workers        int
	requestTimeout time.Duration
	defaultLang    string
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:   65536,
		workers:        4,
		requestTimeout: 10 * time.Second,
		defaultLang:    "en",
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for the
// POST endpoints.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of requests processed at once.
// Zero or less disables throttling.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets how long a request may wait for a worker slot.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithDefaultLang sets the language used when a request names none.
func WithDefaultLang(code string) Option {
	return func(o *options) { o.defaultLang = code }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	tok   Tokenizer
	langs LanguageLister
	norm  Normalizer
	opts  options
	sem   chan struct{} // semaphore for worker pool
	log   *slog.Logger
}

// NewHandler returns an http.Handler that serves /health, /languages,
// POST /tokenize and POST /normalize.
func NewHandler(tok Tokenizer, langs LanguageLister, norm Normalizer, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		tok:   tok,
		langs: langs,
		norm:  norm,
		opts:  opts,
		log:   opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/languages", h.handleLanguages)
	mux.HandleFunc("/tokenize", h.handleTokenize)
	mux.HandleFunc("/normalize", h.handleNormalize)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	codes := h.langs.Languages()
	if codes == nil {
		codes = []string{}
	}
	writeJSON(w, http.StatusOK, codes)
}

type tokenizeRequest struct {
	Text   string `json:"text"`
	Lang   string `json:"lang"`
	Escape *bool  `json:"escape"`
	Penn   bool   `json:"penn"`
}

type tokenizeResponse struct {
	Tokens []string `json:"tokens"`
}

func (h *handler) handleTokenize(w http.ResponseWriter, r *http.Request) {
	var req tokenizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !h.checkSize(w, req.Text) {
		return
	}

	release, ok := h.acquire(w, r)
	if !ok {
		return
	}
	defer release()

	code := h.langOrDefault(req.Lang)
	escape := req.Escape == nil || *req.Escape

	start := time.Now()
	var (
		toks []string
		err  error
	)
	if req.Penn {
		toks, err = h.tok.PennTokenize(req.Text, code)
	} else {
		toks, err = h.tok.Tokenize(req.Text, code, escape)
	}
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		h.fail(w, r, "tokenize failed", code, req.Text, durationMS, err)
		return
	}

	h.log.InfoContext(r.Context(), "tokenize complete",
		slog.String("lang", code),
		slog.Int("text_len", len(req.Text)),
		slog.Bool("penn", req.Penn),
		slog.Int("tokens", len(toks)),
		slog.Int64("duration_ms", durationMS),
	)

	writeJSON(w, http.StatusOK, tokenizeResponse{Tokens: toks})
}

type normalizeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type normalizeResponse struct {
	Text string `json:"text"`
}

func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !h.checkSize(w, req.Text) {
		return
	}

	release, ok := h.acquire(w, r)
	if !ok {
		return
	}
	defer release()

	code := h.langOrDefault(req.Lang)

	start := time.Now()
	out, err := h.norm.Normalize(req.Text, code)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		h.fail(w, r, "normalize failed", code, req.Text, durationMS, err)
		return
	}

	h.log.InfoContext(r.Context(), "normalize complete",
		slog.String("lang", code),
		slog.Int("text_len", len(req.Text)),
		slog.Int("out_len", len(out)),
		slog.Int64("duration_ms", durationMS),
	)

	writeJSON(w, http.StatusOK, normalizeResponse{Text: out})
}

// decode reads a JSON POST body into v, answering the request itself on
// failure.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func (h *handler) checkSize(w http.ResponseWriter, s string) bool {
	if len(s) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return false
	}
	return true
}

// acquire takes a worker slot, waiting at most the request timeout. The
// returned func releases the slot.
func (h *handler) acquire(w http.ResponseWriter, r *http.Request) (func(), bool) {
	if h.sem == nil {
		return func() {}, true
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	select {
	case h.sem <- struct{}{}:
		return func() { <-h.sem }, true
	case <-ctx.Done():
		h.log.WarnContext(r.Context(), "no worker available",
			slog.Duration("timeout", h.opts.requestTimeout),
			slog.String("error", ctx.Err().Error()),
		)
		writeError(w, http.StatusServiceUnavailable, "no worker available")
		return nil, false
	}
}

func (h *handler) langOrDefault(code string) string {
	if strings.TrimSpace(code) == "" {
		return h.opts.defaultLang
	}
	return code
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, msg, code, s string, durationMS int64, err error) {
	attrs := []any{
		slog.String("lang", code),
		slog.Int("text_len", len(s)),
		slog.Int64("duration_ms", durationMS),
		slog.String("error", err.Error()),
	}

	if errors.Is(err, lang.ErrUnsupportedLanguage) {
		h.log.WarnContext(r.Context(), msg, attrs...)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.ErrorContext(r.Context(), msg, attrs...)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server: wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Engine is the tokenizer the server exposes.
type Engine interface {
	Tokenizer
	LanguageLister
}

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	engine          Engine
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

func New(cfg config.Config, engine Engine) *Server {
	shutdown := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if shutdown <= 0 {
		shutdown = 30 * time.Second
	}

	return &Server{
		cfg:             cfg,
		engine:          engine,
		logger:          slog.Default(),
		shutdownTimeout: shutdown,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// WithLogger overrides the request logger.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	s.logger = l
	return s
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return NewHandler(s.engine, s.engine, NewPunctNormalizer(s.cfg.Normalizer),
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
		WithDefaultLang(s.cfg.Tokenizer.Lang),
		WithLogger(s.logger),
	)
}

func (s *Server) Start(ctx context.Context) error {
	if s.engine == nil {
		return errors.New("server: no tokenizer configured")
	}

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("listening",
		slog.String("addr", s.cfg.Server.ListenAddr),
		slog.Int("workers", s.cfg.Server.Workers),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}

// punctNormalizer adapts text.PunctNormalizer to the per-request language.
type punctNormalizer struct {
	opts text.PunctOptions
}

// NewPunctNormalizer returns a Normalizer applying the configured
// punctuation rules. Unknown language codes fail with
// lang.ErrUnsupportedLanguage.
func NewPunctNormalizer(cfg config.NormalizerConfig) Normalizer {
	return punctNormalizer{opts: PunctOptions(cfg)}
}

// PunctOptions converts the normalizer configuration.
func PunctOptions(cfg config.NormalizerConfig) text.PunctOptions {
	return text.PunctOptions{
		Penn:               cfg.Penn,
		QuoteCommas:        cfg.QuoteCommas,
		Numbers:            cfg.Numbers,
		UnicodePunct:       cfg.UnicodePunct,
		RemoveControlChars: cfg.RemoveControlChars,
		NFC:                cfg.NFC,
	}
}

func (n punctNormalizer) Normalize(s, code string) (string, error) {
	if !lang.IsKnown(code) {
		return "", fmt.Errorf("%w: %q", lang.ErrUnsupportedLanguage, code)
	}
	return text.NewPunctNormalizer(code, n.opts).Normalize(s), nil
}
