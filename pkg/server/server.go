// Package server hosts the browser preview of a signature: a page that shows
// the rendered block in a white card, a small JSON API described by an
// embedded OpenAPI document, and a websocket that pushes a fresh render
// whenever the watched settings file changes.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gotemplate "github.com/goliatone/go-template"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-emailsig/pkg/config"
	"github.com/goliatone/go-emailsig/pkg/orchestrator"
	"github.com/goliatone/go-emailsig/pkg/presets"
	"github.com/goliatone/go-emailsig/pkg/render"
	rendertemplate "github.com/goliatone/go-emailsig/pkg/render/template"
	"github.com/goliatone/go-emailsig/pkg/renderers/markup"
	"github.com/goliatone/go-emailsig/pkg/signature"
)

//go:embed templates/*.tmpl
var pageTemplates embed.FS

const (
	previewTemplate = "templates/preview.tmpl"
	writeWait       = 10 * time.Second
)

var _ rendertemplate.TemplateRenderer = (*gotemplate.Engine)(nil)

// Option customises a Server.
type Option func(*Server)

// WithGenerator replaces the default signature pipeline.
func WithGenerator(gen *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if gen != nil {
			s.gen = gen
		}
	}
}

// WithPresets sets the preset catalogue listed by /api/presets and used by
// the default pipeline.
func WithPresets(selector *presets.Selector) Option {
	return func(s *Server) {
		if selector != nil {
			s.presets = selector
		}
	}
}

// WithSource serves and watches the settings file at path.
func WithSource(path string) Option {
	return func(s *Server) {
		s.source = path
	}
}

// WithSettings serves fixed settings when no source file is configured.
func WithSettings(settings config.Settings) Option {
	return func(s *Server) {
		s.settings = settings
	}
}

// WithLogger sets the server logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server is the preview HTTP server.
type Server struct {
	cfg      Config
	api      *API
	gen      *orchestrator.Orchestrator
	presets  *presets.Selector
	pages    rendertemplate.TemplateRenderer
	hub      *Hub
	source   string
	settings config.Settings
	logger   zerolog.Logger
}

// New builds a Server. The OpenAPI document and page templates are parsed
// up front so a broken build fails here rather than on the first request.
func New(ctx context.Context, cfg Config, options ...Option) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		hub:      NewHub(),
		settings: config.Default(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.presets == nil {
		s.presets = presets.Default()
	}
	if s.gen == nil {
		s.gen = orchestrator.New(
			orchestrator.WithThemeSelector(s.presets),
			orchestrator.WithLogger(s.logger),
		)
	}
	if s.cfg.MaxBodyBytes <= 0 {
		s.cfg.MaxBodyBytes = 1 << 20
	}

	api, err := LoadAPI(ctx)
	if err != nil {
		return nil, err
	}
	s.api = api

	pages, err := gotemplate.NewRenderer(
		gotemplate.WithFS(pageTemplates),
		gotemplate.WithExtension(".tmpl"),
		gotemplate.WithGlobalData(map[string]any{"title": "Signature preview"}),
	)
	if err != nil {
		return nil, fmt.Errorf("server: configure page templates: %w", err)
	}
	s.pages = pages

	return s, nil
}

// Hub exposes the live preview hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/live", s.handleLive)
	r.Get("/openapi.json", s.handleOpenAPI)
	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/defaults", s.handleDefaults)
		r.Get("/presets", s.handlePresets)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. When a
// source file is configured it is watched and every change is pushed to
// live clients.
func (s *Server) Run(ctx context.Context) error {
	s.Refresh(ctx)
	if s.source != "" {
		go func() {
			err := WatchFile(ctx, s.source, s.cfg.LiveDebounce, s.logger, func() {
				s.Refresh(ctx)
			})
			if err != nil {
				s.logger.Error().Err(err).Msg("live reload disabled")
			}
		}()
	}

	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("preview server listening")

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("shutdown")
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", runErr)
	}
	return nil
}

// Refresh renders the current settings and publishes the result to live
// clients. Failures are logged and leave the last good render in place.
func (s *Server) Refresh(ctx context.Context) {
	out, err := s.renderCurrent(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("preview render failed")
		return
	}
	s.hub.Publish(out)
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.cfg.ShutdownTimeout > 0 {
		return s.cfg.ShutdownTimeout
	}
	return 5 * time.Second
}

func (s *Server) current() (config.Settings, error) {
	if s.source == "" {
		return s.settings, nil
	}
	return config.Load(config.WithFile(s.source))
}

func (s *Server) renderCurrent(ctx context.Context) ([]byte, error) {
	settings, err := s.current()
	if err != nil {
		return nil, err
	}
	name, variant := presets.ParseRef(settings.Preset)
	return s.gen.Generate(ctx, orchestrator.Request{
		Config:   settings.Signature,
		Renderer: markup.Name,
		Preset:   name,
		Variant:  variant,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	out, err := s.renderCurrent(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	page, err := s.pages.RenderTemplate(previewTemplate, map[string]any{
		"signature": string(out),
		"live":      s.source != "",
		"source":    s.source,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, page)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	format := query.Get("format")
	if format == "" {
		format = markup.Name
	}
	renderer, err := s.gen.Registry().Get(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	document := false
	if raw := query.Get("document"); raw != "" {
		document, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%w: document: %v", ErrInvalidRequest, err))
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.api.ValidateConfig(body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// fields missing from the body keep their starter values
	cfg := signature.Default()
	if err := signature.MergeJSON(&cfg, body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	name, variant := presets.ParseRef(query.Get("preset"))
	out, err := s.gen.Generate(r.Context(), orchestrator.Request{
		Config:   cfg,
		Renderer: format,
		Preset:   name,
		Variant:  variant,
		Options:  render.RenderOptions{Document: document},
	})
	switch {
	case err == nil:
	case errors.Is(err, signature.ErrInvalidConfig), errors.Is(err, presets.ErrPresetNotFound):
		writeError(w, http.StatusBadRequest, err)
		return
	default:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	_, _ = w.Write(out)
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, signature.Default())
}

type presetView struct {
	Name     string   `json:"name"`
	Variants []string `json:"variants"`
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	names := s.presets.Names()
	out := make([]presetView, 0, len(names))
	for _, name := range names {
		variants := s.presets.Variants(name)
		if variants == nil {
			variants = []string{}
		}
		out = append(out, presetView{Name: name, Variants: variants})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.api.Document())
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.AllowedOrigins,
	})
	if err != nil {
		// Accept has already written the response
		s.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	updates, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	// clients never send; CloseRead cancels ctx once the peer goes away
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case payload, ok := <-updates:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				s.logger.Debug().Err(err).Msg("websocket write failed")
				return
			}
		}
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
