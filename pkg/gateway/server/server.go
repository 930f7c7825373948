// Package server assembles the voice shopping gateway.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/echobuy/echobuy/pkg/agent"
	"github.com/echobuy/echobuy/pkg/core/providers/anthropic"
	"github.com/echobuy/echobuy/pkg/gateway/config"
	"github.com/echobuy/echobuy/pkg/gateway/handlers"
	"github.com/echobuy/echobuy/pkg/gateway/live"
	"github.com/echobuy/echobuy/pkg/gateway/mw"
	"github.com/echobuy/echobuy/pkg/gateway/tools"
	"github.com/echobuy/echobuy/pkg/gateway/tools/adapters/brave"
	"github.com/echobuy/echobuy/pkg/gateway/tools/adapters/firecrawl"
	"github.com/echobuy/echobuy/pkg/voice/stt"
	"github.com/echobuy/echobuy/pkg/voice/tts"
)

// Server wires the model provider, tool backends, and voice providers
// behind an HTTP mux.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	router chi.Router

	httpServer *http.Server
}

// New builds a ready-to-run server from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	providerOpts := []anthropic.Option{anthropic.WithTimeout(cfg.ModelTimeout)}
	if cfg.AnthropicBaseURL != "" {
		providerOpts = append(providerOpts, anthropic.WithBaseURL(cfg.AnthropicBaseURL))
	}
	model := anthropic.New(cfg.AnthropicAPIKey, providerOpts...)

	registry := tools.NewRegistry(
		brave.New(cfg.BraveAPIKey),
		firecrawl.New(cfg.FirecrawlAPIKey),
		tools.WithLogger(logger),
		tools.WithTimeout(func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithTimeout(ctx, cfg.ToolTimeout)
		}),
	)

	newAgent := func() live.Conversationalist {
		return agent.New(model, registry,
			agent.WithModel(cfg.Model),
			agent.WithMaxToolRounds(cfg.MaxToolRounds),
			agent.WithLogger(logger),
		)
	}

	liveHandler := &handlers.Live{
		NewAgent: newAgent,
		STT:      stt.NewElevenLabs(cfg.ElevenLabsAPIKey),
		TTS:      tts.NewElevenLabs(cfg.ElevenLabsAPIKey),
		Session: live.Config{
			MinAudioBytes: cfg.MinAudioBytes,
			TurnTimeout:   cfg.TurnTimeout,
			TTSVoice:      cfg.TTSVoice,
		},
		Logger:        logger,
		OriginAllowed: cfg.OriginAllowed,
	}

	s := &Server{cfg: cfg, logger: logger}
	s.router = s.buildRouter(liveHandler)
	return s
}

func (s *Server) buildRouter(liveHandler *handlers.Live) chi.Router {
	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Recover(s.logger))
	r.Use(mw.AccessLog(s.logger))
	r.Use(mw.CORS(s.cfg.OriginAllowed))

	r.Get("/healthz", handlers.Health)
	r.Handle("/ws", liveHandler)
	return r
}

// Handler exposes the mux, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until the listener fails or Shutdown runs.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("gateway listening", "addr", s.cfg.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
