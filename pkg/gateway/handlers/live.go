package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/echobuy/echobuy/pkg/gateway/live"
	"github.com/echobuy/echobuy/pkg/voice/stt"
	"github.com/echobuy/echobuy/pkg/voice/tts"
)

// Live upgrades HTTP requests to live voice sessions. Every connection
// gets a fresh agent from NewAgent, so conversations are isolated.
type Live struct {
	NewAgent func() live.Conversationalist
	STT      stt.Provider
	TTS      tts.Provider
	Session  live.Config
	Logger   *slog.Logger

	// OriginAllowed gates the upgrade for cross-origin browsers.
	// Same-origin requests always pass.
	OriginAllowed func(string) bool
}

func (h *Live) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if h.OriginAllowed == nil {
				return false
			}
			return h.OriginAllowed(origin)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger.Info("live session opened", "remote", r.RemoteAddr)
	live.New(conn, h.NewAgent(), h.STT, h.TTS, h.Session, logger).Run(r.Context())
	logger.Info("live session closed", "remote", r.RemoteAddr)
}
