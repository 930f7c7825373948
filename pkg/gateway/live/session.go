// Package live runs one voice shopping conversation over a WebSocket.
package live

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/echobuy/echobuy/pkg/agent"
	"github.com/echobuy/echobuy/pkg/gateway/live/protocol"
	"github.com/echobuy/echobuy/pkg/voice/stt"
	"github.com/echobuy/echobuy/pkg/voice/tts"
)

// Client-facing notices. Sent as plain text frames.
const (
	noticeAudioTooShort   = "Audio too short. Please speak for at least 1 second."
	noticeEmptyTranscript = "I didn't catch that. Could you please speak again?"
	noticeAudioError      = "Sorry, I had trouble processing your audio. Please try again."
	noticeBadCommand      = "Invalid command format."
	noticeTTSFallback     = "I'm having trouble with audio right now. "

	defaultIntroText = "Hello! I'm your shopping assistant."
)

// Conversationalist is the slice of the agent a live session drives.
type Conversationalist interface {
	Chat(ctx context.Context, userInput string) (*agent.ProcessedResponse, error)
	Reset()
}

// Config bounds a live session.
type Config struct {
	// MinAudioBytes rejects clips too small to hold real speech.
	MinAudioBytes int

	// TurnTimeout bounds one full user turn, transcription through
	// synthesis.
	TurnTimeout time.Duration

	// WriteTimeout bounds each outbound frame write.
	WriteTimeout time.Duration

	// TTSVoice selects the synthesis voice.
	TTSVoice string

	// TTSAttempts is how many synthesis tries a reply gets before the
	// text fallback.
	TTSAttempts int

	// TTSRetryDelay is the pause between synthesis attempts.
	TTSRetryDelay time.Duration
}

func (c *Config) withDefaults() {
	if c.MinAudioBytes <= 0 {
		c.MinAudioBytes = 1000
	}
	if c.TurnTimeout <= 0 {
		c.TurnTimeout = 2 * time.Minute
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.TTSAttempts <= 0 {
		c.TTSAttempts = 2
	}
	if c.TTSRetryDelay <= 0 {
		c.TTSRetryDelay = time.Second
	}
}

// Session pumps one WebSocket connection: binary frames are treated as
// user audio, text frames as JSON commands. Each session owns its own
// agent, so conversations never leak across connections.
type Session struct {
	conn   *websocket.Conn
	agent  Conversationalist
	stt    stt.Provider
	tts    tts.Provider
	cfg    Config
	logger *slog.Logger
}

// New creates a live session over an upgraded connection.
func New(conn *websocket.Conn, a Conversationalist, sttProvider stt.Provider, ttsProvider tts.Provider, cfg Config, logger *slog.Logger) *Session {
	cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		conn:   conn,
		agent:  a,
		stt:    sttProvider,
		tts:    ttsProvider,
		cfg:    cfg,
		logger: logger,
	}
}

// Run reads frames until the client disconnects or ctx ends.
func (s *Session) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Info("client disconnected")
			} else {
				s.logger.Error("read failed", "error", err)
			}
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			s.handleAudio(ctx, data)
		case websocket.TextMessage:
			s.handleCommand(ctx, data)
		}
	}
}

// handleAudio runs one full voice turn: transcribe, chat, display
// events, synthesized reply.
func (s *Session) handleAudio(ctx context.Context, audio []byte) {
	s.logger.Info("received audio", "bytes", len(audio))

	if len(audio) < s.cfg.MinAudioBytes {
		s.logger.Warn("audio too small, skipping", "bytes", len(audio))
		s.sendNotice(noticeAudioTooShort)
		return
	}

	turnCtx, cancel := context.WithTimeout(ctx, s.cfg.TurnTimeout)
	defer cancel()

	transcript, err := s.stt.Transcribe(turnCtx, bytes.NewReader(audio), stt.TranscribeOptions{Format: "webm"})
	if err != nil {
		s.logger.Error("transcription failed", "error", err)
		s.sendNotice(noticeAudioError)
		return
	}

	userQuery := strings.TrimSpace(transcript.Text)
	s.logger.Info("transcribed", "text", userQuery)
	if userQuery == "" {
		s.logger.Warn("empty transcription")
		s.sendNotice(noticeEmptyTranscript)
		return
	}

	response, err := s.agent.Chat(turnCtx, userQuery)
	if err != nil {
		s.logger.Error("agent turn failed", "error", err)
		s.sendNotice(noticeAudioError)
		return
	}

	s.logger.Info("agent reply", "spoken", response.SpokenText)
	s.sendDisplayEvents(response)

	if strings.TrimSpace(response.SpokenText) != "" {
		s.speakText(turnCtx, response.SpokenText)
	}
}

// handleCommand dispatches a JSON control frame.
func (s *Session) handleCommand(ctx context.Context, data []byte) {
	var cmd protocol.Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		s.logger.Error("invalid command json", "error", err)
		s.sendNotice(noticeBadCommand)
		return
	}

	switch cmd.Type {
	case protocol.CommandReset:
		s.logger.Info("resetting conversation")
		s.agent.Reset()
		s.sendJSON(protocol.AckEvent{Type: protocol.EventResetComplete})

	case protocol.CommandIntro:
		text := cmd.Text
		if text == "" {
			text = defaultIntroText
		}
		turnCtx, cancel := context.WithTimeout(ctx, s.cfg.TurnTimeout)
		defer cancel()
		s.speakText(turnCtx, text)

	default:
		s.logger.Warn("unknown command", "type", cmd.Type)
		s.sendJSON(protocol.ErrorEvent{
			Type:    protocol.EventError,
			Message: "unknown command type: " + cmd.Type,
		})
	}
}

// sendDisplayEvents pushes the structured payloads to the UI. Cards
// take precedence; bare links only go out when no cards were produced.
func (s *Session) sendDisplayEvents(response *agent.ProcessedResponse) {
	if len(response.ProductCards) > 0 {
		s.logger.Info("sending product cards", "count", len(response.ProductCards))
		s.sendJSON(protocol.ProductCardsEvent{
			Type:  protocol.EventProductCards,
			Cards: response.ProductCards,
		})
	}

	if response.PurchaseIntentData != nil {
		s.logger.Info("sending purchase intent")
		s.sendJSON(protocol.PurchaseIntentEvent{
			Type:    protocol.EventPurchaseIntent,
			Product: *response.PurchaseIntentData,
		})
	}

	if response.ComparisonData != "" {
		s.logger.Info("sending comparison data")
		s.sendJSON(protocol.ComparisonEvent{
			Type: protocol.EventComparison,
			Data: response.ComparisonData,
		})
	}

	if len(response.LinksToDisplay) > 0 && len(response.ProductCards) == 0 {
		s.logger.Info("sending display links", "count", len(response.LinksToDisplay))
		s.sendJSON(protocol.DisplayLinksEvent{
			Type:  protocol.EventDisplayLinks,
			Links: response.LinksToDisplay,
		})
	}
}

// speakText synthesizes the reply with retries and sends it as a
// binary frame. On total failure the client gets the text instead.
func (s *Session) speakText(ctx context.Context, text string) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.TTSAttempts; attempt++ {
		syn, err := s.tts.Synthesize(ctx, text, tts.SynthesizeOptions{Voice: s.cfg.TTSVoice})
		if err == nil {
			s.logger.Info("synthesized audio", "bytes", len(syn.Audio))
			s.sendBinary(syn.Audio)
			return
		}
		lastErr = err
		s.logger.Warn("synthesis attempt failed", "attempt", attempt, "error", err)
		if attempt < s.cfg.TTSAttempts {
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
				attempt = s.cfg.TTSAttempts
			case <-time.After(s.cfg.TTSRetryDelay):
			}
		}
	}

	s.logger.Error("synthesis failed, falling back to text", "error", lastErr)
	s.sendNotice(noticeTTSFallback + text)
}

func (s *Session) sendNotice(text string) {
	s.write(websocket.TextMessage, []byte(text))
}

func (s *Session) sendJSON(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", "error", err)
		return
	}
	s.write(websocket.TextMessage, data)
}

func (s *Session) sendBinary(data []byte) {
	s.write(websocket.BinaryMessage, data)
}

func (s *Session) write(msgType int, data []byte) {
	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := s.conn.WriteMessage(msgType, data); err != nil {
		s.logger.Error("write failed", "error", err)
	}
}
