package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	elevenLabsDefaultBaseURL = "https://api.elevenlabs.io"

	// DefaultVoice is a warm, conversational stock voice.
	DefaultVoice = "JBFqnCBsd6RMkjVDRZzb"

	// DefaultModel supports multilingual synthesis.
	DefaultModel = "eleven_multilingual_v2"

	// DefaultFormat is 44.1kHz 128kbps MP3.
	DefaultFormat = "mp3_44100_128"
)

// ElevenLabsProvider synthesizes speech via the ElevenLabs
// text-to-speech API.
type ElevenLabsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewElevenLabs creates an ElevenLabs TTS provider.
func NewElevenLabs(apiKey string) *ElevenLabsProvider {
	return &ElevenLabsProvider{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    elevenLabsDefaultBaseURL,
		httpClient: &http.Client{},
	}
}

// NewElevenLabsWithClient creates an ElevenLabs TTS provider with a
// custom HTTP client.
func NewElevenLabsWithClient(apiKey string, client *http.Client) *ElevenLabsProvider {
	if client == nil {
		client = &http.Client{}
	}
	p := NewElevenLabs(apiKey)
	p.httpClient = client
	return p
}

// WithBaseURL overrides the API base URL.
func (e *ElevenLabsProvider) WithBaseURL(base string) *ElevenLabsProvider {
	base = strings.TrimSpace(base)
	if base != "" {
		e.baseURL = base
	}
	return e
}

func (e *ElevenLabsProvider) Name() string {
	return "elevenlabs"
}

// elevenLabsSynthesisRequest is the text-to-speech request body.
type elevenLabsSynthesisRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to encoded audio bytes.
func (e *ElevenLabsProvider) Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error) {
	voice := opts.Voice
	if voice == "" {
		voice = DefaultVoice
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}

	body, err := json.Marshal(elevenLabsSynthesisRequest{Text: text, ModelID: model})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: marshal request: %w", err)
	}

	endpoint := e.baseURL + "/v1/text-to-speech/" + voice + "?output_format=" + format
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevenlabs: API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("elevenlabs: empty audio response")
	}

	return &Synthesis{Audio: audio, Format: format}, nil
}
