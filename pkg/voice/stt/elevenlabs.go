package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	elevenLabsDefaultBaseURL = "https://api.elevenlabs.io"
	defaultModel             = "scribe_v1"
	defaultLanguage          = "eng"
)

// ElevenLabsProvider transcribes audio via the ElevenLabs
// speech-to-text API.
type ElevenLabsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewElevenLabs creates an ElevenLabs STT provider.
func NewElevenLabs(apiKey string) *ElevenLabsProvider {
	return &ElevenLabsProvider{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    elevenLabsDefaultBaseURL,
		httpClient: &http.Client{},
	}
}

// NewElevenLabsWithClient creates an ElevenLabs STT provider with a
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

// elevenLabsTranscript is the speech-to-text response body.
type elevenLabsTranscript struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

// Transcribe uploads the audio as multipart form data and returns the
// transcript.
func (e *ElevenLabsProvider) Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error) {
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	language := opts.Language
	if language == "" {
		language = defaultLanguage
	}
	filename := "audio"
	if opts.Format != "" {
		filename = "audio." + opts.Format
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("elevenlabs: read audio: %w", err)
	}
	if err := form.WriteField("model_id", model); err != nil {
		return nil, fmt.Errorf("elevenlabs: write form field: %w", err)
	}
	if err := form.WriteField("language_code", language); err != nil {
		return nil, fmt.Errorf("elevenlabs: write form field: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("elevenlabs: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/v1/speech-to-text", &body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
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

	var wire elevenLabsTranscript
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("elevenlabs: decode response: %w", err)
	}

	return &Transcript{
		Text:     wire.Text,
		Language: wire.LanguageCode,
	}, nil
}
