package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text-to-speech/"+DefaultVoice {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("output_format"); got != DefaultFormat {
			t.Errorf("output_format = %q", got)
		}
		if r.Header.Get("xi-api-key") != "el-key" {
			t.Errorf("api key = %q", r.Header.Get("xi-api-key"))
		}
		var req elevenLabsSynthesisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text != "Hey there!" || req.ModelID != DefaultModel {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	p := NewElevenLabs("el-key").WithBaseURL(srv.URL)
	syn, err := p.Synthesize(context.Background(), "Hey there!", SynthesizeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if string(syn.Audio) != "mp3-bytes" {
		t.Errorf("Audio = %q", syn.Audio)
	}
	if syn.Format != DefaultFormat {
		t.Errorf("Format = %q", syn.Format)
	}
}

func TestSynthesizeCustomVoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/custom-voice") {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte("audio"))
	}))
	defer srv.Close()

	p := NewElevenLabs("k").WithBaseURL(srv.URL)
	if _, err := p.Synthesize(context.Background(), "hi", SynthesizeOptions{Voice: "custom-voice"}); err != nil {
		t.Fatal(err)
	}
}

func TestSynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewElevenLabs("k").WithBaseURL(srv.URL)
	if _, err := p.Synthesize(context.Background(), "hi", SynthesizeOptions{}); err == nil {
		t.Fatal("want error")
	}
}

func TestSynthesizeEmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	p := NewElevenLabs("k").WithBaseURL(srv.URL)
	if _, err := p.Synthesize(context.Background(), "hi", SynthesizeOptions{}); err == nil {
		t.Fatal("want error for empty audio")
	}
}
