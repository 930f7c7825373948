package stt

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speech-to-text" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "el-key" {
			t.Errorf("api key = %q", r.Header.Get("xi-api-key"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("model_id"); got != "scribe_v1" {
			t.Errorf("model_id = %q", got)
		}
		if got := r.FormValue("language_code"); got != "eng" {
			t.Errorf("language_code = %q", got)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		audio, _ := io.ReadAll(file)
		if string(audio) != "fake-audio-bytes" {
			t.Errorf("audio = %q", audio)
		}
		w.Write([]byte(`{"text": "find me a wireless mouse", "language_code": "eng"}`))
	}))
	defer srv.Close()

	p := NewElevenLabs("el-key").WithBaseURL(srv.URL)
	tr, err := p.Transcribe(context.Background(), bytes.NewReader([]byte("fake-audio-bytes")), TranscribeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Text != "find me a wireless mouse" {
		t.Errorf("Text = %q", tr.Text)
	}
	if tr.Language != "eng" {
		t.Errorf("Language = %q", tr.Language)
	}
}

func TestTranscribeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid api key"}`))
	}))
	defer srv.Close()

	p := NewElevenLabs("bad").WithBaseURL(srv.URL)
	_, err := p.Transcribe(context.Background(), strings.NewReader("x"), TranscribeOptions{})
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("err = %v", err)
	}
}
