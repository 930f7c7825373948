package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/echobuy/echobuy/pkg/core"
	"github.com/echobuy/echobuy/pkg/core/types"
)

func TestCreateMessage(t *testing.T) {
	var gotReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("X-API-Key = %q", r.Header.Get("X-API-Key"))
		}
		if r.Header.Get("anthropic-version") != APIVersion {
			t.Errorf("anthropic-version = %q", r.Header.Get("anthropic-version"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-20240620",
			"content": [
				{"type": "text", "text": "Checking now."},
				{"type": "tool_use", "id": "tu1", "name": "web_search", "input": {"query": "mouse"}}
			],
			"stop_reason": "tool_use",
			"usage": {"input_tokens": 12, "output_tokens": 34}
		}`))
	}))
	defer srv.Close()

	p := New("test-key", WithBaseURL(srv.URL))
	resp, err := p.CreateMessage(context.Background(), &types.MessageRequest{
		Model:    "claude-3-5-sonnet-20240620",
		Messages: []types.Message{types.UserText("find a mouse")},
		System:   "be brief",
		Tools:    []types.Tool{{Name: "web_search"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotReq.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want default fill", gotReq.MaxTokens)
	}
	if gotReq.System != "be brief" {
		t.Errorf("System = %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("wire messages = %+v", gotReq.Messages)
	}

	if resp.StopReason != types.StopReasonToolUse {
		t.Errorf("StopReason = %s", resp.StopReason)
	}
	if resp.TextContent() != "Checking now." {
		t.Errorf("TextContent = %q", resp.TextContent())
	}
	uses := resp.ToolUses()
	if len(uses) != 1 || uses[0].Name != "web_search" {
		t.Fatalf("ToolUses = %+v", uses)
	}
	if uses[0].Input["query"] != "mouse" {
		t.Errorf("tool input = %v", uses[0].Input)
	}
	if resp.Usage.OutputTokens != 34 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
}

func TestCreateMessageErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wireType string
		want     core.ErrorType
	}{
		{"rate limited", http.StatusTooManyRequests, "rate_limit_error", core.ErrRateLimit},
		{"overloaded", http.StatusServiceUnavailable, "overloaded_error", core.ErrOverloaded},
		{"bad request", http.StatusBadRequest, "invalid_request_error", core.ErrInvalidRequest},
		{"auth", http.StatusUnauthorized, "authentication_error", core.ErrInvalidRequest},
		{"api error", http.StatusInternalServerError, "api_error", core.ErrModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"type": "error",
					"error": map[string]string{
						"type":    tt.wireType,
						"message": "nope",
					},
				})
			}))
			defer srv.Close()

			p := New("k", WithBaseURL(srv.URL))
			_, err := p.CreateMessage(context.Background(), &types.MessageRequest{
				Model:    "m",
				Messages: []types.Message{types.UserText("x")},
			})
			if err == nil {
				t.Fatal("want error")
			}
			if got := core.TypeOf(err); got != tt.want {
				t.Errorf("TypeOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateMessageSkipsUnparseableBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "msg_2",
			"type": "message",
			"role": "assistant",
			"content": [17, {"type": "text", "text": "still fine"}],
			"stop_reason": "end_turn"
		}`))
	}))
	defer srv.Close()

	p := New("k", WithBaseURL(srv.URL))
	resp, err := p.CreateMessage(context.Background(), &types.MessageRequest{
		Model:    "m",
		Messages: []types.Message{types.UserText("x")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TextContent() != "still fine" {
		t.Errorf("TextContent = %q", resp.TextContent())
	}
}
