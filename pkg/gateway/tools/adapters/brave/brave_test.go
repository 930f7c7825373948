package brave

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/res/v1/web/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("X-Subscription-Token") != "brave-key" {
			t.Errorf("token = %q", r.Header.Get("X-Subscription-Token"))
		}
		if got := r.URL.Query().Get("q"); got != "wireless mouse" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("count"); got != "10" {
			t.Errorf("count = %q", got)
		}
		w.Write([]byte(`{
			"web": {
				"results": [
					{"title": "Mouse A", "url": "https://www.amazon.com/dp/B001", "description": "great"},
					{"title": "Mouse B", "url": "https://www.amazon.com/dp/B002", "description": "also great"}
				]
			}
		}`))
	}))
	defer srv.Close()

	s := New("brave-key", WithBaseURL(srv.URL))
	results, err := s.Search(context.Background(), "wireless mouse", 0)
	if err != nil {
		t.Fatal(err)
	}
	if results.Query != "wireless mouse" {
		t.Errorf("Query = %q", results.Query)
	}
	if len(results.Results) != 2 {
		t.Fatalf("Results = %d entries, want 2", len(results.Results))
	}
	if results.Results[0].URL != "https://www.amazon.com/dp/B001" {
		t.Errorf("first URL = %q", results.Results[0].URL)
	}
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "bad query"}`))
	}))
	defer srv.Close()

	s := New("k", WithBaseURL(srv.URL))
	if _, err := s.Search(context.Background(), "x", 5); err == nil {
		t.Fatal("want error")
	}
}
