package musicapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nashiko-dev/gomuse/internal/domain/repository"
)

func TestHTTPClient_FetchHome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/home" {
			t.Errorf("path = %q, want /home", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Errorf("Authorization = %q, want Bearer token123", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"greeting":"Good evening","sections":[]}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "token123")

	payload, err := client.FetchHome(context.Background())
	if err != nil {
		t.Fatalf("FetchHome failed: %v", err)
	}

	greeting, _ := payload.Get("greeting")
	if s, _ := greeting.AsString(); s != "Good evening" {
		t.Errorf("greeting = %q, want %q", s, "Good evening")
	}
}

func TestHTTPClient_FetchPlaylist_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")

	_, err := client.FetchPlaylist(context.Background(), "PLmissing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, repository.ErrNotFound)
	}
}

func TestHTTPClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")

	_, err := client.FetchHome(context.Background())
	if !errors.Is(err, repository.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want %v", err, repository.ErrUpstreamUnavailable)
	}
}

func TestHTTPClient_SubmitRating(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")

	if err := client.SubmitRating(context.Background(), "dQw4w9WgXcQ", "LIKE"); err != nil {
		t.Fatalf("SubmitRating failed: %v", err)
	}
	if gotPath != "/songs/dQw4w9WgXcQ/rating" {
		t.Errorf("path = %q, want /songs/dQw4w9WgXcQ/rating", gotPath)
	}
	if gotBody["rating"] != "LIKE" {
		t.Errorf("rating = %q, want LIKE", gotBody["rating"])
	}
}

func TestHTTPClient_FetchSearch_EscapesQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if _, err := w.Write([]byte(`{"results":[]}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")

	if _, err := client.FetchSearch(context.Background(), "sigur rós & co"); err != nil {
		t.Fatalf("FetchSearch failed: %v", err)
	}
	if gotQuery != "sigur rós & co" {
		t.Errorf("query = %q, want the unescaped original", gotQuery)
	}
}
