package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetCharactersSendsNormalizedQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/character" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"info":{"totalPages":3,"count":2,"previousPage":null,"nextPage":"http://x/character?page=2"},"data":[{"_id":1,"name":"Mickey"},{"_id":2,"name":"Minnie"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL, Timeout: time.Second})
	resp, err := c.GetCharacters(context.Background(), map[string]any{
		"page": 1, "pageSize": 2, "name": "", "tvShows": "",
	})
	if err != nil {
		t.Fatalf("GetCharacters failed: %v", err)
	}
	if gotQuery != "page=1&pageSize=2" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(resp.Data.Items) != 2 || resp.Data.Items[1].Name != "Minnie" {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if resp.Info == nil || resp.Info.TotalPages != 3 || resp.Info.IsLastPage() {
		t.Fatalf("unexpected info: %+v", resp.Info)
	}
}

func TestGetCharactersNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL})
	_, err := c.GetCharacters(context.Background(), map[string]any{"page": 1})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestGetCharactersMalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL})
	if _, err := c.GetCharacters(context.Background(), nil); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL})
	for i := 0; i < breakerTrips; i++ {
		if _, err := c.GetCharacters(context.Background(), nil); err == nil {
			t.Fatalf("expected failure %d", i)
		}
	}
	_, err := c.GetCharacters(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "unavailable") {
		t.Fatalf("expected open breaker error, got %v", err)
	}
	if got := hits.Load(); got != breakerTrips {
		t.Fatalf("expected %d server hits, got %d", breakerTrips, got)
	}
}
