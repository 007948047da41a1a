package giantbomb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cellar/internal/metasearch/giantbomb"
)

func TestSearchParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("resources"); got != "game" {
			t.Errorf("unexpected resources %q", got)
		}
		if got := r.Header.Get("User-Agent"); got == "" || got == "Go-http-client/1.1" {
			t.Errorf("expected custom user agent, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status_code": 1,
			"error": "OK",
			"results": [
				{"id": 17758, "name": "Doom", "image": {"medium_url": "https://img/doom-med.jpg", "small_url": "https://img/doom-small.jpg"}, "site_detail_url": "https://www.giantbomb.com/doom/3030-17758/"},
				{"id": 9, "name": "Doom II", "image": {"small_url": "https://img/d2-small.jpg"}, "site_detail_url": "https://www.giantbomb.com/doom-ii/3030-9/"}
			]
		}`))
	}))
	defer server.Close()

	client, err := giantbomb.New("test-key", server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	results, err := client.Search(context.Background(), "doom")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Cover != "https://img/doom-med.jpg" {
		t.Fatalf("expected medium image preferred, got %q", results[0].Cover)
	}
	if results[1].Cover != "https://img/d2-small.jpg" {
		t.Fatalf("expected small image fallback, got %q", results[1].Cover)
	}
	if results[0].Source != giantbomb.Source {
		t.Fatalf("unexpected source %q", results[0].Source)
	}
}

func TestSearchSurfacesAPIRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status_code": 100, "error": "Invalid API Key", "results": []}`))
	}))
	defer server.Close()

	client, err := giantbomb.New("bad-key", server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.Search(context.Background(), "doom"); err == nil {
		t.Fatal("expected error for api-level rejection")
	}
}

func TestNewValidatesConfiguration(t *testing.T) {
	if _, err := giantbomb.New("", "https://www.giantbomb.com/api", 0); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := giantbomb.New("key", "", 0); err == nil {
		t.Fatal("expected error for missing base url")
	}
}
