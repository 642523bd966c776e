package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aniflux/pkg/utils"
)

func testClient(baseURL string) *Client {
	return NewClient(utils.ProviderConfig{
		BaseURL:           baseURL,
		SearchTimeout:     2 * time.Second,
		FetchTimeout:      2 * time.Second,
		CacheTTL:          time.Minute,
		RequestsPerSecond: 1000,
	})
}

func TestSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jujutsu%20kaisen" && r.URL.Path != "/jujutsu kaisen" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":"jujutsu-kaisen-tv","title":"Jujutsu Kaisen (TV)"}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	results, err := c.Search(context.Background(), "jujutsu kaisen")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "jujutsu-kaisen-tv" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestSearchCachesResults(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	for i := 0; i < 3; i++ {
		if _, err := c.Search(context.Background(), "One Piece"); err != nil {
			t.Fatalf("Search: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (cached)", hits)
	}
}

func TestSearchNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Search(context.Background(), "naruto")
	if err == nil {
		t.Fatal("expected error")
	}

	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway {
		t.Errorf("got %v, want StatusError with code 502", err)
	}
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Error("status error should unwrap to ErrProviderUnavailable")
	}
}

func TestSearchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Search(context.Background(), "naruto"); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("got %v, want ErrMalformedResponse", err)
	}
}

func TestSearchMissingResultsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Search(context.Background(), "naruto"); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("got %v, want ErrMalformedResponse for missing results field", err)
	}
}

func TestSearchTimeoutCancelsRequest(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done() // hang until the client gives up
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.SearchTimeout = 100 * time.Millisecond

	start := time.Now()
	_, err := c.Search(context.Background(), "slow title")
	elapsed := time.Since(start)

	<-started
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("got %v, want ErrProviderUnavailable on timeout", err)
	}
	if elapsed > time.Second {
		t.Errorf("timeout took %v, request was not cancelled", elapsed)
	}
}

func TestInfoFetchesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/info/jujutsu-kaisen-tv" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": "jujutsu-kaisen-tv",
			"title": "Jujutsu Kaisen (TV)",
			"image": "https://cdn.example/jjk.jpg",
			"episodes": [
				{"id": "jujutsu-kaisen-tv-episode-1", "number": 1},
				{"id": "jujutsu-kaisen-tv-episode-2", "number": 2}
			]
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	info, err := c.Info(context.Background(), "jujutsu-kaisen-tv")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if len(info.Episodes) != 2 || info.Episodes[1].Number != 2 {
		t.Errorf("unexpected episodes: %+v", info.Episodes)
	}
	if info.Image != "https://cdn.example/jjk.jpg" {
		t.Errorf("unexpected image %q", info.Image)
	}
}

func TestWatchParsesSources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/watch/jujutsu-kaisen-tv-episode-1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"sources": [
				{"url": "https://cdn.example/ep1.m3u8", "quality": "1080p", "isM3U8": true}
			],
			"download": "https://cdn.example/ep1.mp4"
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	res, err := c.Watch(context.Background(), "jujutsu-kaisen-tv-episode-1")
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if len(res.Sources) != 1 || !res.Sources[0].IsM3U8 {
		t.Errorf("unexpected sources: %+v", res.Sources)
	}
	if res.Download != "https://cdn.example/ep1.mp4" {
		t.Errorf("unexpected download %q", res.Download)
	}
}

func TestWatchMissingSourcesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"download":"x"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Watch(context.Background(), "ep-1"); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("got %v, want ErrMalformedResponse", err)
	}
}
