package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"aniflux/pkg/utils"
)

const appName = "aniflux"

// SearchResult is one candidate from the provider's title search, in the
// provider's original (popularity-sorted) order.
type SearchResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// RawEpisode is an episode as the provider lists it.
type RawEpisode struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title,omitempty"`
}

// AnimeInfo is the provider's detail payload for one series.
type AnimeInfo struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Image    string       `json:"image"`
	Episodes []RawEpisode `json:"episodes"`
}

// RawSource is one playable source as the provider returns it.
type RawSource struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	IsM3U8  bool   `json:"isM3U8"`
}

// WatchResult is the provider's stream-resolution payload for one episode.
type WatchResult struct {
	Sources  []RawSource `json:"sources"`
	Download string      `json:"download"`
}

// Client talks to a Consumet/Gogoanime-style metadata and streaming API.
//
// Every call takes its deadline from a per-request context, so a timeout
// actively cancels the in-flight request instead of leaking the socket.
// Search results are cached briefly and all calls go through a shared rate
// limiter; public provider instances throttle aggressively.
type Client struct {
	BaseURL       string
	HTTPClient    *http.Client
	SearchTimeout time.Duration
	FetchTimeout  time.Duration

	limiter *rate.Limiter
	cache   *cache.Cache
}

func NewClient(cfg utils.ProviderConfig) *Client {
	return &Client{
		BaseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		HTTPClient:    &http.Client{},
		SearchTimeout: cfg.SearchTimeout,
		FetchTimeout:  cfg.FetchTimeout,
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cache:         cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

// Search looks the title up on the provider: GET {base}/{urlencoded title}.
// Zero results is not an error here; the matcher decides what that means.
func (c *Client) Search(ctx context.Context, title string) ([]SearchResult, error) {
	key := "search:" + strings.ToLower(strings.TrimSpace(title))
	if v, ok := c.cache.Get(key); ok {
		return v.([]SearchResult), nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.SearchTimeout)
	defer cancel()

	var body searchResponse
	if err := c.fetchJSON(ctx, c.BaseURL+"/"+url.PathEscape(title), &body); err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}
	if body.Results == nil {
		return nil, fmt.Errorf("search %q: missing results field: %w", title, ErrMalformedResponse)
	}

	c.cache.Set(key, body.Results, cache.DefaultExpiration)
	return body.Results, nil
}

// Info fetches the provider's detail record: GET {base}/info/{providerID}.
func (c *Client) Info(ctx context.Context, providerID string) (*AnimeInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.FetchTimeout)
	defer cancel()

	var info AnimeInfo
	if err := c.fetchJSON(ctx, c.BaseURL+"/info/"+url.PathEscape(providerID), &info); err != nil {
		return nil, fmt.Errorf("info %q: %w", providerID, err)
	}
	return &info, nil
}

// Watch resolves playable sources: GET {base}/watch/{episodeProviderID}.
func (c *Client) Watch(ctx context.Context, episodeProviderID string) (*WatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.FetchTimeout)
	defer cancel()

	var res WatchResult
	if err := c.fetchJSON(ctx, c.BaseURL+"/watch/"+url.PathEscape(episodeProviderID), &res); err != nil {
		return nil, fmt.Errorf("watch %q: %w", episodeProviderID, err)
	}
	if res.Sources == nil {
		return nil, fmt.Errorf("watch %q: missing sources field: %w", episodeProviderID, ErrMalformedResponse)
	}
	return &res, nil
}

func (c *Client) fetchJSON(ctx context.Context, rawURL string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", ErrProviderUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", appName+"/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// transport failure or context timeout
		return fmt.Errorf("%v: %w", err, ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", ErrProviderUnavailable)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode body: %w", ErrMalformedResponse)
	}
	return nil
}
