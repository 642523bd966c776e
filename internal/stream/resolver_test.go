package stream

import (
	"context"
	"testing"

	"aniflux/internal/provider"
)

type fakeWatchAPI struct {
	result *provider.WatchResult
	err    error
	calls  int
}

func (f *fakeWatchAPI) Watch(ctx context.Context, id string) (*provider.WatchResult, error) {
	f.calls++
	return f.result, f.err
}

func TestResolveMockIDSkipsProvider(t *testing.T) {
	api := &fakeWatchAPI{}
	r := NewResolver(api)

	for _, id := range []string{"mock-provider-id", "mock-fallback-3"} {
		data := r.Resolve(context.Background(), id)
		if len(data.Sources) != 1 || data.Sources[0].URL != TestStreamURL {
			t.Errorf("%s: got %+v, want test stream", id, data.Sources)
		}
		if !data.Sources[0].IsM3U8 {
			t.Errorf("%s: test stream must be flagged as HLS", id)
		}
	}
	if api.calls != 0 {
		t.Errorf("provider called %d times for mock ids, want 0", api.calls)
	}
}

func TestResolveProviderFailureFallsBack(t *testing.T) {
	api := &fakeWatchAPI{err: provider.ErrProviderUnavailable}
	r := NewResolver(api)

	data := r.Resolve(context.Background(), "real-ep-1")
	if len(data.Sources) != 1 || data.Sources[0].URL != TestStreamURL {
		t.Errorf("got %+v, want test stream on provider failure", data.Sources)
	}
}

func TestResolveEmptySourcesFallsBack(t *testing.T) {
	api := &fakeWatchAPI{result: &provider.WatchResult{Sources: []provider.RawSource{}}}
	r := NewResolver(api)

	data := r.Resolve(context.Background(), "real-ep-1")
	if len(data.Sources) != 1 || data.Sources[0].URL != TestStreamURL {
		t.Errorf("got %+v, want test stream for empty source list", data.Sources)
	}
}

func TestResolveMapsSources(t *testing.T) {
	api := &fakeWatchAPI{result: &provider.WatchResult{
		Sources: []provider.RawSource{
			{URL: "https://cdn.example/1080.m3u8", Quality: "1080p", IsM3U8: true},
			{URL: "https://cdn.example/raw.mp4"},
		},
		Download: "https://cdn.example/dl.mp4",
	}}
	r := NewResolver(api)

	data := r.Resolve(context.Background(), "real-ep-1")
	if len(data.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(data.Sources))
	}
	if data.Sources[0].Quality != "1080p" || !data.Sources[0].IsM3U8 {
		t.Errorf("source 0 mapped wrong: %+v", data.Sources[0])
	}
	if data.Sources[1].Quality != "default" {
		t.Errorf("missing quality should default, got %q", data.Sources[1].Quality)
	}
	if data.Download != "https://cdn.example/dl.mp4" {
		t.Errorf("download = %q", data.Download)
	}
}
