package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"aniflux/pkg/models"
)

type fakeEpisodeStore struct {
	ep *models.Episode
}

func (f *fakeEpisodeStore) GetByProviderID(ctx context.Context, providerID string) (*models.Episode, error) {
	return f.ep, nil
}

func newSourcesRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group(""))
	return r
}

func TestSourcesManualOverride(t *testing.T) {
	store := &fakeEpisodeStore{ep: &models.Episode{
		ID:              "ep-1",
		ProviderID:      "real-ep-1",
		UseManualSource: true,
		ManualSourceURL: "https://self-hosted.example/ep1/master.m3u8",
		SourceType:      "hls",
	}}
	h := NewHandler(NewResolver(&fakeWatchAPI{}), store)
	router := newSourcesRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/episodes/real-ep-1/sources", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var data models.SourceData
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Sources) != 1 || data.Sources[0].URL != store.ep.ManualSourceURL {
		t.Errorf("got %+v, want manual source", data.Sources)
	}
	if !data.Sources[0].IsM3U8 {
		t.Error("source_type hls should set isM3U8 (case insensitive)")
	}
}

func TestSourcesNoOverrideResolvesViaProvider(t *testing.T) {
	store := &fakeEpisodeStore{ep: &models.Episode{ID: "ep-1", ProviderID: "real-ep-1"}}
	api := &fakeWatchAPI{err: context.DeadlineExceeded}
	h := NewHandler(NewResolver(api), store)
	router := newSourcesRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/episodes/real-ep-1/sources", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, endpoint must never fail", w.Code)
	}

	var data models.SourceData
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if api.calls != 1 {
		t.Errorf("provider called %d times, want 1", api.calls)
	}
	if len(data.Sources) != 1 || data.Sources[0].URL != TestStreamURL {
		t.Errorf("got %+v, want test stream", data.Sources)
	}
}
