package episode

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"aniflux/pkg/database"
	"aniflux/pkg/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedEpisodes(t *testing.T, repo *Repo, animeID string, count int) {
	t.Helper()
	eps := make([]models.Episode, 0, count)
	for i := 1; i <= count; i++ {
		eps = append(eps, models.Episode{
			ID:           fmt.Sprintf("ep-%s-%d", animeID, i),
			AnimeID:      animeID,
			Number:       i,
			SeasonNumber: 1,
			Title:        fmt.Sprintf("Episode %d", i),
			ProviderID:   fmt.Sprintf("remote-%s-%d", animeID, i),
		})
	}
	if err := repo.ReplaceForAnime(context.Background(), animeID, eps); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestReplaceForAnimeSwapsList(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	seedEpisodes(t, repo, "a1", 3)
	seedEpisodes(t, repo, "a2", 2)

	// re-sync a1 with a different list; a2 must be untouched
	if err := repo.ReplaceForAnime(ctx, "a1", []models.Episode{
		{ID: "new-1", Number: 1, SeasonNumber: 1, Title: "Pilot"},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repo.ListByAnime(ctx, "a1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new-1" {
		t.Errorf("a1 = %+v, want replaced list", got)
	}

	other, err := repo.ListByAnime(ctx, "a2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(other) != 2 {
		t.Errorf("a2 has %d episodes, replace leaked across anime", len(other))
	}
}

func TestGetByProviderID(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()
	seedEpisodes(t, repo, "a1", 2)

	ep, err := repo.GetByProviderID(ctx, "remote-a1-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ep == nil || ep.Number != 2 {
		t.Errorf("got %+v, want episode 2", ep)
	}

	missing, err := repo.GetByProviderID(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("got %+v for unknown provider id, want nil", missing)
	}
}

func TestReassignSeasonKeepsNumbers(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()
	seedEpisodes(t, repo, "a1", 12)

	n, err := repo.ReassignSeason(ctx, "a1", 5, 8, 2)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if n != 4 {
		t.Errorf("reassigned %d rows, want 4", n)
	}

	got, err := repo.ListByAnime(ctx, "a1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("episode count changed to %d", len(got))
	}
	for _, ep := range got {
		wantSeason := 1
		if ep.Number >= 5 && ep.Number <= 8 {
			wantSeason = 2
		}
		if ep.SeasonNumber != wantSeason {
			t.Errorf("ep %d: season = %d, want %d", ep.Number, ep.SeasonNumber, wantSeason)
		}
	}
	// ordering contract: season first, then number
	if got[0].Number != 1 || got[0].SeasonNumber != 1 {
		t.Errorf("first row = %+v", got[0])
	}
	if last := got[len(got)-1]; last.SeasonNumber != 2 || last.Number != 8 {
		t.Errorf("last row = %+v, want season 2 episode 8", last)
	}
}

func TestReassignSeasonScopedToAnime(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()
	seedEpisodes(t, repo, "a1", 4)
	seedEpisodes(t, repo, "a2", 4)

	if _, err := repo.ReassignSeason(ctx, "a1", 1, 4, 3); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	other, err := repo.ListByAnime(ctx, "a2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, ep := range other {
		if ep.SeasonNumber != 1 {
			t.Errorf("a2 ep %d moved to season %d", ep.Number, ep.SeasonNumber)
		}
	}
}

func TestUpsertManualSourceRoundTrip(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	ep := models.Episode{
		ID:              "manual-1",
		AnimeID:         "a1",
		Number:          1,
		SeasonNumber:    1,
		Title:           "Manual",
		ManualSourceURL: "https://self-hosted.example/ep1.m3u8",
		SourceType:      "HLS",
		UseManualSource: true,
	}
	if err := repo.Upsert(ctx, ep); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetByID(ctx, "manual-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || !got.UseManualSource || got.ManualSourceURL != ep.ManualSourceURL {
		t.Errorf("round trip lost manual source: %+v", got)
	}

	// update in place
	ep.UseManualSource = false
	if err := repo.Upsert(ctx, ep); err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	got, _ = repo.GetByID(ctx, "manual-1")
	if got.UseManualSource {
		t.Error("upsert did not update use_manual_source")
	}
}

func TestDelete(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()
	seedEpisodes(t, repo, "a1", 1)

	ok, err := repo.Delete(ctx, "ep-a1-1")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(ctx, "ep-a1-1")
	if err != nil || ok {
		t.Errorf("second delete: ok=%v err=%v, want no-op", ok, err)
	}
}
