package anime

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"aniflux/pkg/database"
	"aniflux/pkg/models"
)

func testRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(db)
}

func seedCatalog(t *testing.T, repo *Repo) {
	t.Helper()
	ctx := context.Background()
	entries := []models.Anime{
		{ID: "jjk", Title: "Jujutsu Kaisen", Tags: []string{"Action", "Supernatural"},
			Type: "TV", Status: models.StatusAiring, Episodes: 23, Studio: "MAPPA"},
		{ID: "frieren", Title: "Frieren: Beyond Journey's End", Tags: []string{"Fantasy"},
			Type: "TV", Status: models.StatusFinished, Episodes: 28, Studio: "Madhouse"},
		{ID: "suzume", Title: "Suzume", Tags: []string{"Fantasy", "Drama"},
			Type: "MOVIE", Status: models.StatusFinished, Episodes: 1},
	}
	for _, a := range entries {
		if err := repo.Upsert(ctx, a); err != nil {
			t.Fatalf("seed %s: %v", a.ID, err)
		}
	}
}

func TestListKeywordFilter(t *testing.T) {
	repo := testRepo(t)
	seedCatalog(t, repo)
	ctx := context.Background()

	got, err := repo.List(ctx, ListQuery{Q: "mappa"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "jjk" {
		t.Errorf("keyword should match studio too, got %+v", got)
	}
}

func TestListGenreAnyMatch(t *testing.T) {
	repo := testRepo(t)
	seedCatalog(t, repo)

	got, err := repo.List(context.Background(), ListQuery{Genres: []string{"fantasy", "action"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("any-match over two genres should hit all three rows, got %d", len(got))
	}
}

func TestListStatusAndTypeFilters(t *testing.T) {
	repo := testRepo(t)
	seedCatalog(t, repo)
	ctx := context.Background()

	got, err := repo.List(ctx, ListQuery{Status: models.StatusFinished, Type: "MOVIE"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "suzume" {
		t.Errorf("got %+v, want only the movie", got)
	}

	n, err := repo.Count(ctx, ListQuery{Status: models.StatusFinished})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestListAiring(t *testing.T) {
	repo := testRepo(t)
	seedCatalog(t, repo)

	got, err := repo.ListAiring(context.Background())
	if err != nil {
		t.Fatalf("list airing: %v", err)
	}
	if len(got) != 1 || got[0].ID != "jjk" {
		t.Errorf("got %+v, want only the airing entry", got)
	}
}

func TestUpsertRoundTripsTags(t *testing.T) {
	repo := testRepo(t)
	seedCatalog(t, repo)

	a, err := repo.GetByID(context.Background(), "jjk")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a == nil || len(a.Tags) != 2 || a.Tags[0] != "Action" {
		t.Errorf("tags round trip broken: %+v", a)
	}
}

func TestUpdateEpisodeCount(t *testing.T) {
	repo := testRepo(t)
	seedCatalog(t, repo)
	ctx := context.Background()

	if err := repo.UpdateEpisodeCount(ctx, "jjk", 24); err != nil {
		t.Fatalf("update: %v", err)
	}
	a, _ := repo.GetByID(ctx, "jjk")
	if a.Episodes != 24 {
		t.Errorf("episodes = %d, want 24", a.Episodes)
	}
	if a.Title != "Jujutsu Kaisen" {
		t.Error("update touched other columns")
	}
}

func TestGetByIDMissing(t *testing.T) {
	repo := testRepo(t)
	a, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a != nil {
		t.Errorf("got %+v for unknown id, want nil", a)
	}
}
