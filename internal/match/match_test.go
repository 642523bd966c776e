package match

import (
	"testing"

	"aniflux/internal/provider"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jujutsu Kaisen: 2nd Season", "jujutsukaisen2ndseason"},
		{"  ONE PIECE  ", "onepiece"},
		{"Re:Zero -Starting Life in Another World-", "rezerostartinglifeinanotherworld"},
		{"86", "86"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBestMatchExact(t *testing.T) {
	candidates := []provider.SearchResult{
		{ID: "jujutsu-kaisen-tv", Title: "Jujutsu Kaisen (TV)"},
		{ID: "jujutsu-kaisen-2nd-season", Title: "Jujutsu Kaisen 2nd Season"},
	}

	got, ok := BestMatch("Jujutsu Kaisen: 2nd Season", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ID != "jujutsu-kaisen-2nd-season" {
		t.Errorf("matched %q, want the exact normalized candidate", got.ID)
	}
}

func TestBestMatchFallsBackToFirst(t *testing.T) {
	candidates := []provider.SearchResult{
		{ID: "naruto", Title: "Naruto"},
		{ID: "naruto-shippuden", Title: "Naruto Shippuden"},
	}

	got, ok := BestMatch("Naruto Kai", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ID != "naruto" {
		t.Errorf("matched %q, want first candidate when no exact match", got.ID)
	}
}

func TestBestMatchEmpty(t *testing.T) {
	if _, ok := BestMatch("anything", nil); ok {
		t.Error("expected no match for empty candidate list")
	}
}
