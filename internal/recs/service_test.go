package recs

import (
	"context"
	"errors"
	"testing"

	"cartelera-server/internal/model"
)

type fakeStore struct {
	favorites    []model.MediaItem
	favoritesErr error

	candidates    map[string][]model.MediaWithScores
	candidatesErr error
	excludeSeen   map[string][]string

	replaced    []model.Recommendation
	replacedFor string
	replaceErr  error
	writes      int
}

func (f *fakeStore) ListFavoriteItems(ctx context.Context, userID string) ([]model.MediaItem, error) {
	return f.favorites, f.favoritesErr
}

func (f *fakeStore) ListCandidates(ctx context.Context, mediaType string, excludeIDs []string, limit int32) ([]model.MediaWithScores, error) {
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}
	if f.excludeSeen == nil {
		f.excludeSeen = make(map[string][]string)
	}
	f.excludeSeen[mediaType] = excludeIDs
	return f.candidates[mediaType], nil
}

func (f *fakeStore) ReplaceRecommendations(ctx context.Context, userID string, recs []model.Recommendation) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.writes++
	f.replacedFor = userID
	f.replaced = recs
	return nil
}

func testConfig() Config {
	return Config{CandidatePoolPerType: 50, Limit: 4, RecentWindowYears: 2}
}

func TestRefreshNoFavoritesIsDefinedEmpty(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, testConfig())

	res, err := svc.Refresh(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if res.Count != 0 || res.Message == "" {
		t.Errorf("want zero count with message, got %+v", res)
	}
	if store.writes != 0 {
		t.Error("no favorites must leave stored recommendations untouched")
	}
}

func TestRefreshNoCandidatesIsDefinedEmpty(t *testing.T) {
	store := &fakeStore{
		favorites: []model.MediaItem{{ID: "f1", Genres: []string{"Drama"}}},
	}
	svc := NewService(store, testConfig())

	res, err := svc.Refresh(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if res.Count != 0 || res.Message == "" {
		t.Errorf("want zero count with message, got %+v", res)
	}
	if store.writes != 0 {
		t.Error("empty candidate pools must leave stored recommendations untouched")
	}
}

func TestRefreshCandidateFetchFailureWritesNothing(t *testing.T) {
	store := &fakeStore{
		favorites:     []model.MediaItem{{ID: "f1", Genres: []string{"Drama"}}},
		candidatesErr: errors.New("timeout"),
	}
	svc := NewService(store, testConfig())

	if _, err := svc.Refresh(context.Background(), "u1"); err == nil {
		t.Fatal("expected error from candidate fetch")
	}
	if store.writes != 0 {
		t.Error("a read-side failure must not touch stored recommendations")
	}
}

func TestRefreshReplacesRankedRows(t *testing.T) {
	store := &fakeStore{
		favorites: []model.MediaItem{
			{ID: "fav-1", Genres: []string{"Drama"}},
			{ID: "fav-2", Genres: []string{"Sci-Fi"}},
		},
		candidates: map[string][]model.MediaWithScores{
			model.TypeMovie: {
				candidate("m1", model.TypeMovie, "Dune", 2024, []string{"Sci-Fi"}, srcScore(model.SourceReddit, 8.5)),
				candidate("m2", model.TypeMovie, "Heat", 1995, []string{"Crime"}, srcScore(model.SourceReddit, 9.0)),
			},
			model.TypeSeries: {
				candidate("s1", model.TypeSeries, "Shogun", 2024, []string{"Drama"}, srcScore(model.SourceFilmaffinity, 8.4)),
				candidate("s2", model.TypeSeries, "Lost", 2004, []string{"Mystery"}, srcScore(model.SourceFilmaffinity, 7.8)),
			},
		},
	}
	svc := NewService(store, testConfig())

	res, err := svc.Refresh(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if res.Count != 4 {
		t.Fatalf("count = %d, want 4", res.Count)
	}
	if store.writes != 1 || store.replacedFor != "u1" {
		t.Fatalf("expected one replace for u1, got writes=%d for %q", store.writes, store.replacedFor)
	}
	if len(store.replaced) != 4 {
		t.Fatalf("stored %d rows, want 4", len(store.replaced))
	}
	for i, r := range store.replaced {
		if r.Rank != i+1 {
			t.Errorf("row %d rank = %d, want %d", i, r.Rank, i+1)
		}
		if r.ID == "" || r.Reason == "" || r.UserID != "u1" {
			t.Errorf("row %d incomplete: %+v", i, r)
		}
	}
	// Genre-matched candidates outscore higher-rated ones without overlap.
	if store.replaced[0].MediaItemID != "m1" && store.replaced[0].MediaItemID != "s1" {
		t.Errorf("top pick = %s, want a genre-matched candidate", store.replaced[0].MediaItemID)
	}

	for _, mt := range []string{model.TypeMovie, model.TypeSeries} {
		got := store.excludeSeen[mt]
		if len(got) != 2 || got[0] != "fav-1" || got[1] != "fav-2" {
			t.Errorf("exclude list for %s = %v, want favorites ids", mt, got)
		}
	}
}
