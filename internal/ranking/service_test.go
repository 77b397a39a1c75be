package ranking

import (
	"context"
	"errors"
	"testing"
	"time"

	"cartelera-server/internal/model"
)

type fakeStore struct {
	items    []model.MediaWithScores
	listErr  error
	upserts  map[string]model.AggregatedScore // keyed by mediaItemID+rankingType
	kept     []string
	keptSet  bool
	upsertFn func(model.AggregatedScore) error
}

func (f *fakeStore) ListMediaWithScores(ctx context.Context) ([]model.MediaWithScores, error) {
	return f.items, f.listErr
}

func (f *fakeStore) UpsertAggregatedScore(ctx context.Context, agg model.AggregatedScore) error {
	if f.upsertFn != nil {
		if err := f.upsertFn(agg); err != nil {
			return err
		}
	}
	if f.upserts == nil {
		f.upserts = make(map[string]model.AggregatedScore)
	}
	f.upserts[agg.MediaItemID+"/"+agg.RankingType] = agg
	return nil
}

func (f *fakeStore) DeleteAggregatedScoresExcept(ctx context.Context, keepIDs []string) error {
	f.kept = keepIDs
	f.keptSet = true
	return nil
}

func media(id, title string, year int, scores ...model.SourceScore) model.MediaWithScores {
	return model.MediaWithScores{
		MediaItem: model.MediaItem{ID: id, Type: model.TypeMovie, Title: title, Year: year},
		Scores:    scores,
	}
}

func TestRecalculateAllEndToEnd(t *testing.T) {
	// Duplicate "Poor Things" rows differing only by year; the variant with
	// the higher average wins dedup, the denylisted row never ranks.
	store := &fakeStore{items: []model.MediaWithScores{
		media("pt-2023", "Poor Things", 2023, score(model.SourceFilmaffinity, 8.2, 40000)),
		media("pt-2024", "Poor Things", 2024, score(model.SourceForocoches, 6.1, 100)),
		media("hilo", "El hilo de las series 2024", 2024, score(model.SourceForocoches, 9.9, 0)),
		media("unscored", "Limbo", 2020),
	}}
	svc := NewService(store, 2)

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	n, err := svc.RecalculateAll(context.Background(), now)
	if err != nil {
		t.Fatalf("RecalculateAll: %v", err)
	}
	if n != 1 {
		t.Fatalf("processed = %d, want 1", n)
	}

	agg, ok := store.upserts["pt-2023/historical"]
	if !ok {
		t.Fatalf("expected historical aggregate for pt-2023, got %v", store.upserts)
	}
	if agg.FinalScore != 8.6 {
		t.Errorf("FinalScore = %v, want 8.6", agg.FinalScore)
	}
	if _, ok := store.upserts["pt-2024/recent"]; ok {
		t.Error("dedup loser pt-2024 must not be ranked")
	}
	if _, ok := store.upserts["hilo/recent"]; ok {
		t.Error("blacklisted row must not be ranked")
	}
	if !store.keptSet || len(store.kept) != 1 || store.kept[0] != "pt-2023" {
		t.Errorf("stale aggregates should be pruned to [pt-2023], got %v", store.kept)
	}
}

func TestRecalculateAllPropagatesFetchFailure(t *testing.T) {
	boom := errors.New("connection refused")
	store := &fakeStore{listErr: boom}
	svc := NewService(store, 2)
	_, err := svc.RecalculateAll(context.Background(), time.Now())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if store.keptSet {
		t.Error("no pruning may happen after a fetch failure")
	}
}

func TestRecalculateAllStopsOnUpsertFailure(t *testing.T) {
	boom := errors.New("disk full")
	store := &fakeStore{
		items:    []model.MediaWithScores{media("a", "Dune", 2024, score(model.SourceReddit, 8, 0))},
		upsertFn: func(model.AggregatedScore) error { return boom },
	}
	svc := NewService(store, 2)
	_, err := svc.RecalculateAll(context.Background(), time.Now())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped upsert error, got %v", err)
	}
	if store.keptSet {
		t.Error("pruning must not run after an upsert failure")
	}
}
