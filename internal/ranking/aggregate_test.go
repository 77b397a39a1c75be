package ranking

import (
	"math"
	"testing"
	"time"

	"cartelera-server/internal/model"
)

func date(year int) time.Time {
	return time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func score(src string, val float64, votes int64) model.SourceScore {
	return model.SourceScore{Source: src, ScoreNormalized: val, VotesCount: votes}
}

func TestAggregateNoScores(t *testing.T) {
	_, ok := Aggregate(model.MediaItem{ID: "x", Year: 2024}, nil, date(2026), 2)
	if ok {
		t.Fatal("item without scores must be excluded, not zero-scored")
	}
}

func TestAggregateSingleSource(t *testing.T) {
	item := model.MediaItem{ID: "poor-things", Year: 2023}
	agg, ok := Aggregate(item, []model.SourceScore{
		score(model.SourceFilmaffinity, 8.2, 40000),
	}, date(2026), 2)
	if !ok {
		t.Fatal("single-source item is valid")
	}
	// 8.2 + min(0.5, 40000/100000) = 8.2 + 0.4 = 8.6
	if agg.FinalScore != 8.6 {
		t.Errorf("FinalScore = %v, want 8.6", agg.FinalScore)
	}
	if agg.RankingType != model.RankingHistorical {
		t.Errorf("RankingType = %q, want historical (2023 < 2024 cutoff)", agg.RankingType)
	}
	if agg.MediaItemID != "poor-things" {
		t.Errorf("MediaItemID = %q", agg.MediaItemID)
	}
}

func TestAggregateMultiSourceMean(t *testing.T) {
	item := model.MediaItem{ID: "a", Year: 2025}
	agg, ok := Aggregate(item, []model.SourceScore{
		score(model.SourceFilmaffinity, 8.0, 0),
		score(model.SourceReddit, 6.0, 0),
		score(model.SourceForocoches, 7.0, 0),
	}, date(2026), 2)
	if !ok {
		t.Fatal("expected aggregate")
	}
	if agg.FinalScore != 7.0 {
		t.Errorf("FinalScore = %v, want 7.0 (plain mean, zero votes bonus)", agg.FinalScore)
	}
	if agg.RankingType != model.RankingRecent {
		t.Errorf("RankingType = %q, want recent", agg.RankingType)
	}
}

func TestAggregateCapsAtTen(t *testing.T) {
	item := model.MediaItem{ID: "a", Year: 2025}
	agg, _ := Aggregate(item, []model.SourceScore{
		score(model.SourceFilmaffinity, 9.9, 500000),
	}, date(2026), 2)
	if agg.FinalScore != 10.0 {
		t.Errorf("FinalScore = %v, want capped 10.0", agg.FinalScore)
	}
}

func TestAggregateBounds(t *testing.T) {
	// bonus is non-negative, so finalScore >= rounded mean, and never > 10
	cases := []struct {
		val   float64
		votes int64
	}{
		{0, 0}, {0, 999999}, {5.55, 123}, {9.6, 100000}, {10, 0},
	}
	for _, c := range cases {
		agg, _ := Aggregate(model.MediaItem{ID: "a", Year: 2000},
			[]model.SourceScore{score(model.SourceReddit, c.val, c.votes)}, date(2026), 2)
		if agg.FinalScore < 0 || agg.FinalScore > 10 {
			t.Errorf("score %v votes %d: FinalScore %v out of [0,10]", c.val, c.votes, agg.FinalScore)
		}
		if agg.FinalScore+1e-9 < math.Round(c.val*10)/10 {
			t.Errorf("score %v votes %d: FinalScore %v below mean", c.val, c.votes, agg.FinalScore)
		}
	}
}

func TestPopularityBonusSaturates(t *testing.T) {
	if got := PopularityBonus(0); got != 0 {
		t.Errorf("PopularityBonus(0) = %v", got)
	}
	if got := PopularityBonus(40000); got != 0.4 {
		t.Errorf("PopularityBonus(40000) = %v, want 0.4", got)
	}
	if got := PopularityBonus(50000); got != 0.5 {
		t.Errorf("PopularityBonus(50000) = %v, want 0.5", got)
	}
	if got := PopularityBonus(5000000); got != 0.5 {
		t.Errorf("PopularityBonus(5000000) = %v, want saturated 0.5", got)
	}
}

func TestRankingTypeBoundary(t *testing.T) {
	now := date(2026)
	if got := RankingType(2024, now, 2); got != model.RankingRecent {
		t.Errorf("year 2024 at 2026 = %q, want recent (cutoff inclusive)", got)
	}
	if got := RankingType(2023, now, 2); got != model.RankingHistorical {
		t.Errorf("year 2023 at 2026 = %q, want historical", got)
	}
	// only the calendar year matters, not month/day
	late := time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC)
	if got := RankingType(2024, late, 2); got != model.RankingRecent {
		t.Errorf("year comparison must ignore month/day, got %q", got)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	item := model.MediaItem{ID: "a", Year: 2024}
	scores := []model.SourceScore{
		score(model.SourceFilmaffinity, 8.2, 40000),
		score(model.SourceReddit, 7.4, 12000),
	}
	now := date(2026)
	first, _ := Aggregate(item, scores, now, 2)
	second, _ := Aggregate(item, scores, now, 2)
	if first != second {
		t.Fatalf("same input produced different aggregates: %v vs %v", first, second)
	}
}
