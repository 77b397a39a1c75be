package ranking

import (
	"math"
	"time"

	"cartelera-server/internal/model"
)

// Vote counts are summed raw across sources; a forum poll and a curated
// critic site weigh the same per vote. Known skew, kept as-is.
const (
	popularityBonusCap     = 0.5
	popularityVotesDivisor = 100000.0
	maxFinalScore          = 10.0
)

// PopularityBonus converts a total vote count into a score bonus,
// saturating at popularityBonusCap.
func PopularityBonus(totalVotes int64) float64 {
	return math.Min(popularityBonusCap, float64(totalVotes)/popularityVotesDivisor)
}

// Aggregate combines a media item's source scores into one ranking entry.
// Returns false when the item has no scores: unscored items are excluded
// from ranking, they do not get a zero entry.
func Aggregate(item model.MediaItem, scores []model.SourceScore, now time.Time, recentWindowYears int) (model.AggregatedScore, bool) {
	if len(scores) == 0 {
		return model.AggregatedScore{}, false
	}
	var total float64
	var votes int64
	for _, s := range scores {
		total += s.ScoreNormalized
		votes += s.VotesCount
	}
	avg := total / float64(len(scores))
	final := math.Min(maxFinalScore, round1(avg+PopularityBonus(votes)))
	return model.AggregatedScore{
		MediaItemID: item.ID,
		RankingType: RankingType(item.Year, now, recentWindowYears),
		FinalScore:  final,
		UpdatedAt:   now,
	}, true
}

// RankingType classifies a release year as recent or historical against a
// rolling cutoff. Only calendar years are compared: with a 2-year window in
// 2026 the cutoff is 2024, inclusive.
func RankingType(year int, now time.Time, recentWindowYears int) string {
	if year >= now.Year()-recentWindowYears {
		return model.RankingRecent
	}
	return model.RankingHistorical
}

// AverageScore is the plain mean of the normalized source scores, zero when
// there are none. Used as the dedup basis score and by recommendations.
func AverageScore(scores []model.SourceScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var total float64
	for _, s := range scores {
		total += s.ScoreNormalized
	}
	return total / float64(len(scores))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
