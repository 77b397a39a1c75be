// Package recs produces lightweight personalized recommendations from a
// user's favorites: an additive genre-affinity heuristic, not a learned
// model.
package recs

import (
	"sort"

	"cartelera-server/internal/model"
	"cartelera-server/internal/ranking"
)

// Each shared genre is worth this much on top of the candidate's average
// source score.
const genreMatchWeight = 3.0

type Scored struct {
	Item     model.MediaWithScores
	Score    float64
	AvgScore float64
	Matching []string
}

// FavoriteGenres collects the distinct raw genre tokens across a user's
// favorited items.
func FavoriteGenres(favorites []model.MediaItem) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range favorites {
		for _, g := range f.Genres {
			set[g] = struct{}{}
		}
	}
	return set
}

// ScoreCandidates ranks candidates by genre overlap with the favorite set
// plus their average source score. The sort is stable: equal scores keep
// input order, so recomputation over the same pool is deterministic.
func ScoreCandidates(candidates []model.MediaWithScores, favGenres map[string]struct{}) []Scored {
	out := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		var matching []string
		for _, g := range c.Genres {
			if _, ok := favGenres[g]; ok {
				matching = append(matching, g)
			}
		}
		avg := ranking.AverageScore(c.Scores)
		out = append(out, Scored{
			Item:     c,
			Score:    genreMatchWeight*float64(len(matching)) + avg,
			AvgScore: avg,
			Matching: matching,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// BalanceByType interleaves the movie and series pools half-and-half up to
// limit, backfilling from whichever pool has surplus when the other runs
// short. Both inputs must already be sorted best-first.
func BalanceByType(movies, series []Scored, limit int) []Scored {
	if limit <= 0 {
		return nil
	}
	half := limit / 2
	nMovies := min(len(movies), half)
	nSeries := min(len(series), limit-half)
	// backfill surplus
	if rest := limit - nMovies - nSeries; rest > 0 {
		if extra := min(len(movies)-nMovies, rest); extra > 0 {
			nMovies += extra
			rest -= extra
		}
		if extra := min(len(series)-nSeries, rest); extra > 0 {
			nSeries += extra
		}
	}
	out := make([]Scored, 0, nMovies+nSeries)
	out = append(out, movies[:nMovies]...)
	out = append(out, series[:nSeries]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
