// Package titles provides title normalization, blacklist filtering and
// deduplication for noisy scraped catalogs. Normalized titles are comparison
// keys only and are never displayed.
package titles

import (
	"regexp"
	"strings"
)

var (
	seasonRe = regexp.MustCompile(`\s*[-–:]?\s*(?:temporada|season)\s*\d+`)
	shortRe  = regexp.MustCompile(`\s*[-–:]?\s*\b[ts]\d+\b`)
	suffixRe = regexp.MustCompile(`\s*[-–:]?\s*\bopiniones\b`)
	danglRe  = regexp.MustCompile(`\s*[-–:]\s*$`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Normalize lowercases a title, strips season/edition noise ("Temporada 3",
// "Season 2", "S2", "T1", trailing "opiniones") and collapses whitespace.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = seasonRe.ReplaceAllString(s, "")
	s = shortRe.ReplaceAllString(s, "")
	s = suffixRe.ReplaceAllString(s, "")
	s = danglRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Blacklist holds normalized phrases marking rows that are not real media:
// forum meta-threads, connectivity test rows, list-style headlines.
var Blacklist = []string{
	"el hilo de las series",
	"hilo de las series",
	"hilo series",
	"test connectivity",
	"test connection movie",
	"las mejores peliculas de",
}

// IsBlacklisted reports whether a title's normalized form contains any
// blacklist phrase. Substring match so suffixed variants
// ("el hilo de las series 2024") are caught too.
func IsBlacklisted(title string) bool {
	norm := Normalize(title)
	for _, bl := range Blacklist {
		if strings.Contains(norm, bl) {
			return true
		}
	}
	return false
}

// FilterBlacklisted returns the items whose extracted title is not
// blacklisted. Input order is preserved; retained items are not copied.
func FilterBlacklisted[T any](items []T, title func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !IsBlacklisted(title(it)) {
			out = append(out, it)
		}
	}
	return out
}

// DeduplicateByTitle collapses items sharing a normalized title, keeping the
// highest-scoring variant. Ties keep the first-seen item; a nil score
// function treats everything as tied. Output preserves first-occurrence
// order of the winning keys.
func DeduplicateByTitle[T any](items []T, title func(T) string, score func(T) float64) []T {
	best := make(map[string]T, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		key := Normalize(title(it))
		kept, seen := best[key]
		if !seen {
			best[key] = it
			order = append(order, key)
			continue
		}
		if score != nil && score(it) > score(kept) {
			best[key] = it
		}
	}
	out := make([]T, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

// CleanMediaList applies blacklist filtering then deduplication. Filtering
// runs first so a blacklisted row can never win a dedup contest.
func CleanMediaList[T any](items []T, title func(T) string, score func(T) float64) []T {
	return DeduplicateByTitle(FilterBlacklisted(items, title), title, score)
}
