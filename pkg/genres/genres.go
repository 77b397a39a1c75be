// Package genres maps heterogeneous raw genre tokens (numeric provider ids,
// English or Spanish names) onto canonical display names and implements the
// grouped selection semantics used by the ranking filter.
package genres

import (
	"sort"
	"strings"
)

// displayNames is the canonical lookup: TMDB numeric genre ids and known
// English names resolve to one localized display name. Tokens absent from
// the table resolve to themselves.
var displayNames = map[string]string{
	// TMDB movie genre ids
	"28":    "Acción",
	"12":    "Aventura",
	"16":    "Animación",
	"35":    "Comedia",
	"80":    "Crimen",
	"99":    "Documental",
	"18":    "Drama",
	"10751": "Familia",
	"14":    "Fantasía",
	"36":    "Historia",
	"27":    "Terror",
	"10402": "Música",
	"9648":  "Misterio",
	"10749": "Romance",
	"878":   "Ciencia ficción",
	"10770": "Película de TV",
	"53":    "Suspense",
	"10752": "Bélica",
	"37":    "Western",
	// TMDB TV genre ids
	"10759": "Acción",
	"10762": "Infantil",
	"10764": "Reality",
	"10765": "Ciencia ficción",
	"10766": "Telenovela",
	"10768": "Bélica",
	// English names as delivered by some sources
	"Action":          "Acción",
	"Adventure":       "Aventura",
	"Animation":       "Animación",
	"Comedy":          "Comedia",
	"Crime":           "Crimen",
	"Documentary":     "Documental",
	"Family":          "Familia",
	"Fantasy":         "Fantasía",
	"History":         "Historia",
	"Horror":          "Terror",
	"Music":           "Música",
	"Mystery":         "Misterio",
	"Sci-Fi":          "Ciencia ficción",
	"Science Fiction": "Ciencia ficción",
	"Thriller":        "Suspense",
	"War":             "Bélica",
	"Classic":         "Clásico",
	"Clasico":         "Clásico",
}

// Resolve returns the canonical display name for a raw genre token.
// Two tiers: exact table match, then identity. Unknown tokens never fail.
func Resolve(token string) string {
	t := strings.TrimSpace(token)
	if name, ok := displayNames[t]; ok {
		return name
	}
	return t
}

// GroupTokens buckets every raw token across the given genre sets under its
// display name. Returns the groups and the display names sorted
// lexicographically for stable ordering.
func GroupTokens(genreSets [][]string) (map[string][]string, []string) {
	seen := make(map[string]map[string]struct{})
	for _, set := range genreSets {
		for _, raw := range set {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			name := Resolve(raw)
			if seen[name] == nil {
				seen[name] = make(map[string]struct{})
			}
			seen[name][raw] = struct{}{}
		}
	}
	groups := make(map[string][]string, len(seen))
	names := make([]string, 0, len(seen))
	for name, tokens := range seen {
		list := make([]string, 0, len(tokens))
		for t := range tokens {
			list = append(list, t)
		}
		sort.Strings(list)
		groups[name] = list
		names = append(names, name)
	}
	sort.Strings(names)
	return groups, names
}

// IsActive reports whether a display group is selected: true when any of its
// raw tokens is in the current selection.
func IsActive(selection, groupTokens []string) bool {
	sel := make(map[string]struct{}, len(selection))
	for _, s := range selection {
		sel[s] = struct{}{}
	}
	for _, t := range groupTokens {
		if _, ok := sel[t]; ok {
			return true
		}
	}
	return false
}

// Toggle flips a display group in the selection. An active group has all its
// raw tokens removed; an inactive one has all of them added. Toggling with
// no tokens clears the entire selection.
func Toggle(selection, groupTokens []string) []string {
	if len(groupTokens) == 0 {
		return nil
	}
	group := make(map[string]struct{}, len(groupTokens))
	for _, t := range groupTokens {
		group[t] = struct{}{}
	}
	if IsActive(selection, groupTokens) {
		out := make([]string, 0, len(selection))
		for _, s := range selection {
			if _, ok := group[s]; !ok {
				out = append(out, s)
			}
		}
		return out
	}
	out := make([]string, 0, len(selection)+len(groupTokens))
	out = append(out, selection...)
	out = append(out, groupTokens...)
	return out
}
