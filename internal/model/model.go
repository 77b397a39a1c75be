package model

import "time"

// Media types.
const (
	TypeMovie  = "movie"
	TypeSeries = "series"
)

var AllowedTypes = map[string]struct{}{
	TypeMovie:  {},
	TypeSeries: {},
}

// Rating sources.
const (
	SourceForocoches   = "forocoches"
	SourceFilmaffinity = "filmaffinity"
	SourceReddit       = "reddit"
)

var AllowedSources = map[string]struct{}{
	SourceForocoches:   {},
	SourceFilmaffinity: {},
	SourceReddit:       {},
}

// Ranking time buckets.
const (
	RankingRecent     = "recent"
	RankingHistorical = "historical"
)

var AllowedRankingTypes = map[string]struct{}{
	RankingRecent:     {},
	RankingHistorical: {},
}

type MediaItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Genres    []string  `json:"genres"`
	PosterURL *string   `json:"poster_url,omitempty"`
	Synopsis  *string   `json:"synopsis,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SourceScore is one provider's rating for a media item. At most one row
// exists per (media_item_id, source); ingestion upserts.
type SourceScore struct {
	MediaItemID     string    `json:"media_item_id"`
	Source          string    `json:"source"`
	ScoreNormalized float64   `json:"score_normalized"`
	VotesCount      int64     `json:"votes_count"`
	ScrapedAt       time.Time `json:"scraped_at"`
}

type MediaWithScores struct {
	MediaItem
	Scores []SourceScore `json:"sources_scores"`
}

// AggregatedScore is derived state, fully recomputed on each ranking run.
type AggregatedScore struct {
	MediaItemID string    `json:"media_item_id"`
	RankingType string    `json:"ranking_type"`
	FinalScore  float64   `json:"final_score"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RankingEntry joins an aggregated score with its media item for display.
type RankingEntry struct {
	FinalScore  float64   `json:"final_score"`
	RankingType string    `json:"ranking_type"`
	Item        MediaItem `json:"media_item"`
}

type GenreGroup struct {
	Name   string   `json:"name"`
	Tokens []string `json:"tokens"`
}

type Recommendation struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MediaItemID string    `json:"media_item_id"`
	Reason      string    `json:"reason"`
	Rank        int       `json:"rank"`
	CreatedAt   time.Time `json:"created_at"`
}
