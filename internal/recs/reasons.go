package recs

import (
	"fmt"
	"hash/fnv"
	"time"

	"cartelera-server/internal/model"
	"cartelera-server/pkg/genres"
)

// reasonInput is everything a reason rule may inspect.
type reasonInput struct {
	Item        model.MediaItem
	AvgScore    float64
	Matching    []string
	BySource    map[string]*model.SourceScore
	CurrentYear int
	RecentFrom  int
}

type reasonRule struct {
	match func(in reasonInput) bool
	build func(in reasonInput) string
}

// reasonRules is evaluated in order; the first matching rule wins. The order
// is the contract, the wording is not.
var reasonRules = []reasonRule{
	{ // personalized match on a shared genre with a high average
		match: func(in reasonInput) bool {
			return len(in.Matching) > 0 && in.AvgScore > 7.5
		},
		build: func(in reasonInput) string {
			genre := genres.Resolve(in.Matching[0])
			return pickTemplate(in.Item.ID,
				fmt.Sprintf("Match directo: tu afinidad por %s cruza con este título de alta valoración (%.1f de media).", genre, in.AvgScore),
				fmt.Sprintf("Recomendación personal: '%s' destaca por su ejecución en %s, por encima de la media de tus favoritos.", in.Item.Title, genre),
				fmt.Sprintf("Alineación de perfil: '%s' resuena con tus preferencias en %s.", in.Item.Title, genre),
			)
		},
	},
	{ // near-universal acclaim across sources
		match: func(in reasonInput) bool { return in.AvgScore > 8.5 },
		build: func(in reasonInput) string {
			return fmt.Sprintf("Consenso crítico: con una media global de %.1f, '%s' está validada por todas las fuentes.", in.AvgScore, in.Item.Title)
		},
	},
	{ // community loves it, traditional critics do not: cult pattern
		match: func(in reasonInput) bool {
			reddit := in.BySource[model.SourceReddit]
			fa := in.BySource[model.SourceFilmaffinity]
			return reddit != nil && fa != nil && reddit.ScoreNormalized > 8.2 && fa.ScoreNormalized < 7.0
		},
		build: func(in reasonInput) string {
			return fmt.Sprintf("Fenómeno de nicho: la disparidad entre crítica tradicional y comunidad revela en '%s' una obra de culto.", in.Item.Title)
		},
	},
	{ // single-source outlier from the forum crowd
		match: func(in reasonInput) bool {
			fc := in.BySource[model.SourceForocoches]
			return fc != nil && fc.ScoreNormalized > 8.5
		},
		build: func(in reasonInput) string {
			return fmt.Sprintf("Alto impacto: Forocoches destaca '%s' por su ritmo y entretenimiento puro.", in.Item.Title)
		},
	},
	{ // fresh release with a solid rating
		match: func(in reasonInput) bool {
			return in.Item.Year >= in.RecentFrom && in.AvgScore >= 7.0
		},
		build: func(in reasonInput) string {
			return fmt.Sprintf("Radar de novedades: '%s' combina frescura (%d) con una acogida sólida (%.1f).", in.Item.Title, in.Item.Year, in.AvgScore)
		},
	},
	{ // classic that has held its rating over the years
		match: func(in reasonInput) bool {
			return in.Item.Year > 0 && in.Item.Year < in.CurrentYear-10 && in.AvgScore > 7.5
		},
		build: func(in reasonInput) string {
			return fmt.Sprintf("Valor histórico: '%s' ha resistido la prueba del tiempo con una puntuación sostenida de %.1f.", in.Item.Title, in.AvgScore)
		},
	},
}

// ReasonFor picks the reason text for a scored candidate: the first rule in
// the chain whose predicate matches, a generic fallback otherwise.
func ReasonFor(sc Scored, now time.Time, recentWindowYears int) string {
	bySource := make(map[string]*model.SourceScore, len(sc.Item.Scores))
	for i := range sc.Item.Scores {
		bySource[sc.Item.Scores[i].Source] = &sc.Item.Scores[i]
	}
	in := reasonInput{
		Item:        sc.Item.MediaItem,
		AvgScore:    sc.AvgScore,
		Matching:    sc.Matching,
		BySource:    bySource,
		CurrentYear: now.Year(),
		RecentFrom:  now.Year() - recentWindowYears,
	}
	for _, rule := range reasonRules {
		if rule.match(in) {
			return rule.build(in)
		}
	}
	return pickTemplate(in.Item.ID,
		fmt.Sprintf("Validación estadística: '%s' presenta métricas sólidas en todos los frentes.", in.Item.Title),
		"Perfil equilibrado: sin estridencias pero sin fallos, una elección segura para tu historial.",
		"Recomendación algorítmica: cruzando género y recepción, este título emerge como opción fiable.",
	)
}

// pickTemplate chooses among wording variants deterministically, keyed by the
// item id, so a recompute over unchanged data produces the same text.
func pickTemplate(id string, variants ...string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return variants[int(h.Sum32())%len(variants)]
}
