package repos

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMediaNotFound = errors.New("media item not found")

type Repository struct {
	db *pgxpool.Pool

	Media     *MediaRepo
	Scores    *ScoresRepo
	Rankings  *RankingsRepo
	Favorites *FavoritesRepo
	Recs      *RecsRepo
}

func New(db *pgxpool.Pool) *Repository {
	r := &Repository{db: db}
	r.Media = &MediaRepo{db: db}
	r.Scores = &ScoresRepo{db: db}
	r.Rankings = &RankingsRepo{db: db}
	r.Favorites = &FavoritesRepo{db: db}
	r.Recs = &RecsRepo{db: db}
	return r
}
