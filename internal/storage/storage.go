package storage

import "context"

// FilmCount is one row of the per-user stats: how many times a film was shown.
type FilmCount struct {
	FilmName string `json:"film_name"`
	Count    int    `json:"count"`
}

// Totals aggregates the whole store for the admin report.
type Totals struct {
	Queries  int         `json:"queries"`
	Users    int         `json:"users"`
	Lookups  int         `json:"lookups"`
	TopFilms []FilmCount `json:"top_films"`
}

// Store persists query history and shown films per user.
// Rows are append-only; History returns queries in insertion order.
// Implementations must be safe for concurrent use.
type Store interface {
	AppendHistory(ctx context.Context, userID int64, query string) error
	AppendStat(ctx context.Context, userID int64, filmName string) error
	History(ctx context.Context, userID int64) ([]string, error)
	Stats(ctx context.Context, userID int64) ([]FilmCount, error)
}
