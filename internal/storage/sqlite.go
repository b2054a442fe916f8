package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (user_id INTEGER, query VARCHAR(4096));
CREATE TABLE IF NOT EXISTS stats (user_id INTEGER, film_name VARCHAR(4096));
`

const topFilmsLimit = 5

// SQLiteStore keeps history and stats in a single SQLite file. Every call opens
// and closes its own connection; concurrent writers are serialized by SQLite.
type SQLiteStore struct {
	path string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Exists reports whether the database file is already on disk.
func (s *SQLiteStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// EnsureSchema creates the database file and any missing table. It is safe to
// call on every start.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure db dir: %w", err)
	}
	return s.withDB(func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) AppendHistory(ctx context.Context, userID int64, query string) error {
	return s.withDB(func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, "INSERT INTO history (user_id, query) VALUES (?, ?)", userID, query); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) AppendStat(ctx context.Context, userID int64, filmName string) error {
	return s.withDB(func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, "INSERT INTO stats (user_id, film_name) VALUES (?, ?)", userID, filmName); err != nil {
			return fmt.Errorf("insert stat: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) History(ctx context.Context, userID int64) ([]string, error) {
	var out []string
	err := s.withDB(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, "SELECT query FROM history WHERE user_id = ? ORDER BY rowid", userID)
		if err != nil {
			return fmt.Errorf("select history: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var q string
			if err := rows.Scan(&q); err != nil {
				return fmt.Errorf("scan history: %w", err)
			}
			out = append(out, q)
		}
		return rows.Err()
	})
	return out, err
}

func (s *SQLiteStore) Stats(ctx context.Context, userID int64) ([]FilmCount, error) {
	var out []FilmCount
	err := s.withDB(func(db *sql.DB) error {
		var err error
		out, err = queryFilmCounts(ctx, db,
			"SELECT film_name, count(*) FROM stats WHERE user_id = ? GROUP BY film_name ORDER BY film_name", userID)
		return err
	})
	return out, err
}

// Totals counts rows across all users.
func (s *SQLiteStore) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.withDB(func(db *sql.DB) error {
		if err := db.QueryRowContext(ctx, "SELECT count(*), count(DISTINCT user_id) FROM history").Scan(&t.Queries, &t.Users); err != nil {
			return fmt.Errorf("count history: %w", err)
		}
		if err := db.QueryRowContext(ctx, "SELECT count(*) FROM stats").Scan(&t.Lookups); err != nil {
			return fmt.Errorf("count stats: %w", err)
		}
		var err error
		t.TopFilms, err = queryFilmCounts(ctx, db,
			"SELECT film_name, count(*) AS c FROM stats GROUP BY film_name ORDER BY c DESC, film_name LIMIT ?", topFilmsLimit)
		return err
	})
	return t, err
}

func queryFilmCounts(ctx context.Context, db *sql.DB, query string, args ...any) ([]FilmCount, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select stats: %w", err)
	}
	defer rows.Close()
	var out []FilmCount
	for rows.Next() {
		var fc FilmCount
		if err := rows.Scan(&fc.FilmName, &fc.Count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, fc)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) withDB(fn func(db *sql.DB) error) (err error) {
	db, err := sql.Open("sqlite3", "file:"+s.path+"?_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()
	return fn(db)
}
