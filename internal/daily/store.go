package daily

import (
	"context"
	"database/sql"
)

// Result is one solver configuration's attempt at a day's puzzle.
// Solver names the configuration, e.g. "strict/entropy".
type Result struct {
	Solver    string `json:"solver"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Guesses   int    `json:"guesses"`
	Won       bool   `json:"won"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Store keeps daily results in the daily_results table (see store.Migrate).
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether solver has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, solver, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE solver=? AND date=?",
		solver, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r. A second result for the same solver and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(solver, date, word_index, guesses, won, elapsed_ms)
         VALUES(?,?,?,?,?,?)`, r.Solver, r.Date, r.WordIndex, r.Guesses, r.Won, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard line.
type LBRow struct {
	Solver    string `json:"solver"`
	Guesses   int    `json:"guesses"`
	Won       bool   `json:"won"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard ranks the day's results: wins first, then fewest guesses,
// then fastest, then earliest. limit defaults to 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT solver, guesses, won, elapsed_ms
         FROM daily_results
         WHERE date=?
         ORDER BY won DESC, guesses ASC, elapsed_ms ASC, created_at ASC
         LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Solver, &r.Guesses, &r.Won, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
