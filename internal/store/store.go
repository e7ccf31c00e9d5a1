// internal/store/store.go
//
// Persistence interface for finished solver runs.
// A run is one game played by the bot: against the local engine (sim, bench,
// daily, HTTP simulate) or against the real page (play).

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for unknown run IDs.
var ErrNotFound = errors.New("not found")

// Run is the record of one game.
type Run struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`           // sim, bench, daily, play, api
	Answer    string    `json:"answer,omitempty"` // unknown for browser games that were lost
	Date      string    `json:"date,omitempty"`   // YYYY-MM-DD for daily games
	Mode      string    `json:"mode"`
	Strategy  string    `json:"strategy"`
	Guesses   []string  `json:"guesses"`
	Outcome   string    `json:"outcome"` // won, lost, aborted
	Summary   string    `json:"summary,omitempty"`
	Error     string    `json:"error,omitempty"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Won reports whether the run ended in a win.
func (r *Run) Won() bool { return r.Outcome == "won" }

// Stats aggregates every stored run.
type Stats struct {
	Runs       int     `json:"runs"`
	Won        int     `json:"won"`
	AvgGuesses float64 `json:"avgGuesses"` // over won runs only
}

// Store defines the persistence interface for runs.
type Store interface {
	// Save persists or replaces a run.
	Save(ctx context.Context, r *Run) error

	// Get retrieves a run by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns the most recent runs first, at most limit (default 20).
	List(ctx context.Context, limit int) ([]*Run, error)

	// Stats summarizes all runs.
	Stats(ctx context.Context) (Stats, error)
}

const defaultLimit = 20
