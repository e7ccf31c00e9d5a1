package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidsrrose/wordle-bot/internal/game"
	"github.com/davidsrrose/wordle-bot/internal/solver"
	"github.com/davidsrrose/wordle-bot/internal/store"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

// Solver is a picker configuration that can play local games.
type Solver struct {
	List     *words.List        // dictionary and allowed guesses
	Dict     *solver.Dictionary // index over List.Words
	Mode     solver.Mode
	Strategy string
	Seed     uint64
	Opening  string
	HardMode bool
	Logger   zerolog.Logger
}

// NewSolver indexes list once for many games.
func NewSolver(list *words.List, mode solver.Mode, strategy string, seed uint64) *Solver {
	return &Solver{
		List:     list,
		Dict:     solver.NewDictionary(list.Words),
		Mode:     mode,
		Strategy: strategy,
		Seed:     seed,
		Logger:   zerolog.Nop(),
	}
}

// Name identifies the configuration, e.g. "strict/entropy".
func (s *Solver) Name() string {
	strategy := s.Strategy
	if strategy == "" {
		strategy = "random"
	}
	return s.Mode.String() + "/" + strategy
}

// Picker builds a fresh picker for one game.
func (s *Solver) Picker() (*solver.Picker, error) {
	strategy, err := solver.ParseStrategy(s.Strategy, s.Seed)
	if err != nil {
		return nil, err
	}
	return solver.NewPicker(s.Dict,
		solver.WithMode(s.Mode),
		solver.WithStrategy(strategy),
		solver.WithOpeningWord(s.Opening),
		solver.WithLogger(s.Logger),
	), nil
}

// Play solves answer on the local engine. An empty answer picks one at random.
// The returned Game exposes the answer and final state. A malformed answer
// fails with game.ErrInvalidAnswer before any Result exists.
func (s *Solver) Play(ctx context.Context, answer string) (*Result, *game.Game, error) {
	picker, err := s.Picker()
	if err != nil {
		return nil, nil, err
	}
	g, err := game.New(answer, s.List, game.WithHardMode(s.HardMode))
	if err != nil {
		return nil, nil, err
	}
	res, err := Run(ctx, game.NewPlayer(g, ""), picker, WithLogger(s.Logger))
	return res, g, err
}

// Record turns a run into a store record. runErr is the error Run returned.
func (s *Solver) Record(source, answer string, res *Result, runErr error) *store.Run {
	r := &store.Run{
		ID:        res.ID,
		Source:    source,
		Answer:    answer,
		Mode:      s.Mode.String(),
		Strategy:  s.Strategy,
		Guesses:   res.Guesses,
		Outcome:   string(res.Outcome),
		Summary:   res.Summary,
		ElapsedMs: res.Finished.Sub(res.Started).Milliseconds(),
		CreatedAt: res.Started.Truncate(time.Millisecond),
	}
	if r.Strategy == "" {
		r.Strategy = "random"
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}
