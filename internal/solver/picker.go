// internal/solver/picker.go
//
// Word picker: holds the live candidate pool and chooses the next guess.
//
// State machine:
//   Fresh     → no feedback seen yet; the opening word is returned.
//   Narrowing → at least one turn filtered, pool non-empty.
//   Exhausted → filtering left nothing; every later call fails with ErrExhaustedPool.
//
// Each turn the full board is re-interpreted and the stored pool is replaced
// by its filtered subsequence. There is no backtracking; Reset starts a new game.
// A Picker is not safe for concurrent use.

package solver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
)

// DefaultOpeningWord is the first guess when no feedback exists.
const DefaultOpeningWord = "ARSON"

// ErrExhaustedPool means no candidate survives the feedback: either the
// feedback contradicts itself or the dictionary lacks the answer.
var ErrExhaustedPool = errors.New("candidate pool exhausted")

// State is the picker's lifecycle state.
type State int

const (
	StateFresh State = iota
	StateNarrowing
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateNarrowing:
		return "narrowing"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Picker chooses guesses from a shrinking candidate pool.
type Picker struct {
	dict     *Dictionary
	pool     *Pool
	opening  string
	mode     Mode
	strategy Strategy
	log      zerolog.Logger
	state    State
}

// Option configures a Picker.
type Option func(*Picker)

// WithOpeningWord overrides DefaultOpeningWord.
func WithOpeningWord(w string) Option {
	return func(p *Picker) {
		if w = strings.ToUpper(strings.TrimSpace(w)); w != "" {
			p.opening = w
		}
	}
}

// WithMode selects the filtering rules (default ModeStrict).
func WithMode(m Mode) Option { return func(p *Picker) { p.mode = m } }

// WithStrategy selects how a guess is drawn from the pool (default: seeded random).
func WithStrategy(s Strategy) Option {
	return func(p *Picker) {
		if s != nil {
			p.strategy = s
		}
	}
}

// WithLogger injects the logger (default: disabled).
func WithLogger(l zerolog.Logger) Option { return func(p *Picker) { p.log = l } }

// NewPicker builds a picker over a shared dictionary.
func NewPicker(d *Dictionary, opts ...Option) *Picker {
	p := &Picker{
		dict:     d,
		pool:     NewPool(d),
		opening:  DefaultOpeningWord,
		mode:     ModeStrict,
		strategy: NewSeededRandomStrategy(0),
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(p)
	}
	p.log.Info().
		Int("words", d.Len()).
		Str("mode", p.mode.String()).
		Str("strategy", p.strategy.Name()).
		Str("opening", p.opening).
		Msg("word picker initialized")
	return p
}

// ChooseWord returns the next guess for the given feedback history.
//
// An empty board (or one whose rows are all unplayed while the picker is
// still fresh) yields the opening word. Otherwise the board is interpreted,
// the pool filtered and stored, and a candidate drawn. Malformed feedback
// aborts the turn without touching the pool. Once exhausted, every call
// fails with ErrExhaustedPool until Reset.
func (p *Picker) ChooseWord(board feedback.Board) (string, error) {
	if p.state == StateExhausted {
		return "", fmt.Errorf("%w (mode %s); Reset to start a new game", ErrExhaustedPool, p.mode)
	}
	if len(board) == 0 {
		return p.opening, nil
	}

	cs, err := feedback.Interpret(board)
	if err != nil {
		return "", err
	}
	played := len(board.Played())
	if played == 0 && p.state == StateFresh {
		return p.opening, nil
	}

	p.log.Debug().
		Int("rows", played).
		Str("must_include", cs.MustInclude.String()).
		Str("absent", cs.Absent.String()).
		Msg("parsed feedback")

	before := p.pool.Len()
	p.pool = FilterPool(p.pool, cs, p.mode)
	remaining := p.pool.Len()
	p.log.Info().Int("before", before).Int("remaining", remaining).Msg("filtered candidate pool")

	if remaining == 0 {
		p.state = StateExhausted
		p.log.Warn().Int("rows", played).Msg("no valid words left")
		return "", fmt.Errorf("%w after %d guesses (mode %s)", ErrExhaustedPool, played, p.mode)
	}

	p.state = StateNarrowing
	guess := p.strategy.Pick(p.pool.Words())
	p.log.Info().Str("guess", guess).Msg("chose word")
	return guess, nil
}

// State returns the current lifecycle state.
func (p *Picker) State() State { return p.state }

// Remaining returns the live candidates in dictionary order.
func (p *Picker) Remaining() []string { return p.pool.Words() }

// Mode returns the filtering mode.
func (p *Picker) Mode() Mode { return p.mode }

// Opening returns the configured opening word.
func (p *Picker) Opening() string { return p.opening }

// Reset restores the full dictionary for a new game.
func (p *Picker) Reset() {
	p.pool = NewPool(p.dict)
	p.state = StateFresh
}
