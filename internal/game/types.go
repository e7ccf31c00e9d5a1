// internal/game/types.go
//
// Core type definitions for the local Wordle engine.
// Defines:
//   - State: coarse game state (playing/won/lost).
//   - Game: state for a single in-progress or finished game.
//
// Feedback is expressed with the feedback package's typed tiles so the same
// rows can be handed straight to the solver.

package game

import (
	"errors"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

// State is the coarse state of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

var (
	ErrFinished      = errors.New("game finished")
	ErrInvalidAnswer = errors.New("invalid answer")
	ErrInvalidGuess  = errors.New("invalid guess")
	ErrNotInList     = errors.New("not in word list")
	ErrHardMode      = errors.New("hard mode: revealed hints must be used")
)

// Game holds the state of a single Wordle game session.
type Game struct {
	ID       string         // Unique game identifier (random hex string).
	Answer   string         // The solution word (always uppercase).
	Rows     int            // Maximum number of guesses allowed (typically 6).
	Cols     int            // Number of letters per word (typically 5).
	HardMode bool           // Reject guesses that ignore revealed hints.
	Guesses  []string       // Guesses made so far (uppercased).
	Board    feedback.Board // One scored row per guess.
	Finished bool           // True once the game is over (won or lost).
	Won      bool           // True if the game was finished with a win.

	allowed *words.List // Valid guesses; nil accepts any 5-letter word.
}
