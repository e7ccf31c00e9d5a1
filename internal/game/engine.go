// internal/game/engine.go
//
// Local game engine for a single Wordle session.
// Responsibilities:
//   - Create new games with deterministic dimensions (6x5).
//   - Validate and apply guesses (length, alphabetic, allowed list, hard mode).
//   - Score guesses using the classic two-pass Wordle algorithm.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The allowed list is a *words.List; nil accepts any A–Z word.
//   - Scored rows are feedback.Row values, ready for the solver.
//   - randomID() is a compact hex identifier for correlating state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

const (
	defaultRows = 6
	defaultCols = feedback.WordLen
)

// Option tweaks a new game.
type Option func(*Game)

// WithHardMode makes the game reject guesses that ignore revealed hints.
func WithHardMode(on bool) Option { return func(g *Game) { g.HardMode = on } }

// WithRows sets the maximum number of guesses.
func WithRows(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.Rows = n
		}
	}
}

// New constructs a new game instance.
// If answer is empty, a random answer is chosen from allowed; otherwise it
// must normalize to five letters A–Z (ErrInvalidAnswer).
func New(answer string, allowed *words.List, opts ...Option) (*Game, error) {
	ans := answer
	if strings.TrimSpace(ans) == "" {
		ans = RandomAnswer(allowed)
	}
	w, ok := words.Normalize(ans)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAnswer, answer)
	}
	g := &Game{
		ID:      randomID(),
		Answer:  w,
		Rows:    defaultRows,
		Cols:    defaultCols,
		Guesses: []string{},
		allowed: allowed,
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the scored row and the new state, or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters A–Z.
//   - Guess must be present in the allowed list (when one is set).
//   - In hard mode, every earlier green must stay put and every yellow be reused.
//
// State transitions:
//   - All tiles correct → Finished, Won.
//   - Else if the number of guesses reaches g.Rows → Finished (loss).
func (g *Game) ApplyGuess(guess string) (feedback.Row, State, error) {
	if g.Finished {
		return nil, g.State(), ErrFinished
	}
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return nil, g.State(), fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}
	if g.allowed != nil && !g.allowed.Contains(guess) {
		return nil, g.State(), fmt.Errorf("%w: %q", ErrNotInList, guess)
	}
	if g.HardMode {
		if err := checkHardMode(g.Board, guess); err != nil {
			return nil, g.State(), err
		}
	}

	row := Score(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)
	g.Board = append(g.Board, row)

	if row.AllCorrect() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return row, g.State(), nil
}

// State reports the coarse state of the game.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Score implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) answer letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that
//     letter, mark Present and decrement; otherwise mark Absent.
//
// This greys a repeated guess letter once the answer's copies are used up.
// Both words must be uppercase A–Z of equal length.
func Score(answer, guess string) feedback.Row {
	n := len(guess)
	res := make(feedback.Row, n)
	done := make([]bool, n)

	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = feedback.Correct(feedback.Letter(guess[i]), feedback.Position(i))
			done[i] = true
		} else {
			counts[idx(answer[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if done[i] {
			continue
		}
		l, p := feedback.Letter(guess[i]), feedback.Position(i)
		if j := idx(guess[i]); counts[j] > 0 {
			res[i] = feedback.Present(l, p)
			counts[j]--
		} else {
			res[i] = feedback.Absent(l, p)
		}
	}
	return res
}

// checkHardMode enforces the hard mode rule against every scored row.
func checkHardMode(board feedback.Board, guess string) error {
	for _, row := range board {
		var need [26]int
		for _, t := range row {
			switch t.Kind {
			case feedback.KindCorrect:
				if guess[t.Position] != byte(t.Letter) {
					return fmt.Errorf("%w: position %d must be %s", ErrHardMode, t.Position+1, t.Letter)
				}
				need[idx(byte(t.Letter))]++
			case feedback.KindPresent:
				need[idx(byte(t.Letter))]++
			}
		}
		for j, n := range need {
			if n > 0 && strings.Count(guess, string(rune('A'+j))) < n {
				return fmt.Errorf("%w: guess must contain %c", ErrHardMode, 'A'+j)
			}
		}
	}
	return nil
}

// idx maps an uppercase ASCII letter to 0..25.
// Assumes inputs are validated to A–Z elsewhere.
func idx(b byte) int { return int(b - 'A') }

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a cryptographically random word from l.
// If l is nil or empty, falls back to "CRANE".
func RandomAnswer(l *words.List) string {
	if l.Len() == 0 {
		return "CRANE"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(l.Len())))
	return l.Words[nBig.Int64()]
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
