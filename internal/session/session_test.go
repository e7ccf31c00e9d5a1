package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
	"github.com/davidsrrose/wordle-bot/internal/game"
	"github.com/davidsrrose/wordle-bot/internal/solver"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

func emptyRow() feedback.Row {
	return feedback.Row{feedback.Empty(), feedback.Empty(), feedback.Empty(), feedback.Empty(), feedback.Empty()}
}

func TestBoardChecks(t *testing.T) {
	win := game.Score("CRANE", "CRANE")
	miss := game.Score("CRANE", "BLIMP")

	tests := []struct {
		name      string
		board     feedback.Board
		won, lost bool
	}{
		{"no guesses", nil, false, false},
		{"all empty", feedback.Board{emptyRow(), emptyRow()}, false, false},
		{"in progress", feedback.Board{miss, emptyRow()}, false, false},
		{"won early", feedback.Board{miss, win, emptyRow()}, true, false},
		{"won last row", feedback.Board{miss, win}, true, false},
		{"lost", feedback.Board{miss, miss}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.won, IsWon(tt.board))
			assert.Equal(t, tt.lost, IsLost(tt.board))
			assert.Equal(t, tt.won || tt.lost, IsOver(tt.board))
		})
	}
}

func newGame(t *testing.T, answer string, list *words.List, opts ...game.Option) *game.Game {
	t.Helper()
	g, err := game.New(answer, list, opts...)
	require.NoError(t, err)
	return g
}

func TestRun_WinsLocalGame(t *testing.T) {
	picker := solver.NewPicker(solver.NewDictionary([]string{"ARSON", "BLIMP", "CRANE"}))
	player := game.NewPlayer(newGame(t, "CRANE", nil), "Wordle")

	res, err := Run(context.Background(), player, picker)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.True(t, res.Won())
	assert.Equal(t, []string{"ARSON", "CRANE"}, res.Guesses)
	assert.True(t, strings.HasPrefix(res.Summary, "Wordle 2/6\n\n"))
	assert.NotEmpty(t, res.ID)
	assert.False(t, res.Finished.Before(res.Started))
}

func TestRun_DefaultDictionary(t *testing.T) {
	dict, err := words.Default()
	require.NoError(t, err)
	d := solver.NewDictionary(dict.Words)

	for _, answer := range []string{"CRANE", "ROBOT", "ABIDE", "SPEED", "GEESE"} {
		if !dict.Contains(answer) {
			continue
		}
		picker := solver.NewPicker(d, solver.WithStrategy(solver.EntropyStrategy{MaxGuesses: 300}))
		player := game.NewPlayer(newGame(t, answer, dict, game.WithHardMode(true)), "")

		res, err := Run(context.Background(), player, picker)
		require.NoError(t, err, answer)
		assert.NotEqual(t, OutcomeAborted, res.Outcome, answer)
		if res.Won() {
			assert.Equal(t, answer, res.Guesses[len(res.Guesses)-1])
		}
	}
}

func TestRun_Exhausted(t *testing.T) {
	picker := solver.NewPicker(solver.NewDictionary([]string{"ARSON", "BLIMP"}))
	player := game.NewPlayer(newGame(t, "CRANE", nil), "")

	res, err := Run(context.Background(), player, picker)
	require.Error(t, err)
	assert.True(t, errors.Is(err, solver.ErrExhaustedPool))
	assert.Equal(t, OutcomeAborted, res.Outcome)
	assert.Equal(t, []string{"ARSON"}, res.Guesses)
	assert.Len(t, res.Board.Played(), 1)
}

type stuckPlayer struct{ guesses int }

func (s *stuckPlayer) EnterGuess(context.Context, string) error { s.guesses++; return nil }

func (s *stuckPlayer) ReadFeedback(context.Context) (feedback.Board, error) {
	return feedback.Board{emptyRow(), emptyRow()}, nil
}

func TestRun_NoProgress(t *testing.T) {
	p := &stuckPlayer{}
	_, err := Run(context.Background(), p, solver.NewPicker(solver.NewDictionary([]string{"CRANE"})))
	assert.True(t, errors.Is(err, ErrNoProgress))
	assert.Equal(t, 1, p.guesses)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, &stuckPlayer{}, solver.NewPicker(solver.NewDictionary([]string{"CRANE"})))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, res.Guesses)
}

func TestSolver_PlayAndRecord(t *testing.T) {
	list, err := words.FromWords("test", []string{"ARSON", "BLIMP", "CRANE"})
	require.NoError(t, err)
	s := NewSolver(list, solver.ModeStrict, "first", 0)
	s.HardMode = true
	assert.Equal(t, "strict/first", s.Name())

	res, g, err := s.Play(context.Background(), "crane")
	require.NoError(t, err)
	assert.True(t, g.Won)
	assert.Equal(t, "CRANE", g.Answer)

	rec := s.Record("sim", g.Answer, res, nil)
	assert.Equal(t, res.ID, rec.ID)
	assert.Equal(t, "won", rec.Outcome)
	assert.Equal(t, []string{"ARSON", "CRANE"}, rec.Guesses)
	assert.Equal(t, "strict", rec.Mode)
	assert.Empty(t, rec.Error)
	assert.True(t, strings.HasPrefix(rec.Summary, "Wordle 2/6*"))

	_, err = (&Solver{List: list, Dict: s.Dict, Strategy: "oracle"}).Picker()
	assert.Error(t, err)
}

func TestSolver_PlayRejectsBadAnswer(t *testing.T) {
	list, err := words.FromWords("test", []string{"ARSON", "CRANE"})
	require.NoError(t, err)
	s := NewSolver(list, solver.ModeStrict, "first", 0)

	for _, answer := range []string{"CAT", "12345", "CRANES"} {
		res, g, err := s.Play(context.Background(), answer)
		assert.True(t, errors.Is(err, game.ErrInvalidAnswer), answer)
		assert.Nil(t, res)
		assert.Nil(t, g)
	}
}
