package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

func TestScore(t *testing.T) {
	tests := []struct {
		answer, guess, want string
	}{
		{"CRANE", "CRANE", "GGGGG"},
		{"CRANE", "ARISE", "YGBBG"},
		{"ABIDE", "SPEED", "BBYBY"},
		{"ABBEY", "BABES", "YYGGB"},
		{"ROBOT", "FLOOR", "BBYGY"},
		{"SPEED", "EERIE", "YYBBB"},
	}
	for _, tt := range tests {
		t.Run(tt.answer+"/"+tt.guess, func(t *testing.T) {
			row := Score(tt.answer, tt.guess)
			assert.Equal(t, tt.want, row.Pattern())
			assert.Equal(t, tt.guess, row.Word())
			require.NoError(t, feedback.ValidateRow(0, row))
		})
	}
}

func mustNew(t *testing.T, answer string, allowed *words.List, opts ...Option) *Game {
	t.Helper()
	g, err := New(answer, allowed, opts...)
	require.NoError(t, err)
	return g
}

func TestNew_Answer(t *testing.T) {
	g := mustNew(t, " crane\n", nil)
	assert.Equal(t, "CRANE", g.Answer)

	for _, bad := range []string{"CAT", "12345", "CRANES", "CR NE", "ÉCRAN"} {
		_, err := New(bad, nil)
		assert.True(t, errors.Is(err, ErrInvalidAnswer), bad)
	}
}

func TestApplyGuess_WinAndLose(t *testing.T) {
	g := mustNew(t, "crane", nil)
	row, state, err := g.ApplyGuess("arise")
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)
	assert.Equal(t, "YGBBG", row.Pattern())

	_, state, err = g.ApplyGuess("Crane")
	require.NoError(t, err)
	assert.Equal(t, StateWon, state)
	assert.True(t, g.Finished)

	_, _, err = g.ApplyGuess("slate")
	assert.True(t, errors.Is(err, ErrFinished))

	lost := mustNew(t, "CRANE", nil, WithRows(2))
	_, _, err = lost.ApplyGuess("SLATE")
	require.NoError(t, err)
	_, state, err = lost.ApplyGuess("PLATE")
	require.NoError(t, err)
	assert.Equal(t, StateLost, state)
}

func TestApplyGuess_Validation(t *testing.T) {
	allowed, err := words.FromWords("t", []string{"crane", "slate"})
	require.NoError(t, err)

	g := mustNew(t, "CRANE", allowed)
	_, _, err = g.ApplyGuess("cran")
	assert.True(t, errors.Is(err, ErrInvalidGuess))
	_, _, err = g.ApplyGuess("cr4ne")
	assert.True(t, errors.Is(err, ErrInvalidGuess))
	_, _, err = g.ApplyGuess("zzzzz")
	assert.True(t, errors.Is(err, ErrNotInList))
	assert.Empty(t, g.Guesses)
}

func TestApplyGuess_HardMode(t *testing.T) {
	g := mustNew(t, "CRANE", nil, WithHardMode(true))
	_, _, err := g.ApplyGuess("TRACE") // R,A green; C,E yellow/green
	require.NoError(t, err)

	_, _, err = g.ApplyGuess("BLOND")
	assert.True(t, errors.Is(err, ErrHardMode))

	_, _, err = g.ApplyGuess("GRADE") // drops C
	assert.True(t, errors.Is(err, ErrHardMode))

	_, state, err := g.ApplyGuess("CRANE")
	require.NoError(t, err)
	assert.Equal(t, StateWon, state)
}

func TestRandomAnswer(t *testing.T) {
	assert.Equal(t, "CRANE", RandomAnswer(nil))

	l, err := words.FromWords("t", []string{"slate"})
	require.NoError(t, err)
	assert.Equal(t, "SLATE", RandomAnswer(l))
	assert.Equal(t, "SLATE", mustNew(t, "", l).Answer)
}

func TestPlayer(t *testing.T) {
	ctx := context.Background()
	p := NewPlayer(mustNew(t, "CRANE", nil, WithHardMode(true)), "Wordle 7")

	board, err := p.ReadFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, board, 6)
	assert.Empty(t, board.Played())

	require.NoError(t, p.EnterGuess(ctx, "ARISE"))
	require.NoError(t, p.EnterGuess(ctx, "CRANE"))
	board, err = p.ReadFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, board, 6)
	assert.Len(t, board.Played(), 2)

	summary, err := p.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary, "Wordle 7 2/6*\n\n"))
	assert.Contains(t, summary, "🟩🟩🟩🟩🟩")
	require.NoError(t, p.Close())
}

func TestPatternMatchesScore(t *testing.T) {
	pairs := [][2]string{
		{"CRANE", "ARISE"}, {"ABIDE", "SPEED"}, {"ABBEY", "BABES"},
		{"ROBOT", "FLOOR"}, {"SPEED", "EERIE"}, {"CRANE", "CRANE"},
	}
	for _, pr := range pairs {
		row := Score(pr[0], pr[1])
		var want uint8
		for _, tile := range row {
			var m uint8
			switch tile.Kind {
			case feedback.KindCorrect:
				m = 2
			case feedback.KindPresent:
				m = 1
			}
			want = want*3 + m
		}
		assert.Equal(t, want, Pattern(pr[0], pr[1]), "%s/%s", pr[0], pr[1])
	}
	assert.Equal(t, uint8(PatternCount-1), Pattern("CRANE", "CRANE"))
}
