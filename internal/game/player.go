package game

import (
	"context"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
)

// Player drives a local Game the way a browser adapter drives the real page:
// guesses go in through EnterGuess, and ReadFeedback returns the whole board
// with unplayed rows left as empty tiles.
type Player struct {
	Game  *Game
	Title string // share title, e.g. "Wordle 1,024"
}

// NewPlayer wraps g.
func NewPlayer(g *Game, title string) *Player {
	if title == "" {
		title = "Wordle"
	}
	return &Player{Game: g, Title: title}
}

// EnterGuess applies guess to the game.
func (p *Player) EnterGuess(ctx context.Context, guess string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, _, err := p.Game.ApplyGuess(guess)
	return err
}

// ReadFeedback returns Rows rows: scored rows first, then empty rows.
func (p *Player) ReadFeedback(ctx context.Context) (feedback.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	board := make(feedback.Board, 0, p.Game.Rows)
	for _, row := range p.Game.Board {
		board = append(board, append(feedback.Row(nil), row...))
	}
	for len(board) < p.Game.Rows {
		row := make(feedback.Row, p.Game.Cols)
		for i := range row {
			row[i] = feedback.Empty()
		}
		board = append(board, row)
	}
	return board, nil
}

// Summary returns the share text for the finished game.
func (p *Player) Summary(ctx context.Context) (string, error) {
	return p.Game.ShareText(p.Title), nil
}

// Close is a no-op; the local game holds no resources.
func (p *Player) Close() error { return nil }
