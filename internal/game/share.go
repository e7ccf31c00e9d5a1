package game

import (
	"fmt"
	"strings"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
)

// Tile glyphs used by the share grid.
const (
	glyphCorrect = "🟩"
	glyphPresent = "🟨"
	glyphAbsent  = "⬛"
)

// ShareGrid renders every played row of board as an emoji grid, one line per row.
func ShareGrid(board feedback.Board) string {
	lines := make([]string, 0, len(board))
	for _, row := range board.Played() {
		var b strings.Builder
		for _, t := range row {
			switch t.Kind {
			case feedback.KindCorrect:
				b.WriteString(glyphCorrect)
			case feedback.KindPresent:
				b.WriteString(glyphPresent)
			default:
				b.WriteString(glyphAbsent)
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// ShareText is the end-of-game summary: a title line with the score
// ("3/6", "X/6" on a loss, "*" in hard mode) followed by the grid.
func (g *Game) ShareText(title string) string {
	score := "X"
	if g.Won {
		score = fmt.Sprint(len(g.Guesses))
	}
	star := ""
	if g.HardMode {
		star = "*"
	}
	return fmt.Sprintf("%s %s/%d%s\n\n%s", title, score, g.Rows, star, ShareGrid(g.Board))
}
