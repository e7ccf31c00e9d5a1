package browser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
)

// ParseTileLabel decodes one tile's aria-label as rendered by the game page:
//
//	"1st letter, A, correct"
//	"2nd letter, R, present in another position"
//	"3rd letter, I, absent"
//	"4th letter, empty" (or just "empty")
//
// col is the tile's 0-based column; the label's 1-based ordinal must match it.
func ParseTileLabel(label string, col int) (feedback.TileSignal, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.Contains(strings.ToLower(label), "empty") {
		return feedback.Empty(), nil
	}

	parts := strings.Split(label, ",")
	if len(parts) != 3 {
		return feedback.TileSignal{}, fmt.Errorf("%w: tile label %q", feedback.ErrMalformedFeedback, label)
	}

	pos, err := parseOrdinal(parts[0])
	if err != nil {
		return feedback.TileSignal{}, fmt.Errorf("%w: tile label %q: %v", feedback.ErrMalformedFeedback, label, err)
	}
	if pos != col {
		return feedback.TileSignal{}, fmt.Errorf("%w: tile label %q in column %d", feedback.ErrMalformedFeedback, label, col+1)
	}

	letter := strings.ToUpper(strings.TrimSpace(parts[1]))
	if len(letter) != 1 || !feedback.Letter(letter[0]).Valid() {
		return feedback.TileSignal{}, fmt.Errorf("%w: tile label %q: bad letter", feedback.ErrMalformedFeedback, label)
	}

	kind, err := feedback.ParseKind(parts[2])
	if err != nil {
		return feedback.TileSignal{}, err
	}
	l, p := feedback.Letter(letter[0]), feedback.Position(pos)
	switch kind {
	case feedback.KindCorrect:
		return feedback.Correct(l, p), nil
	case feedback.KindPresent:
		return feedback.Present(l, p), nil
	case feedback.KindAbsent:
		return feedback.Absent(l, p), nil
	}
	return feedback.Empty(), nil
}

// parseOrdinal turns "1st letter" into 0.
func parseOrdinal(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "letter"))
	s = strings.TrimRight(s, "stndrh ")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad ordinal: %w", err)
	}
	if n < 1 || n > feedback.WordLen {
		return 0, fmt.Errorf("ordinal %d out of range", n)
	}
	return n - 1, nil
}

// BoardFromLabels chunks the page's tile labels into rows of five and
// decodes every tile. A trailing partial row is malformed.
func BoardFromLabels(labels []string) (feedback.Board, error) {
	if len(labels)%feedback.WordLen != 0 {
		return nil, fmt.Errorf("%w: %d tiles is not a whole number of rows", feedback.ErrMalformedFeedback, len(labels))
	}
	board := make(feedback.Board, 0, len(labels)/feedback.WordLen)
	for i := 0; i < len(labels); i += feedback.WordLen {
		row := make(feedback.Row, feedback.WordLen)
		for col := range row {
			t, err := ParseTileLabel(labels[i+col], col)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i/feedback.WordLen+1, err)
			}
			row[col] = t
		}
		board = append(board, row)
	}
	return board, nil
}
