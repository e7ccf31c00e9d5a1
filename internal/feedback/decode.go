package feedback

import (
	"fmt"
	"strings"
)

// ParsePattern builds a row from a guess and a compact pattern string.
//
//	G or 2 = correct, Y or 1 = present, B, X or 0 = absent, - = empty
//
// Both strings are case-insensitive. ParsePattern("arise", "ggbyg") yields
// A@0 correct, R@1 correct, I absent, S present, E@4 correct.
func ParsePattern(guess, pattern string) (Row, error) {
	guess = strings.ToUpper(strings.TrimSpace(guess))
	pattern = strings.ToUpper(strings.TrimSpace(pattern))
	if len(guess) != WordLen {
		return nil, malformedRow(0, "guess %q has %d letters, want %d", guess, len(guess), WordLen)
	}
	if len(pattern) != WordLen {
		return nil, malformedRow(0, "pattern %q has %d marks, want %d", pattern, len(pattern), WordLen)
	}

	row := make(Row, WordLen)
	for i := 0; i < WordLen; i++ {
		l, p := Letter(guess[i]), Position(i)
		if !l.Valid() {
			return nil, malformedTile(0, i, "letter %q is not A-Z", guess[i])
		}
		switch pattern[i] {
		case 'G', '2':
			row[i] = Correct(l, p)
		case 'Y', '1':
			row[i] = Present(l, p)
		case 'B', 'X', '0':
			row[i] = Absent(l, p)
		case '-':
			row[i] = Empty()
		default:
			return nil, malformedTile(0, i, "unknown mark %q", pattern[i])
		}
	}
	return row, nil
}

// ParseKind decodes a textual tile state. It accepts the board's own
// vocabulary (correct/present/absent/empty), the longer
// "present in another position", and hit/miss.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct", "hit":
		return KindCorrect, nil
	case "present", "present in another position", "elsewhere":
		return KindPresent, nil
	case "absent", "miss":
		return KindAbsent, nil
	case "empty", "":
		return KindEmpty, nil
	}
	return KindEmpty, fmt.Errorf("%w: unknown tile state %q", ErrMalformedFeedback, s)
}

// ParseMarks builds a row from a guess and one textual state per tile.
func ParseMarks(guess string, marks []string) (Row, error) {
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(marks) != WordLen {
		return nil, malformedRow(0, "got %d marks, want %d", len(marks), WordLen)
	}
	if len(guess) != WordLen {
		return nil, malformedRow(0, "guess %q has %d letters, want %d", guess, len(guess), WordLen)
	}
	row := make(Row, WordLen)
	for i, m := range marks {
		k, err := ParseKind(m)
		if err != nil {
			return nil, malformedTile(0, i, "%s", err.Error())
		}
		if k == KindEmpty {
			row[i] = Empty()
			continue
		}
		row[i] = TileSignal{Kind: k, Letter: Letter(guess[i]), Position: Position(i)}
	}
	return row, ValidateRow(0, row)
}

// Pattern renders a row back into its compact G/Y/B/- form.
func (r Row) Pattern() string {
	var b strings.Builder
	for _, t := range r {
		switch t.Kind {
		case KindCorrect:
			b.WriteByte('G')
		case KindPresent:
			b.WriteByte('Y')
		case KindAbsent:
			b.WriteByte('B')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
