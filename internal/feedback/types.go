// internal/feedback/types.go
//
// Typed model of Wordle board feedback.
// Defines:
//   - Letter / Position: one of A–Z, and a zero-indexed column in [0,5).
//   - Kind + TileSignal: per-tile result after a guess (correct/present/absent/empty).
//   - Row / Board: one guess attempt, and all attempts in guess order.
//   - LetterSet / PositionSet: compact bitmask sets used by ConstraintSet.
//
// Adapters (browser, local game, HTTP) build these values directly; the
// interpreter never parses free text.

package feedback

import (
	"strings"
)

// WordLen is the number of tiles in a row.
const WordLen = 5

// Letter is an uppercase ASCII letter A–Z.
type Letter byte

// Valid reports whether l is in A–Z.
func (l Letter) Valid() bool { return l >= 'A' && l <= 'Z' }

func (l Letter) String() string { return string(rune(l)) }

// index maps A–Z to 0..25. Callers validate first.
func (l Letter) index() uint { return uint(l - 'A') }

// Position is a zero-indexed column of a 5-letter word.
type Position int

// Valid reports whether p is in [0,WordLen).
func (p Position) Valid() bool { return p >= 0 && p < WordLen }

// Kind is the evaluation of a single tile.
//   - KindEmpty:   tile not filled yet; the whole row is unplayed.
//   - KindAbsent:  letter is not in the word (see duplicate caveat in Interpret).
//   - KindPresent: letter is in the word but not at this position.
//   - KindCorrect: letter is in the word at exactly this position.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindAbsent
	KindPresent
	KindCorrect
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindAbsent:
		return "absent"
	case KindPresent:
		return "present"
	case KindCorrect:
		return "correct"
	}
	return "unknown"
}

// TileSignal is the feedback for one tile.
type TileSignal struct {
	Kind     Kind
	Letter   Letter
	Position Position
}

// Correct builds a tile whose letter sits at exactly position p.
func Correct(l Letter, p Position) TileSignal {
	return TileSignal{Kind: KindCorrect, Letter: l, Position: p}
}

// Present builds a tile whose letter is in the word but not at p.
func Present(l Letter, p Position) TileSignal {
	return TileSignal{Kind: KindPresent, Letter: l, Position: p}
}

// Absent builds a tile whose letter was reported grey at p.
func Absent(l Letter, p Position) TileSignal {
	return TileSignal{Kind: KindAbsent, Letter: l, Position: p}
}

// Empty builds an unfilled tile.
func Empty() TileSignal { return TileSignal{Kind: KindEmpty} }

// Row is one guess attempt: exactly WordLen tiles once validated.
type Row []TileSignal

// IsEmpty reports whether any tile in the row is unfilled.
func (r Row) IsEmpty() bool {
	for _, t := range r {
		if t.Kind == KindEmpty {
			return true
		}
	}
	return false
}

// AllCorrect reports whether the row is a full row of correct tiles.
func (r Row) AllCorrect() bool {
	if len(r) != WordLen {
		return false
	}
	for _, t := range r {
		if t.Kind != KindCorrect {
			return false
		}
	}
	return true
}

// Word returns the guessed letters of the row (empty tiles render as '.').
func (r Row) Word() string {
	var b strings.Builder
	for _, t := range r {
		if t.Kind == KindEmpty || !t.Letter.Valid() {
			b.WriteByte('.')
			continue
		}
		b.WriteByte(byte(t.Letter))
	}
	return b.String()
}

// Board is every row in guess order.
type Board []Row

// Played returns only the rows that contain no empty tiles.
func (b Board) Played() Board {
	out := make(Board, 0, len(b))
	for _, r := range b {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}

// LetterSet is a set of letters stored as a 26-bit mask.
type LetterSet uint32

// Add returns the set with l included.
func (s LetterSet) Add(l Letter) LetterSet { return s | 1<<l.index() }

// Has reports whether l is in the set.
func (s LetterSet) Has(l Letter) bool {
	if !l.Valid() {
		return false
	}
	return s&(1<<l.index()) != 0
}

// Len returns the number of letters in the set.
func (s LetterSet) Len() int {
	n := 0
	for x := s; x != 0; x &= x - 1 {
		n++
	}
	return n
}

// Letters returns the members in alphabetical order.
func (s LetterSet) Letters() []Letter {
	out := make([]Letter, 0, s.Len())
	for i := 0; i < 26; i++ {
		if s&(1<<uint(i)) != 0 {
			out = append(out, Letter('A'+i))
		}
	}
	return out
}

func (s LetterSet) String() string {
	var b strings.Builder
	for _, l := range s.Letters() {
		b.WriteByte(byte(l))
	}
	return b.String()
}

// LetterSetOf builds a set from a string of letters.
func LetterSetOf(letters string) LetterSet {
	var s LetterSet
	for i := 0; i < len(letters); i++ {
		if l := Letter(letters[i]); l.Valid() {
			s = s.Add(l)
		}
	}
	return s
}

// PositionSet is a set of positions stored as a 5-bit mask.
type PositionSet uint8

// Add returns the set with p included.
func (s PositionSet) Add(p Position) PositionSet { return s | 1<<uint(p) }

// Has reports whether p is in the set.
func (s PositionSet) Has(p Position) bool {
	if !p.Valid() {
		return false
	}
	return s&(1<<uint(p)) != 0
}

// Positions returns the members in ascending order.
func (s PositionSet) Positions() []Position {
	var out []Position
	for p := Position(0); p < WordLen; p++ {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// PositionSetOf builds a set from the given positions.
func PositionSetOf(ps ...Position) PositionSet {
	var s PositionSet
	for _, p := range ps {
		if p.Valid() {
			s = s.Add(p)
		}
	}
	return s
}
