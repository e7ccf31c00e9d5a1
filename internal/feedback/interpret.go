// internal/feedback/interpret.go
//
// Feedback interpreter: Board -> ConstraintSet.
//
// The interpreter is a pure function of the full board. It is re-run from
// scratch every turn rather than merged incrementally, so calling it twice
// on the same board always yields equal results.
//
// Per played row, per tile at position p with letter L:
//   - Correct: L joins MustInclude; FixedPositions[p] = L.
//   - Present: L joins MustInclude; p joins ExcludedPositions[L].
//   - Absent:  L joins Absent; p joins AbsentAt[L].
//
// Duplicate letters: Wordle greys a repeated letter once the answer's copies
// are used up, so a letter can land in both MustInclude and Absent. The
// per-row counts (MinCount/MaxCount) keep enough information for a filter
// to tell "not in the word" from "not this many times".

package feedback

// ConstraintSet is the knowledge accumulated from every played row.
type ConstraintSet struct {
	MustInclude       LetterSet
	Absent            LetterSet
	FixedPositions    map[Position]Letter
	ExcludedPositions map[Letter]PositionSet

	// MinCount[L] is the largest number of correct+present tiles for L seen in one row.
	MinCount map[Letter]int
	// MaxCount[L] is set when a row greyed L; the answer holds at most that row's
	// correct+present count of L.
	MaxCount map[Letter]int
	// AbsentAt[L] lists the positions where L was greyed.
	AbsentAt map[Letter]PositionSet
}

// NewConstraintSet returns an empty set with all maps allocated.
func NewConstraintSet() ConstraintSet {
	return ConstraintSet{
		FixedPositions:    make(map[Position]Letter),
		ExcludedPositions: make(map[Letter]PositionSet),
		MinCount:          make(map[Letter]int),
		MaxCount:          make(map[Letter]int),
		AbsentAt:          make(map[Letter]PositionSet),
	}
}

// Available reports whether some tile marked l correct or present.
func (cs ConstraintSet) Available(l Letter) bool { return cs.MustInclude.Has(l) }

// Interpret validates the board and folds every played row into a ConstraintSet.
// Rows containing an empty tile are skipped. Any row whose length is not
// WordLen, or any tile that does not decode, fails with ErrMalformedFeedback.
func Interpret(board Board) (ConstraintSet, error) {
	cs := NewConstraintSet()
	for i, row := range board {
		if err := ValidateRow(i, row); err != nil {
			return ConstraintSet{}, err
		}
		if row.IsEmpty() {
			continue
		}
		cs.addRow(row)
	}
	return cs, nil
}

func (cs *ConstraintSet) addRow(row Row) {
	var seen [26]int
	var greyed LetterSet

	for _, t := range row {
		l, p := t.Letter, t.Position
		switch t.Kind {
		case KindCorrect:
			cs.MustInclude = cs.MustInclude.Add(l)
			cs.FixedPositions[p] = l
			seen[l.index()]++
		case KindPresent:
			cs.MustInclude = cs.MustInclude.Add(l)
			cs.ExcludedPositions[l] = cs.ExcludedPositions[l].Add(p)
			seen[l.index()]++
		case KindAbsent:
			cs.Absent = cs.Absent.Add(l)
			cs.AbsentAt[l] = cs.AbsentAt[l].Add(p)
			greyed = greyed.Add(l)
		}
	}

	for i, n := range seen {
		l := Letter('A' + i)
		if n > cs.MinCount[l] {
			cs.MinCount[l] = n
		}
		if !greyed.Has(l) {
			continue
		}
		if cur, ok := cs.MaxCount[l]; !ok || n < cur {
			cs.MaxCount[l] = n
		}
	}
}

// ValidateRow checks a single row: length WordLen, and every non-empty tile
// must carry a known kind, an A–Z letter, and its own column as position.
func ValidateRow(index int, row Row) error {
	if len(row) != WordLen {
		return malformedRow(index, "row has %d tiles, want %d", len(row), WordLen)
	}
	for col, t := range row {
		if t.Kind == KindEmpty {
			continue
		}
		if t.Kind > KindCorrect {
			return malformedTile(index, col, "unknown tile kind %d", t.Kind)
		}
		if !t.Letter.Valid() {
			return malformedTile(index, col, "letter %q is not A-Z", rune(t.Letter))
		}
		if t.Position != Position(col) {
			return malformedTile(index, col, "tile reports position %d", t.Position)
		}
	}
	return nil
}
