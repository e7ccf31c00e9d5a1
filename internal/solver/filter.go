// internal/solver/filter.go
//
// Candidate filter: decides whether a word is consistent with a ConstraintSet.
//
// Rules:
//   1. Every MustInclude letter occurs in the word.
//   2. No Absent letter occurs anywhere in the word.
//   3. FixedPositions[p] = L implies word[p] == L;
//      p in ExcludedPositions[L] implies word[p] != L.
//
// Modes:
//   - ModeLegacy:     rules 1 + 2. Positional knowledge is ignored.
//   - ModePositional: rules 1 + 2 + 3.
//   - ModeStrict:     rules 1 + 3 with duplicate-aware absent handling. A greyed
//                     letter that some tile also marked correct/present is not
//                     banned; instead the word must hold between MinCount and
//                     MaxCount copies and none at the greyed positions.

package solver

import (
	"fmt"
	"strings"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
)

// Mode selects which filtering rules apply.
type Mode int

const (
	ModeStrict Mode = iota
	ModePositional
	ModeLegacy
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModePositional:
		return "positional"
	case ModeLegacy:
		return "legacy"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts "strict", "positional" or "legacy" (any case).
// An empty string selects ModeStrict.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ModeStrict, nil
	case "positional":
		return ModePositional, nil
	case "legacy":
		return ModeLegacy, nil
	}
	return ModeStrict, fmt.Errorf("unknown filter mode %q (want strict, positional or legacy)", s)
}

// IsConsistent reports whether word could still be the answer under cs.
func IsConsistent(word string, cs feedback.ConstraintSet, mode Mode) bool {
	if len(word) != feedback.WordLen {
		return false
	}

	for _, l := range cs.MustInclude.Letters() {
		if strings.IndexByte(word, byte(l)) < 0 {
			return false
		}
	}

	switch mode {
	case ModeLegacy:
		return noAbsentLetters(word, cs.Absent)
	case ModePositional:
		return noAbsentLetters(word, cs.Absent) && positionsHold(word, cs)
	}

	if !positionsHold(word, cs) {
		return false
	}
	for _, l := range cs.Absent.Letters() {
		if !cs.Available(l) {
			if strings.IndexByte(word, byte(l)) >= 0 {
				return false
			}
			continue
		}
		for _, p := range cs.AbsentAt[l].Positions() {
			if word[p] == byte(l) {
				return false
			}
		}
		if limit, ok := cs.MaxCount[l]; ok && strings.Count(word, l.String()) > limit {
			return false
		}
	}
	for l, n := range cs.MinCount {
		if strings.Count(word, l.String()) < n {
			return false
		}
	}
	return true
}

func noAbsentLetters(word string, absent feedback.LetterSet) bool {
	for _, l := range absent.Letters() {
		if strings.IndexByte(word, byte(l)) >= 0 {
			return false
		}
	}
	return true
}

func positionsHold(word string, cs feedback.ConstraintSet) bool {
	for p, l := range cs.FixedPositions {
		if !p.Valid() || word[p] != byte(l) {
			return false
		}
	}
	for l, ps := range cs.ExcludedPositions {
		for _, p := range ps.Positions() {
			if word[p] == byte(l) {
				return false
			}
		}
	}
	return true
}

// FilterPool returns the subsequence of pool consistent with cs, preserving
// relative order. pool itself is left untouched.
func FilterPool(pool *Pool, cs feedback.ConstraintSet, mode Mode) *Pool {
	live := pool.narrow(cs, mode)
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		if !IsConsistent(pool.dict.words[i], cs, mode) {
			live.Clear(i)
		}
	}
	return &Pool{dict: pool.dict, live: live}
}
