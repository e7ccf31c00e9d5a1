// internal/solver/pool.go
//
// Candidate pool backed by bitsets.
//
// A Dictionary is the immutable, ordered word list plus per-letter indexes:
//   contains[L]   words holding L anywhere
//   at[p][L]      words holding L at position p
//
// A Pool is a membership bitset over a Dictionary. Filtering only ever clears
// bits, so a pool can shrink or stay equal but never grow, and iteration in
// bit order preserves the dictionary's relative order.

package solver

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
)

// Dictionary is a read-only word list with letter indexes.
// It is safe to share between pickers.
type Dictionary struct {
	words    []string
	contains [26]*bitset.BitSet
	at       [feedback.WordLen][26]*bitset.BitSet
}

// NewDictionary indexes ws. Words must already be uppercase, 5 letters A–Z
// (words.List guarantees this); anything else is kept but never indexed.
func NewDictionary(ws []string) *Dictionary {
	n := uint(len(ws))
	d := &Dictionary{words: append([]string(nil), ws...)}
	for l := 0; l < 26; l++ {
		d.contains[l] = bitset.New(n)
		for p := 0; p < feedback.WordLen; p++ {
			d.at[p][l] = bitset.New(n)
		}
	}
	for i, w := range d.words {
		if len(w) != feedback.WordLen {
			continue
		}
		for p := 0; p < feedback.WordLen; p++ {
			l := int(w[p]) - 'A'
			if l < 0 || l >= 26 {
				continue
			}
			d.contains[l].Set(uint(i))
			d.at[p][l].Set(uint(i))
		}
	}
	return d
}

// Len returns the number of dictionary words.
func (d *Dictionary) Len() int { return len(d.words) }

// Pool is the ordered subset of a Dictionary still consistent with feedback.
type Pool struct {
	dict *Dictionary
	live *bitset.BitSet
}

// NewPool returns a pool holding every word of d.
func NewPool(d *Dictionary) *Pool {
	live := bitset.New(uint(d.Len()))
	for i := 0; i < d.Len(); i++ {
		live.Set(uint(i))
	}
	return &Pool{dict: d, live: live}
}

// PoolOf builds a fresh dictionary and full pool from ws.
func PoolOf(ws ...string) *Pool { return NewPool(NewDictionary(ws)) }

// Len returns the number of live words.
func (p *Pool) Len() int { return int(p.live.Count()) }

// Words returns the live words in dictionary order.
func (p *Pool) Words() []string {
	out := make([]string, 0, p.Len())
	for i, ok := p.live.NextSet(0); ok; i, ok = p.live.NextSet(i + 1) {
		out = append(out, p.dict.words[i])
	}
	return out
}

// Contains reports whether w is live.
func (p *Pool) Contains(w string) bool {
	for i, ok := p.live.NextSet(0); ok; i, ok = p.live.NextSet(i + 1) {
		if p.dict.words[i] == w {
			return true
		}
	}
	return false
}

// narrow returns a copy of p restricted by the letter indexes. Every word it
// drops violates a rule that mode enforces, so it is safe as a prefilter.
func (p *Pool) narrow(cs feedback.ConstraintSet, mode Mode) *bitset.BitSet {
	d := p.dict
	live := p.live.Clone()

	for _, l := range cs.MustInclude.Letters() {
		live.InPlaceIntersection(d.contains[l-'A'])
	}
	for _, l := range cs.Absent.Letters() {
		if mode == ModeStrict && cs.MustInclude.Has(l) {
			continue
		}
		live.InPlaceDifference(d.contains[l-'A'])
	}
	if mode == ModeLegacy {
		return live
	}
	for pos, l := range cs.FixedPositions {
		if pos.Valid() && l.Valid() {
			live.InPlaceIntersection(d.at[pos][l-'A'])
		}
	}
	for l, ps := range cs.ExcludedPositions {
		if !l.Valid() {
			continue
		}
		for _, pos := range ps.Positions() {
			live.InPlaceDifference(d.at[pos][l-'A'])
		}
	}
	return live
}
