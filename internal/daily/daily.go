// internal/daily/daily.go
//
// Deterministic "daily" puzzle for local play.
// The answer for a date is words[HMAC-SHA256(salt, YYYY-MM-DD) mod len(words)],
// so every process with the same salt and dictionary agrees on the day's word
// without storing it.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/davidsrrose/wordle-bot/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as the modulus source
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Puzzle is one day's answer.
type Puzzle struct {
	Date   string `json:"date"`
	Index  int    `json:"wordIndex"`
	Answer string `json:"-"`
}

// For picks the puzzle for date from list.
func For(date time.Time, salt string, list *words.List) Puzzle {
	i := WordIndex(date, salt, list.Len())
	p := Puzzle{Date: DateKey(date), Index: i}
	if list.Len() > 0 {
		p.Answer = list.Words[i]
	}
	return p
}
