// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Read a newline-delimited word list from a file or the embedded default.
//   - Normalize every entry (NFKC, trimmed, uppercased).
//   - Keep only valid 5-letter A–Z words; everything else is dropped silently
//     and counted in List.Rejected.
//
// Word list format:
//   - One word per line, case-insensitive.
//   - Blank lines and lines starting with '#' are skipped (not counted as rejected).
//
// Errors:
//   - A missing/unreadable file, or a list with no valid words, is a *LoadError
//     wrapping ErrDictionaryLoad. It is fatal at startup.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/davidsrrose/wordle-bot/assets"
)

// WordLen is the length of every dictionary word.
const WordLen = 5

// ErrDictionaryLoad marks every dictionary loading failure.
var ErrDictionaryLoad = errors.New("dictionary load failed")

// LoadError reports which source failed and why.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dictionary load failed: %s: %v", e.Source, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *LoadError) Unwrap() []error { return []error{ErrDictionaryLoad, e.Err} }

// List is a loaded dictionary. Words keeps file order and holds no duplicates.
type List struct {
	Source   string
	Words    []string
	Rejected int

	set map[string]struct{}
}

// Contains reports whether w (any case) is in the list.
func (l *List) Contains(w string) bool {
	if l == nil {
		return false
	}
	_, ok := l.set[strings.ToUpper(strings.TrimSpace(w))]
	return ok
}

// Len returns the number of words.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Words)
}

// FromWords builds a list from in-memory words, applying the same
// normalization and filtering as a file load.
func FromWords(source string, ws []string) (*List, error) {
	return Parse(strings.NewReader(strings.Join(ws, "\n")), source)
}

// LoadFile reads a dictionary from path.
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads a dictionary from r. source names it in errors and logs.
func Parse(r io.Reader, source string) (*List, error) {
	l := &List{Source: source, set: make(map[string]struct{})}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, ok := Normalize(line)
		if !ok {
			l.Rejected++
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.Words = append(l.Words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	if len(l.Words) == 0 {
		return nil, &LoadError{Source: source, Err: errors.New("no valid five-letter words")}
	}
	return l, nil
}

// Normalize folds s to an uppercase 5-letter A–Z word.
// It reports false when the result is not a valid dictionary word.
func Normalize(s string) (string, bool) {
	w := strings.ToUpper(strings.TrimSpace(norm.NFKC.String(s)))
	if len(w) != WordLen || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

var (
	defaultOnce sync.Once
	defaultList *List
	defaultErr  error
)

// Default returns the embedded dictionary, loading it once.
func Default() (*List, error) {
	defaultOnce.Do(func() {
		f, err := assets.OpenWords()
		if err != nil {
			defaultErr = &LoadError{Source: "embedded:" + assets.WordsFile, Err: err}
			return
		}
		defer f.Close()
		defaultList, defaultErr = Parse(f, "embedded:"+assets.WordsFile)
	})
	return defaultList, defaultErr
}

// Load returns the dictionary at path, or the embedded default when path is empty.
func Load(path string) (*List, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
