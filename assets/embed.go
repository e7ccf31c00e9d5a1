// Package assets embeds the default dictionary so the solver runs without
// any word list configured.
package assets

import (
	"embed"
	"io"
)

//go:embed words.txt
var FS embed.FS

// WordsFile is the embedded dictionary's name inside FS.
const WordsFile = "words.txt"

// OpenWords opens the embedded dictionary for reading.
func OpenWords() (io.ReadCloser, error) {
	f, err := FS.Open(WordsFile)
	if err != nil {
		return nil, err
	}
	return f, nil
}
