// internal/words/words.go
//
// Provides dictionary loading for the simulator and the HTTP API.
//
// Responsibilities:
//   - Load the word list from a file, or fall back to the embedded default.
//   - Normalize lines (trim, lowercase) and keep only 5-letter a–z words.
//   - Drop duplicates so a secret can always be isolated to a single entry.
//   - Count malformed lines so callers can report them.
//
// File format:
//   one word per line; blank lines and lines starting with '#' are ignored.
//
// Environment variables (read by the caller, see config.go):
//   WORDS_FILE=/path/to/words.txt

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/wordle-sim/assets"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/game"
)

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is an immutable, de-duplicated list of words in file order.
type Dictionary struct {
	list    []game.Word
	set     map[game.Word]struct{}
	skipped int // malformed lines
	dupes   int // repeated words
	source  string
}

// Load reads the dictionary at path, or the embedded default when path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		text, err := assets.DefaultWords()
		if err != nil {
			return nil, fmt.Errorf("read embedded words: %w", err)
		}
		return Parse(strings.NewReader(text), "embedded")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse builds a Dictionary from r. source is used only for reporting.
func Parse(r io.Reader, source string) (*Dictionary, error) {
	d := &Dictionary{set: make(map[game.Word]struct{}), source: source}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, err := game.ParseWord(line)
		if err != nil {
			d.skipped++
			continue
		}
		if _, ok := d.set[w]; ok {
			d.dupes++
			continue
		}
		d.set[w] = struct{}{}
		d.list = append(d.list, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", source, err)
	}
	if len(d.list) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrEmpty, source)
	}
	return d, nil
}

// FromWords builds a Dictionary from string literals, applying the same
// rules as Parse.
func FromWords(list ...string) (*Dictionary, error) {
	return Parse(strings.NewReader(strings.Join(list, "\n")), "inline")
}

// Words returns the words in load order. Callers must not modify the slice.
func (d *Dictionary) Words() []game.Word { return d.list }

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.list) }

// Contains reports whether w is in the dictionary.
func (d *Dictionary) Contains(w game.Word) bool {
	_, ok := d.set[w]
	return ok
}

// Stats describes what Load kept and dropped.
type Stats struct {
	Source     string `json:"source"`
	Words      int    `json:"words"`
	Malformed  int    `json:"malformed"`
	Duplicates int    `json:"duplicates"`
}

// Stats returns load counters.
func (d *Dictionary) Stats() Stats {
	return Stats{Source: d.source, Words: len(d.list), Malformed: d.skipped, Duplicates: d.dupes}
}
