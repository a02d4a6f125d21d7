// internal/game/types.go
//
// Core type definitions for the feedback engine.
// Defines:
//   - Word: a fixed five-letter lowercase word.
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Feedback: the five marks produced by scoring one guess.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// WordLen is the fixed number of letters in every word.
const WordLen = 5

// ErrInvalidWord is returned by ParseWord for input that is not exactly
// five ASCII letters.
var ErrInvalidWord = errors.New("invalid word")

// Word is a five-letter word of lowercase a–z bytes.
// It is a value type; copies are independent.
type Word [WordLen]byte

// ParseWord trims and lowercases s and converts it to a Word.
func ParseWord(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != WordLen {
		return w, fmt.Errorf("%w: %q has %d letters", ErrInvalidWord, s, len(s))
	}
	for i := 0; i < WordLen; i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return w, fmt.Errorf("%w: %q", ErrInvalidWord, s)
		}
		w[i] = s[i]
	}
	return w, nil
}

// MustParseWord is ParseWord for literals known to be valid.
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) String() string { return string(w[:]) }

// IsZero reports whether w was never set, e.g. a missing JSON field.
func (w Word) IsZero() bool { return w == Word{} }

// MarshalText encodes the word as its five letters.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText parses the word with ParseWord.
func (w *Word) UnmarshalText(b []byte) error {
	p, err := ParseWord(string(b))
	if err != nil {
		return err
	}
	*w = p
	return nil
}

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - MarkHit:     letter is correct and in the correct position.
//   - MarkPresent: letter exists in the secret but in a different position.
//   - MarkMiss:    letter is not accounted for in the secret.
type Mark uint8

const (
	MarkMiss Mark = iota
	MarkPresent
	MarkHit
)

var markNames = [...]string{
	MarkMiss:    "miss",
	MarkPresent: "present",
	MarkHit:     "hit",
}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// MarshalText encodes the mark as "hit", "present" or "miss".
func (m Mark) MarshalText() ([]byte, error) {
	if int(m) >= len(markNames) {
		return nil, fmt.Errorf("unknown mark %d", uint8(m))
	}
	return []byte(markNames[m]), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for i, name := range markNames {
		if s == name {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mark %q", s)
}

// Feedback is the index-aligned result of scoring a guess.
type Feedback [WordLen]Mark

// Solved reports whether every position is a hit.
func (f Feedback) Solved() bool {
	for _, m := range f {
		if m != MarkHit {
			return false
		}
	}
	return true
}

// Pattern renders the feedback compactly for logs: g=hit, y=present, .=miss.
func (f Feedback) Pattern() string {
	var b [WordLen]byte
	for i, m := range f {
		switch m {
		case MarkHit:
			b[i] = 'g'
		case MarkPresent:
			b[i] = 'y'
		default:
			b[i] = '.'
		}
	}
	return string(b[:])
}

// idx maps a lowercase ASCII letter to 0..25.
// Assumes inputs are validated to a–z elsewhere.
func idx(c byte) int { return int(c - 'a') }

// letterCounts tallies occurrences of each letter in w.
func letterCounts(w Word) (counts [26]int) {
	for _, c := range w {
		counts[idx(c)]++
	}
	return counts
}
