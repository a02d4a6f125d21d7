package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, list []string) []Word {
	t.Helper()
	out := make([]Word, 0, len(list))
	for _, s := range list {
		w, err := ParseWord(s)
		require.NoError(t, err)
		out = append(out, w)
	}
	return out
}

func TestPoolRetain(t *testing.T) {
	dict := parseAll(t, []string{"fates", "facts", "faxes", "gates", "wrung"})
	p := NewPool(dict)
	require.Equal(t, 5, p.Len())

	secret := MustParseWord("fates")
	guess := MustParseWord("facts")
	p.Retain(guess, Score(secret, guess))

	assert.Equal(t, []Word{MustParseWord("fates")}, p.Words())
	// the dictionary itself is untouched
	assert.Equal(t, MustParseWord("facts"), dict[1])
}

func TestPoolConvergesForEverySecret(t *testing.T) {
	dict := parseAll(t, testWords)
	for _, secret := range dict {
		p := NewPool(dict)
		for round := 0; p.Len() > 1; round++ {
			require.Less(t, round, len(dict), "secret %s did not converge", secret)
			before := p.Len()
			// always guess the first survivor to keep the walk deterministic
			guess := p.At(0)
			p.Retain(guess, Score(secret, guess))
			require.Less(t, p.Len(), before, "secret %s: pool did not shrink on %s", secret, guess)
		}
		require.Equal(t, 1, p.Len())
		assert.Equal(t, secret, p.At(0))
	}
}
