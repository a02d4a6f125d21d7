package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/game"
)

func TestLoadEmbedded(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, d.Len(), 100)
	assert.True(t, d.Contains(game.MustParseWord("uncle")))

	st := d.Stats()
	assert.Equal(t, "embedded", st.Source)
	assert.Zero(t, st.Malformed)
	assert.Zero(t, st.Duplicates)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	body := strings.Join([]string{
		"# comment",
		"Crane",
		"",
		"  slate ",
		"toolong",
		"ab1de",
		"crane",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []game.Word{game.MustParseWord("crane"), game.MustParseWord("slate")}, d.Words())
	assert.Equal(t, Stats{Source: path, Words: 2, Malformed: 2, Duplicates: 1}, d.Stats())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseEmpty(t *testing.T) {
	_, err := FromWords("four", "sixsix")
	assert.ErrorIs(t, err, ErrEmpty)
}
