package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed words.txt sql/*.sql
var FS embed.FS

// DefaultWords returns the embedded dictionary file contents.
func DefaultWords() (string, error) {
	b, err := FS.ReadFile("words.txt")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded sql/*.sql scripts in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := FS.ReadFile(n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: n, SQL: string(b)})
	}
	return out, nil
}
