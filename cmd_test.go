package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/sim"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/store"
)

func TestRunSimulation(t *testing.T) {
	seed := uint64(4171687965805832080)
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	cfg := Config{Trials: 25, Seed: &seed, Workers: 2, DBPath: dbPath}

	var out bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), cfg, &out))

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "Seed: 4171687965805832080", lines[0])
	assert.Contains(t, out.String(), "Rounds")
	assert.Contains(t, out.String(), "trials 25")

	st, err := store.OpenSQLite(dbPath)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, seed, runs[0].Seed)
	assert.Equal(t, 25, runs[0].Histogram.Total())
}

func TestRunSimulationMissingDictionary(t *testing.T) {
	cfg := Config{Trials: 1, WordsFile: filepath.Join(t.TempDir(), "missing.txt")}
	err := runSimulation(context.Background(), cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dictionary")
}

func TestWriteReport(t *testing.T) {
	var out bytes.Buffer
	res := &sim.Result{Seed: 1, Trials: 4, Histogram: sim.Histogram{2: 1, 3: 3}}
	require.NoError(t, writeReport(&out, res))

	s := out.String()
	assert.Contains(t, s, "75.00%")
	assert.Contains(t, s, "25.00%")
	assert.Contains(t, s, "mean 2.750")
}
