package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/sim"
)

func sampleRun(id string, started time.Time) *Run {
	return &Run{
		ID:        id,
		Seed:      4171687965805832080,
		Trials:    6,
		Workers:   2,
		Words:     515,
		Histogram: sim.Histogram{3: 1, 4: 3, 6: 2},
		StartedAt: started.UTC(),
		Elapsed:   1500 * time.Millisecond,
	}
}

func exerciseStore(t *testing.T, st Store) {
	ctx := context.Background()
	t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	older := sampleRun("aaaa", t0)
	newer := sampleRun("bbbb", t0.Add(time.Minute))
	newer.Seed = 0
	require.NoError(t, st.Save(ctx, older))
	require.NoError(t, st.Save(ctx, newer))

	got, err := st.Get(ctx, "aaaa")
	require.NoError(t, err)
	assert.Equal(t, older.Seed, got.Seed)
	assert.Equal(t, older.Histogram, got.Histogram)
	assert.Equal(t, older.Elapsed, got.Elapsed)
	assert.True(t, older.StartedAt.Equal(got.StartedAt))

	// stored copies are independent of the caller's map
	older.Histogram[9] = 1
	got, err = st.Get(ctx, "aaaa")
	require.NoError(t, err)
	assert.NotContains(t, got.Histogram, 9)

	list, err := st.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bbbb", list[0].ID)
	assert.Equal(t, "aaaa", list[1].ID)

	list, err = st.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// saving again replaces the histogram
	newer.Histogram = sim.Histogram{2: 6}
	require.NoError(t, st.Save(ctx, newer))
	got, err = st.Get(ctx, "bbbb")
	require.NoError(t, err)
	assert.Equal(t, sim.Histogram{2: 6}, got.Histogram)

	_, err = st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, st.Save(ctx, &Run{}))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sim.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, st)
	require.NoError(t, st.Close())

	// reopening skips applied migrations and keeps data
	st, err = OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()
	list, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestNewRun(t *testing.T) {
	res := &sim.Result{Seed: 9, Trials: 3, Words: 10, Histogram: sim.Histogram{2: 3}, Elapsed: time.Second}
	r := NewRun(res, 4, time.Now())
	assert.Len(t, r.ID, 16)
	assert.Equal(t, uint64(9), r.Seed)
	assert.Equal(t, 4, r.Workers)
	assert.Equal(t, 3, r.Histogram.Total())
}
