// Package store persists completed simulation runs.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/sim"
)

var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for simulation runs.
type Store interface {
	// Save persists or replaces a run.
	Save(ctx context.Context, r *Run) error

	// Get retrieves a run by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Run, error)

	Close() error
}

// Run is a stored simulation result.
type Run struct {
	ID        string        `json:"id"`
	Seed      uint64        `json:"seed,string"`
	Trials    int           `json:"trials"`
	Workers   int           `json:"workers"`
	Words     int           `json:"words"`
	Histogram sim.Histogram `json:"histogram"`
	StartedAt time.Time     `json:"startedAt"`
	Elapsed   time.Duration `json:"elapsedNs"`
}

// NewRun wraps a finished simulation result in a Run with a fresh ID.
func NewRun(res *sim.Result, workers int, started time.Time) *Run {
	return &Run{
		ID:        randomID(),
		Seed:      res.Seed,
		Trials:    res.Trials,
		Workers:   workers,
		Words:     res.Words,
		Histogram: res.Histogram,
		StartedAt: started.UTC(),
		Elapsed:   res.Elapsed,
	}
}

func (r *Run) validate() error {
	if r == nil || r.ID == "" {
		return errors.New("store: run has no id")
	}
	return nil
}

func (r *Run) clone() *Run {
	cp := *r
	cp.Histogram = make(sim.Histogram, len(r.Histogram))
	cp.Histogram.Merge(r.Histogram)
	return &cp
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
