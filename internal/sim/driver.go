// internal/sim/driver.go
//
// Monte-Carlo driver: measures how many random guess-and-filter rounds it
// takes for the candidate pool to collapse onto the secret.
//
// Each trial:
//   1. draws a secret uniformly from the full dictionary,
//   2. copies the dictionary into a fresh pool,
//   3. guesses uniformly from the current pool, scores it against the
//      secret and filters the pool, until one word is left,
//   4. checks the survivor is the secret and records the round count.
//
// Trials may run on several workers. Every trial gets its own seed drawn in
// order from the run's master source, so results do not depend on Workers.

package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/game"
)

var (
	ErrNoWords  = errors.New("sim: empty dictionary")
	ErrNoTrials = errors.New("sim: trial count must be positive")
)

// Config controls one simulation run.
type Config struct {
	Trials  int
	Seed    uint64
	Workers int
}

// Progress receives one tick per finished trial.
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
}

// Result is the outcome of a completed run.
type Result struct {
	Seed      uint64
	Trials    int
	Words     int
	Histogram Histogram
	Elapsed   time.Duration
}

// NewRand returns the deterministic source used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed picks a seed for runs that do not specify one.
func RandomSeed() uint64 { return rand.Uint64() }

type trialJob struct {
	n    int
	seed uint64
}

// Run executes cfg.Trials independent trials over words.
// It stops at the first invariant violation or when ctx is cancelled.
func Run(ctx context.Context, words []game.Word, cfg Config, progress Progress) (*Result, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	if cfg.Trials <= 0 {
		return nil, ErrNoTrials
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()
	hist := make(Histogram)
	var mu sync.Mutex // guards hist

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan trialJob, workers*2)

	g.Go(func() error {
		defer close(jobs)
		master := NewRand(cfg.Seed)
		for n := 0; n < cfg.Trials; n++ {
			select {
			case jobs <- trialJob{n: n, seed: master.Uint64()}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := make(Histogram)
			for j := range jobs {
				r := NewRand(j.seed)
				secret := words[r.IntN(len(words))]
				rounds, err := PlayOut(words, secret, r)
				if err != nil {
					log.Error().Err(err).
						Str("secret", secret.String()).
						Uint64("seed", cfg.Seed).
						Int("trial", j.n).
						Msg("invariant violated")
					return err
				}
				local.Add(rounds)
				if progress != nil {
					_ = progress.Add(1)
				}
			}
			mu.Lock()
			hist.Merge(local)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{
		Seed:      cfg.Seed,
		Trials:    cfg.Trials,
		Words:     len(words),
		Histogram: hist,
		Elapsed:   time.Since(start),
	}, nil
}

// PlayOut runs one trial with a fixed secret and returns the number of
// rounds needed to reduce the pool to a single word.
func PlayOut(words []game.Word, secret game.Word, r *rand.Rand) (int, error) {
	pool := game.NewPool(words)
	rounds := 0
	for pool.Len() > 1 {
		rounds++
		before := pool.Len()
		guess := pool.At(r.IntN(before))
		fb := game.Score(secret, guess)
		pool.Retain(guess, fb)

		switch {
		case pool.Len() == 0:
			return rounds, &InvariantError{Secret: secret, Guess: guess, Feedback: fb, Round: rounds, Reason: "candidate pool emptied"}
		case pool.Len() == before:
			return rounds, &InvariantError{Secret: secret, Guess: guess, Feedback: fb, Round: rounds, Remaining: before, Reason: "round did not shrink the pool"}
		}
	}
	if pool.Len() == 0 {
		return rounds, &InvariantError{Secret: secret, Round: rounds, Reason: "candidate pool emptied"}
	}
	if got := pool.At(0); got != secret {
		return rounds, &InvariantError{Secret: secret, Round: rounds, Remaining: 1, Reason: fmt.Sprintf("pool converged on %s", got)}
	}
	return rounds, nil
}
