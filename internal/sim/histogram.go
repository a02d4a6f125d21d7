package sim

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// Histogram maps a round count to the number of trials that needed it.
type Histogram map[int]int

// Add records one trial that took rounds rounds.
func (h Histogram) Add(rounds int) { h[rounds]++ }

// Merge adds every bucket of o into h.
func (h Histogram) Merge(o Histogram) {
	for r, n := range o {
		h[r] += n
	}
}

// Total returns the number of recorded trials.
func (h Histogram) Total() int {
	t := 0
	for _, n := range h {
		t += n
	}
	return t
}

// Rounds returns the populated round counts in ascending order.
func (h Histogram) Rounds() []int {
	out := make([]int, 0, len(h))
	for r := range h {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Summary holds descriptive statistics over the recorded round counts.
type Summary struct {
	Trials int     `json:"trials"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary computes statistics over every recorded trial.
func (h Histogram) Summary() (Summary, error) {
	data := make(stats.Float64Data, 0, h.Total())
	for _, r := range h.Rounds() {
		for i := 0; i < h[r]; i++ {
			data = append(data, float64(r))
		}
	}

	var (
		s   = Summary{Trials: len(data)}
		err error
	)
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if s.P90, err = stats.Percentile(data, 90); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	return s, nil
}
