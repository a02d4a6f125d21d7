package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/httpserver"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/sim"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/words"
)

func newRootCmd() *cobra.Command {
	var cfg Config

	root := &cobra.Command{
		Use:           "wordle-sim",
		Short:         "Measure how fast random guessing narrows a Wordle dictionary to the secret",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			applyFlags(cmd, &loaded)
			cfg = loaded
			setupLogging(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	f := root.PersistentFlags()
	f.String("words", "", "dictionary file, one word per line (default: embedded list)")
	f.String("db", "", "SQLite file to record runs in")
	root.Flags().Int("trials", 0, "number of trials")
	root.Flags().Uint64("seed", 0, "seed for the random source (default: random)")
	root.Flags().Int("workers", 0, "parallel workers")
	root.Flags().Bool("progress", true, "show a progress bar")

	root.AddCommand(newServeCmd(&cfg))
	return root
}

func newServeCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring, filtering and run API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*cfg)
		},
	}
	cmd.Flags().String("port", "", "listen port")
	return cmd
}

// applyFlags copies explicitly set flags over the env config.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	fs := cmd.Flags()
	if fs.Changed("words") {
		cfg.WordsFile, _ = fs.GetString("words")
	}
	if fs.Changed("db") {
		cfg.DBPath, _ = fs.GetString("db")
	}
	if fs.Lookup("trials") != nil && fs.Changed("trials") {
		cfg.Trials, _ = fs.GetInt("trials")
	}
	if fs.Lookup("seed") != nil && fs.Changed("seed") {
		seed, _ := fs.GetUint64("seed")
		cfg.Seed = &seed
	}
	if fs.Lookup("workers") != nil && fs.Changed("workers") {
		cfg.Workers, _ = fs.GetInt("workers")
	}
	if fs.Lookup("progress") != nil && fs.Changed("progress") {
		cfg.Progress, _ = fs.GetBool("progress")
	}
	if fs.Lookup("port") != nil && fs.Changed("port") {
		cfg.Port, _ = fs.GetString("port")
	}
}

func loadDictionary(cfg Config) (*words.Dictionary, error) {
	dict, err := words.Load(cfg.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	st := dict.Stats()
	ev := log.Info()
	if st.Malformed > 0 || st.Duplicates > 0 {
		ev = log.Warn()
	}
	ev.Str("source", st.Source).
		Int("words", st.Words).
		Int("malformed", st.Malformed).
		Int("duplicates", st.Duplicates).
		Msg("dictionary loaded")
	return dict, nil
}

func openStore(cfg Config) (store.Store, error) {
	if cfg.DBPath == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// runSimulation loads the dictionary, runs the trials and prints the
// round-count histogram to out.
func runSimulation(ctx context.Context, cfg Config, out io.Writer) error {
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}

	seed := sim.RandomSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	// Reported before anything random happens so a failing run can be replayed.
	fmt.Fprintf(out, "Seed: %d\n", seed)
	log.Info().Uint64("seed", seed).Int("trials", cfg.Trials).Int("workers", cfg.Workers).Msg("starting simulation")

	var progress sim.Progress
	if cfg.Progress {
		progress = progressbar.Default(int64(cfg.Trials), "trials")
	}

	started := time.Now()
	res, err := sim.Run(ctx, dict.Words(), sim.Config{Trials: cfg.Trials, Seed: seed, Workers: cfg.Workers}, progress)
	if err != nil {
		return fmt.Errorf("seed %d: %w", seed, err)
	}
	log.Info().Dur("elapsed", res.Elapsed).Msg("simulation finished")

	if err := writeReport(out, res); err != nil {
		return err
	}

	if cfg.DBPath != "" {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		run := store.NewRun(res, cfg.Workers, started)
		if err := st.Save(ctx, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		log.Info().Str("run", run.ID).Str("db", cfg.DBPath).Msg("run recorded")
	}
	return nil
}

// writeReport prints one line per round count, then summary statistics.
func writeReport(out io.Writer, res *sim.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Rounds\tTrials\tShare\t")
	total := res.Histogram.Total()
	for _, r := range res.Histogram.Rounds() {
		n := res.Histogram[r]
		fmt.Fprintf(tw, "%d\t%d\t%.2f%%\t\n", r, n, 100*float64(n)/float64(total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sum, err := res.Histogram.Summary()
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	fmt.Fprintln(out, strings.Repeat("-", 32))
	fmt.Fprintf(out, "trials %d  mean %.3f  median %.0f  p90 %.0f  stddev %.3f  max %.0f\n",
		sum.Trials, sum.Mean, sum.Median, sum.P90, sum.StdDev, sum.Max)
	return nil
}

// serve starts the HTTP API.
func serve(cfg Config) error {
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := httpserver.New(dict, st, httpserver.Options{
		ClientOrigin: cfg.ClientOrigin,
		MaxTrials:    cfg.MaxHTTPTrials,
		Workers:      cfg.Workers,
	})
	log.Info().Str("port", cfg.Port).Msg("starting wordle-sim server")
	return srv.Start(":" + cfg.Port)
}
