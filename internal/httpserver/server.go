// internal/httpserver/server.go
//
// HTTP server wiring for the simulator.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/words/stats".
//   - Engine endpoints: POST /score, POST /filter.
//   - Simulation endpoints: POST /runs, GET /runs, GET /runs/{id}.
//
// Notes:
//   - All words are validated with game.ParseWord when decoded.
//   - POST /runs runs synchronously and is capped by Options.MaxTrials.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/sim"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/words"
)

// Options tunes the server.
type Options struct {
	ClientOrigin   string        // CORS origin; defaults to http://localhost:5173
	MaxTrials      int           // upper bound for POST /runs
	Workers        int           // default worker count for POST /runs
	RequestTimeout time.Duration // per-request deadline
}

// Server bundles router, dictionary and run store.
type Server struct {
	r     *chi.Mux
	dict  *words.Dictionary
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(dict *words.Dictionary, st store.Store, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.MaxTrials <= 0 {
		opts.MaxTrials = 10000
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	s := &Server{r: chi.NewRouter(), dict: dict, store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                      // one log line per request
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-sim","endpoints":["/health","/words/stats","POST /score","POST /filter","POST /runs","/runs"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/words/stats", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(s.dict.Stats())
	})

	s.r.Post("/score", s.handleScore)
	s.r.Post("/filter", s.handleFilter)

	s.r.Route("/runs", func(r chi.Router) {
		r.Post("/", s.handleNewRun)
		r.Get("/", s.handleListRuns)
		r.Get("/{id}", s.handleGetRun)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs method, path, status and duration at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// writeErr writes {"error": code} with the given status.
func writeErr(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ ENGINE -------------------------------------

type scoreReq struct {
	Secret game.Word `json:"secret"`
	Guess  game.Word `json:"guess"`
}
type scoreRes struct {
	Marks   game.Feedback `json:"marks"`
	Pattern string        `json:"pattern"`
	Solved  bool          `json:"solved"`
}

// handleScore returns the feedback for a guess against a secret.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, badInput(err))
		return
	}
	if req.Secret.IsZero() || req.Guess.IsZero() {
		writeErr(w, http.StatusBadRequest, "missing_word")
		return
	}
	fb := game.Score(req.Secret, req.Guess)
	_ = json.NewEncoder(w).Encode(scoreRes{Marks: fb, Pattern: fb.Pattern(), Solved: fb.Solved()})
}

type filterReq struct {
	Guess      game.Word   `json:"guess"`
	Marks      []game.Mark `json:"marks"`
	Candidates []game.Word `json:"candidates"` // empty: whole dictionary
}
type filterRes struct {
	Count     int         `json:"count"`
	Remaining []game.Word `json:"remaining"`
}

// handleFilter keeps the candidates consistent with one scored guess.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, badInput(err))
		return
	}
	if req.Guess.IsZero() {
		writeErr(w, http.StatusBadRequest, "missing_word")
		return
	}
	if len(req.Marks) != game.WordLen {
		writeErr(w, http.StatusBadRequest, "marks_length")
		return
	}
	var fb game.Feedback
	copy(fb[:], req.Marks)

	cands := req.Candidates
	if len(cands) == 0 {
		cands = s.dict.Words()
	}
	pool := game.NewPool(cands)
	pool.Retain(req.Guess, fb)
	_ = json.NewEncoder(w).Encode(filterRes{Count: pool.Len(), Remaining: pool.Words()})
}

// ------------------------------- RUNS --------------------------------------

type newRunReq struct {
	Trials  int    `json:"trials"`
	Seed    string `json:"seed"` // decimal uint64; empty picks a random seed
	Workers int    `json:"workers"`
}

type runRes struct {
	*store.Run
	Summary *sim.Summary `json:"summary,omitempty"`
}

func withSummary(run *store.Run) runRes {
	out := runRes{Run: run}
	if sum, err := run.Histogram.Summary(); err == nil {
		out.Summary = &sum
	}
	return out
}

// handleNewRun runs a bounded simulation and stores the result.
func (s *Server) handleNewRun(w http.ResponseWriter, r *http.Request) {
	var req newRunReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Trials <= 0 || req.Trials > s.opts.MaxTrials {
		writeErr(w, http.StatusBadRequest, "trials_out_of_range")
		return
	}
	seed := sim.RandomSeed()
	if req.Seed != "" {
		v, err := strconv.ParseUint(strings.TrimSpace(req.Seed), 10, 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "bad_seed")
			return
		}
		seed = v
	}
	workers := req.Workers
	if workers <= 0 {
		workers = s.opts.Workers
	}

	started := time.Now()
	log.Info().Uint64("seed", seed).Int("trials", req.Trials).Int("workers", workers).Msg("starting run")
	res, err := sim.Run(r.Context(), s.dict.Words(), sim.Config{Trials: req.Trials, Seed: seed, Workers: workers}, nil)
	if err != nil {
		var inv *sim.InvariantError
		if errors.As(err, &inv) {
			log.Error().Err(err).Uint64("seed", seed).Msg("run failed")
			writeErr(w, http.StatusInternalServerError, "invariant_violated")
			return
		}
		writeErr(w, http.StatusServiceUnavailable, "run_cancelled")
		return
	}

	run := store.NewRun(res, workers, started)
	if err := s.store.Save(r.Context(), run); err != nil {
		log.Error().Err(err).Str("run", run.ID).Msg("save run")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(withSummary(run))
}

// handleListRuns returns recent runs, newest first (?limit=N, default 20).
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list runs")
		writeErr(w, http.StatusInternalServerError, "list_failed")
		return
	}
	out := make([]runRes, 0, len(runs))
	for _, run := range runs {
		out = append(out, withSummary(run))
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleGetRun returns one stored run.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get run")
		writeErr(w, http.StatusInternalServerError, "get_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(withSummary(run))
}

// badInput maps decode errors to a short code.
func badInput(err error) string {
	if errors.Is(err, game.ErrInvalidWord) {
		return "invalid_word"
	}
	return "bad_json"
}
