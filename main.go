package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var inv *sim.InvariantError
		if errors.As(err, &inv) {
			log.Fatal().Err(err).Str("secret", inv.Secret.String()).Msg("simulation aborted: scoring or filtering defect")
		}
		log.Fatal().Err(err).Msg("wordle-sim failed")
	}
}
