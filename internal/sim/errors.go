package sim

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/game"
)

// InvariantError reports a trial that did not end with the secret as the
// only survivor. It always points at a defect in scoring or filtering, never
// at bad input, and is not retried.
type InvariantError struct {
	Secret    game.Word
	Guess     game.Word // zero when the failure was found after the loop
	Feedback  game.Feedback
	Round     int
	Remaining int
	Reason    string
}

func (e *InvariantError) Error() string {
	if e.Guess.IsZero() {
		return fmt.Sprintf("invariant violated for secret %s after %d rounds: %s", e.Secret, e.Round, e.Reason)
	}
	return fmt.Sprintf("invariant violated for secret %s in round %d (guess %s, feedback %s, %d left): %s",
		e.Secret, e.Round, e.Guess, e.Feedback.Pattern(), e.Remaining, e.Reason)
}
