// internal/game/engine.go
//
// Feedback engine: scores a guess against a secret.
//
// Letters that appear once in the guess are scored position by position.
// Letters repeated in the guess share a budget equal to their count in the
// secret; exact positions claim the budget first, then remaining occurrences
// are marked present left to right until the budget runs out.
package game

// Score computes the feedback for guess against secret.
// The result depends only on its arguments.
func Score(secret, guess Word) Feedback {
	var out Feedback
	inSecret := letterCounts(secret)
	inGuess := letterCounts(guess)

	// Pass 1: letters unique within the guess.
	for i := 0; i < WordLen; i++ {
		c := guess[i]
		if inGuess[idx(c)] > 1 {
			continue
		}
		switch {
		case secret[i] == c:
			out[i] = MarkHit
		case inSecret[idx(c)] > 0:
			out[i] = MarkPresent
		}
	}

	// Pass 2: repeated guess letters draw on the secret's count.
	// budget[j] is what is left for letter j after exact matches.
	var budget [26]int
	for j := 0; j < 26; j++ {
		if inGuess[j] > 1 {
			budget[j] = inSecret[j]
		}
	}
	for i := 0; i < WordLen; i++ {
		j := idx(guess[i])
		if inGuess[j] > 1 && budget[j] > 0 && secret[i] == guess[i] {
			out[i] = MarkHit
			budget[j]--
		}
	}
	for i := 0; i < WordLen; i++ {
		j := idx(guess[i])
		if inGuess[j] > 1 && budget[j] > 0 && secret[i] != guess[i] {
			out[i] = MarkPresent
			budget[j]--
		}
	}
	return out
}
