package game

// Consistent reports whether candidate could be the secret given that
// guess was scored as fb.
//
// Guesses without repeated letters take a position-by-position fast path.
// Repeated letters need the whole word: a miss on one occurrence does not
// mean the letter is absent.
func Consistent(candidate, guess Word, fb Feedback) bool {
	if hasDuplicate(guess) {
		return consistentDup(candidate, guess, fb)
	}
	return consistentNoDup(candidate, guess, fb)
}

// hasDuplicate reports whether any letter occurs more than once in w.
func hasDuplicate(w Word) bool {
	var seen [26]bool
	for _, c := range w {
		if seen[idx(c)] {
			return true
		}
		seen[idx(c)] = true
	}
	return false
}

func consistentNoDup(candidate, guess Word, fb Feedback) bool {
	inCand := letterCounts(candidate)
	for i := 0; i < WordLen; i++ {
		present := inCand[idx(guess[i])] > 0
		same := candidate[i] == guess[i]
		switch fb[i] {
		case MarkHit:
			if !same {
				return false
			}
		case MarkMiss:
			if present {
				return false
			}
		case MarkPresent:
			if same || !present {
				return false
			}
		}
	}
	return true
}

func consistentDup(candidate, guess Word, fb Feedback) bool {
	inCand := letterCounts(candidate)
	inGuess := letterCounts(guess)

	// claimed[j] counts hit or present marks reported for letter j.
	var claimed [26]int
	for i := 0; i < WordLen; i++ {
		j := idx(guess[i])
		same := candidate[i] == guess[i]
		switch fb[i] {
		case MarkHit:
			if !same {
				return false
			}
			claimed[j]++
		case MarkPresent:
			if same || inCand[j] == 0 {
				return false
			}
			claimed[j]++
		case MarkMiss:
			if same {
				return false
			}
			if inGuess[j] == 1 && inCand[j] > 0 {
				return false
			}
		}
	}

	// A repeated letter guessed at least as often as the candidate holds it
	// must have every candidate occurrence reported.
	for j := 0; j < 26; j++ {
		g, c := inGuess[j], inCand[j]
		if g > 1 && g >= c && claimed[j] < c {
			return false
		}
	}
	return true
}
