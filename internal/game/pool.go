package game

// Pool is the set of words still consistent with every feedback seen so
// far. It only ever shrinks.
type Pool struct {
	words []Word
}

// NewPool returns a pool holding a private copy of words.
func NewPool(words []Word) *Pool {
	return &Pool{words: append([]Word(nil), words...)}
}

// Len returns the number of surviving words.
func (p *Pool) Len() int { return len(p.words) }

// At returns the i-th surviving word.
func (p *Pool) At(i int) Word { return p.words[i] }

// Words returns the surviving words. The slice is owned by the pool.
func (p *Pool) Words() []Word { return p.words }

// Retain drops every word that could not be the secret given that guess
// was scored as fb. Filtering is done in place.
func (p *Pool) Retain(guess Word, fb Feedback) {
	kept := p.words[:0]
	for _, w := range p.words {
		if Consistent(w, guess, fb) {
			kept = append(kept, w)
		}
	}
	p.words = kept
}
