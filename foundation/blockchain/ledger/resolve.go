package ledger

// Resolve applies the longest valid chain rule against a set of
// candidate ledgers from peers. A candidate only qualifies when it
// plays by the same puzzle, is strictly longer than the local chain,
// and independently validates. If any candidate qualifies the local
// chain is replaced wholesale by the longest one and Resolve reports
// true; the local pending buffer is never touched and the candidates'
// pending buffers are never adopted.
//
// When several qualifying candidates tie on length the first one in
// input order wins. That makes the outcome deterministic for a fixed
// candidate ordering and otherwise unspecified.
func (l *Ledger) Resolve(candidates []*Ledger) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	var winner []Block
	best := len(l.chain)

	for _, candidate := range candidates {
		if candidate == nil || candidate == l {
			continue
		}

		if !candidate.Verifier().Equal(l.verifier) {
			continue
		}

		chain := candidate.Chain()
		if len(chain) <= best {
			continue
		}

		if !Valid(chain, l.verifier) {
			continue
		}

		winner = chain
		best = len(chain)
	}

	if winner == nil {
		return false
	}

	l.chain = winner

	return true
}
