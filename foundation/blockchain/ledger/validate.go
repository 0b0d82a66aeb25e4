package ledger

import (
	"github.com/nprav/blockchain/foundation/blockchain/pow"
)

// Valid reports whether a block sequence holds the chain invariants:
// every block links to the hash of its predecessor, every adjacent pair
// of proofs satisfies the puzzle, and indexes run dense from zero. The
// check is pure and re-runnable; a lone genesis block is a valid chain,
// an empty sequence is not.
func Valid(chain []Block, verifier pow.Verifier) bool {
	if len(chain) == 0 {
		return false
	}

	// Confirm each block carries the hash of the previous block and a
	// proof that solves the puzzle against the previous proof.
	for i := 0; i < len(chain)-1; i++ {
		curr := chain[i]
		next := chain[i+1]

		if next.PrevHash == nil || *next.PrevHash != curr.Hash() {
			return false
		}

		if !verifier.Verify(curr.Proof, next.Proof) {
			return false
		}
	}

	// Confirm the index of each block matches its position.
	for i, block := range chain {
		if block.Index != uint64(i) {
			return false
		}
	}

	return true
}

// IsValid reports whether the ledger's own chain validates.
func (l *Ledger) IsValid() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Valid(l.chain, l.verifier)
}
