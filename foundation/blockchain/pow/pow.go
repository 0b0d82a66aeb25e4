// Package pow implements the proof of work puzzle that secures the
// blockchain. The puzzle is pluggable so the mining difficulty rules
// can be swapped without touching the ledger.
package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// VerifyFunc is the predicate for a proof of work puzzle. It reports
// whether proof is a valid solution given the previous block's proof.
type VerifyFunc func(lastProof uint64, proof uint64) bool

// Verifier represents a puzzle that can be solved and verified. Two
// ledgers can only be compared for conflict resolution when they play
// by the same rules, and function values are not comparable in Go, so
// each verifier carries a tag and equality is defined over the tag.
type Verifier struct {
	tag    string
	verify VerifyFunc
}

// NewVerifier constructs a verifier from a tag and a predicate.
func NewVerifier(tag string, verify VerifyFunc) Verifier {
	return Verifier{
		tag:    tag,
		verify: verify,
	}
}

// Tag returns the identifier for the puzzle this verifier implements.
func (v Verifier) Tag() string {
	return v.tag
}

// Equal reports whether two verifiers implement the same puzzle.
func (v Verifier) Equal(v2 Verifier) bool {
	return v.tag == v2.tag
}

// Verify reports whether proof solves the puzzle against lastProof.
func (v Verifier) Verify(lastProof uint64, proof uint64) bool {
	if v.verify == nil {
		return false
	}

	return v.verify(lastProof, proof)
}

// Solve searches for the smallest proof that solves the puzzle against
// lastProof. The search starts at zero and is fully deterministic. It
// is CPU bound and unbounded when no solution exists, so the context
// provides the only way out for the caller.
func (v Verifier) Solve(ctx context.Context, lastProof uint64) (uint64, error) {
	for proof := uint64(0); ; proof++ {

		// Did the caller get tired of waiting.
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		if v.Verify(lastProof, proof) {
			return proof, nil
		}
	}
}

// =============================================================================

// FourZeros returns the default puzzle: the sha256 hex digest of the
// two proofs written as concatenated decimal strings must start with
// four zeros.
func FourZeros() Verifier {
	return NewVerifier("four-zeros", fourZeros)
}

func fourZeros(lastProof uint64, proof uint64) bool {
	guess := fmt.Sprintf("%d%d", lastProof, proof)
	hash := sha256.Sum256([]byte(guess))

	return hex.EncodeToString(hash[:])[:4] == "0000"
}
