package ledger

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned when a transaction amount cannot be
// coerced to a number. The submission is rejected outright, there is
// nothing to retry.
var ErrInvalidAmount = errors.New("amount is not numeric")

// ErrInvalidChain is returned when an imported chain fails validation.
// The import refuses to install a partially valid chain.
var ErrInvalidChain = errors.New("chain failed validation")

// InvalidProofError is returned when mining is attempted with a proof
// that does not solve the puzzle against the last block. It carries
// both proofs for diagnostics. The caller must solve again.
type InvalidProofError struct {
	LastProof uint64
	Proof     uint64
}

// Error implements the error interface.
func (e *InvalidProofError) Error() string {
	return fmt.Sprintf("invalid proof: verify(%d, %d) failed", e.LastProof, e.Proof)
}
