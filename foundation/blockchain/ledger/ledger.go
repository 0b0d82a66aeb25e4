// Package ledger implements the append-only hash-linked chain of
// blocks, the buffer of transactions waiting to be mined, and the
// longest valid chain rule used to reconcile independent replicas.
package ledger

import (
	"sync"
	"time"

	"github.com/nprav/blockchain/foundation/blockchain/pow"
)

// genesisProof is the sentinel proof carried by every genesis block.
// Genesis is never verified against a predecessor so any fixed value
// works, but it is part of the serialized form and must not change.
const genesisProof = 100

// Ledger owns the chain and the pending transaction buffer. A single
// writer lock serializes Submit, Mine and Resolve so the pending
// snapshot taken while mining is atomic: nothing submitted after the
// snapshot leaks into the block and nothing in the snapshot is lost.
type Ledger struct {
	mu       sync.RWMutex
	verifier pow.Verifier
	chain    []Block
	pending  []Tx
}

// New constructs a ledger containing only the genesis block. The
// verifier is fixed for the life of the ledger and is used both for
// mining and for validating imported chains.
func New(verifier pow.Verifier) *Ledger {
	genesis := Block{
		Index:     0,
		Timestamp: timestamp(time.Now()),
		Proof:     genesisProof,
	}

	return &Ledger{
		verifier: verifier,
		chain:    []Block{genesis},
	}
}

// FromChain rebuilds a ledger from a serialized block sequence, such as
// one received from a peer. The import fails closed: a sequence that
// does not validate is rejected with ErrInvalidChain rather than
// installed.
func FromChain(chain []Block, verifier pow.Verifier) (*Ledger, error) {
	if !Valid(chain, verifier) {
		return nil, ErrInvalidChain
	}

	l := Ledger{
		verifier: verifier,
		chain:    make([]Block, len(chain)),
	}
	copy(l.chain, chain)

	return &l, nil
}

// Verifier returns the puzzle this ledger mines and validates with.
func (l *Ledger) Verifier() pow.Verifier {
	return l.verifier
}

// LastBlock returns the most recently mined block.
func (l *Ledger) LastBlock() Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.chain[len(l.chain)-1]
}

// Chain returns a copy of the block sequence for reading or
// serialization. Blocks are immutable so sharing their contents is
// safe.
func (l *Ledger) Chain() []Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	chain := make([]Block, len(l.chain))
	copy(chain, l.chain)

	return chain
}

// Length returns the number of blocks in the chain, genesis included.
func (l *Ledger) Length() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.chain)
}

// Pending returns a copy of the transactions not yet mined into a
// block, in arrival order.
func (l *Ledger) Pending() []Tx {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pending := make([]Tx, len(l.pending))
	copy(pending, l.pending)

	return pending
}

// Submit buffers a new transaction and returns the index of the block
// expected to contain it. The index is advisory: it is the index the
// next mined block will take, and more transactions submitted before
// that block is mined land in the same block.
func (l *Ledger) Submit(sender string, recipient string, amount any) (uint64, error) {
	tx, err := NewTx(sender, recipient, amount)
	if err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, tx)

	return uint64(len(l.chain)), nil
}

// Mine appends a new block carrying every pending transaction in
// arrival order and clears the buffer. The supplied proof must solve
// the puzzle against the last block or the call fails with
// InvalidProofError and the ledger is left untouched.
func (l *Ledger) Mine(proof uint64) (Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	last := l.chain[len(l.chain)-1]
	if !l.verifier.Verify(last.Proof, proof) {
		return Block{}, &InvalidProofError{LastProof: last.Proof, Proof: proof}
	}

	txs := make([]Tx, len(l.pending))
	copy(txs, l.pending)

	prevHash := last.Hash()
	block := Block{
		Index:        uint64(len(l.chain)),
		Timestamp:    timestamp(time.Now()),
		Proof:        proof,
		PrevHash:     &prevHash,
		Transactions: txs,
	}

	l.chain = append(l.chain, block)
	l.pending = nil

	return block, nil
}
