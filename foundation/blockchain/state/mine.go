package state

import (
	"context"

	"github.com/nprav/blockchain/foundation/blockchain/ledger"
)

// MiningReward is the amount credited to the miner of each new block.
const MiningReward = 1.0

// RewardSender is the sender label carried by mining reward
// transactions. There is no account behind it.
const RewardSender = "0"

// SubmitTransaction buffers a new transaction on the ledger and
// returns the index of the block expected to contain it. The index is
// advisory; if other blocks are mined first the transaction lands in a
// later block.
func (s *State) SubmitTransaction(sender string, recipient string, amount any) (uint64, error) {
	s.evHandler("state: SubmitTransaction: started: from[%s] to[%s]", sender, recipient)
	defer s.evHandler("state: SubmitTransaction: completed")

	return s.ledger.Submit(sender, recipient, amount)
}

// MineNextBlock solves the puzzle against the latest block, credits
// this node with the mining reward, and mines every pending
// transaction into a new block. The solve loop is CPU bound and
// unbounded, so the context is the caller's cancellation hook.
func (s *State) MineNextBlock(ctx context.Context) (ledger.Block, error) {
	s.evHandler("state: MineNextBlock: MINING: solve puzzle")

	proof, err := s.ledger.Verifier().Solve(ctx, s.ledger.LastBlock().Proof)
	if err != nil {
		return ledger.Block{}, err
	}

	s.evHandler("state: MineNextBlock: MINING: proof solved: %d", proof)

	// Add the reward for this miner to the pending transactions so it
	// is included in the block being mined.
	if _, err := s.ledger.Submit(RewardSender, s.minerAddress, MiningReward); err != nil {
		return ledger.Block{}, err
	}

	// The proof can go stale if the chain was replaced while solving.
	// Mine rejects it with InvalidProofError and the caller solves
	// again.
	block, err := s.ledger.Mine(proof)
	if err != nil {
		return ledger.Block{}, err
	}

	s.evHandler("state: MineNextBlock: MINING: mined block[%d]: txs[%d]", block.Index, len(block.Transactions))

	return block, nil
}
