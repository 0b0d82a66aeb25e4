package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/nprav/blockchain/foundation/blockchain/ledger"
	"github.com/nprav/blockchain/foundation/blockchain/pow"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// easyVerifier returns a cheap deterministic puzzle so tests don't burn
// time hashing.
func easyVerifier() pow.Verifier {
	return pow.NewVerifier("mod-seven", func(lastProof uint64, proof uint64) bool {
		return proof != 0 && proof%7 == 0
	})
}

// mineNext solves the ledger's puzzle for real and mines the next
// block.
func mineNext(t *testing.T, l *ledger.Ledger) ledger.Block {
	t.Helper()

	proof, err := l.Verifier().Solve(context.Background(), l.LastBlock().Proof)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to solve the puzzle: %v", failed, err)
	}

	block, err := l.Mine(proof)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
	}

	return block
}

// =============================================================================

func Test_SubmitAndMine(t *testing.T) {
	t.Log("Given the need to buffer transactions and mine them into a block.")
	{
		t.Logf("\tTest 0:\tWhen submitting two transactions and mining.")
		{
			l := ledger.New(easyVerifier())

			index, err := l.Submit("ana", "bob", 3)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit a transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to submit a transaction.", success)

			if index != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould report next block index 1, got %d.", failed, index)
			}
			t.Logf("\t%s\tTest 0:\tShould report next block index 1.", success)

			// Numeric strings must coerce to floats.
			if _, err := l.Submit("bob", "cam", "39"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould accept a numeric string amount: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould accept a numeric string amount.", success)

			block := mineNext(t, l)

			if block.Index != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould mine block index 1, got %d.", failed, block.Index)
			}
			t.Logf("\t%s\tTest 0:\tShould mine block index 1.", success)

			exp := []ledger.Tx{
				{Sender: "ana", Recipient: "bob", Amount: 3},
				{Sender: "bob", Recipient: "cam", Amount: 39},
			}
			if !reflect.DeepEqual(block.Transactions, exp) {
				t.Logf("\t\tTest 0:\tgot: %+v", block.Transactions)
				t.Logf("\t\tTest 0:\texp: %+v", exp)
				t.Fatalf("\t%s\tTest 0:\tShould carry both transactions in submission order.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry both transactions in submission order.", success)

			if len(l.Pending()) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould clear the pending buffer after mining.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould clear the pending buffer after mining.", success)

			if !l.IsValid() {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain valid.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain valid.", success)
		}
	}
}

func Test_SubmitValidation(t *testing.T) {
	t.Log("Given the need to reject malformed transaction amounts.")
	{
		t.Logf("\tTest 0:\tWhen submitting a non numeric amount.")
		{
			l := ledger.New(easyVerifier())

			if _, err := l.Submit("ana", "bob", "not-a-number"); !errors.Is(err, ledger.ErrInvalidAmount) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrInvalidAmount, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrInvalidAmount.", success)

			if _, err := l.Submit("ana", "bob", nil); !errors.Is(err, ledger.ErrInvalidAmount) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrInvalidAmount for a missing amount, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrInvalidAmount for a missing amount.", success)

			if len(l.Pending()) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould not buffer a rejected transaction.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not buffer a rejected transaction.", success)
		}
	}
}

func Test_MineInvalidProof(t *testing.T) {
	t.Log("Given the need to reject mining with a bad proof.")
	{
		t.Logf("\tTest 0:\tWhen mining with a proof that fails the puzzle.")
		{
			l := ledger.New(easyVerifier())

			// Find a proof the verifier rejects against the genesis
			// proof.
			var bad uint64
			for p := uint64(0); ; p++ {
				if !l.Verifier().Verify(l.LastBlock().Proof, p) {
					bad = p
					break
				}
			}

			_, err := l.Mine(bad)

			var ipe *ledger.InvalidProofError
			if !errors.As(err, &ipe) {
				t.Fatalf("\t%s\tTest 0:\tShould get InvalidProofError, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get InvalidProofError.", success)

			if ipe.LastProof != l.LastBlock().Proof || ipe.Proof != bad {
				t.Fatalf("\t%s\tTest 0:\tShould carry both proofs for diagnostics.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry both proofs for diagnostics.", success)

			if l.Length() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain untouched.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain untouched.", success)
		}
	}
}

func Test_BlockHash(t *testing.T) {
	t.Log("Given the need for block hashes to be pure functions of content.")
	{
		t.Logf("\tTest 0:\tWhen hashing blocks with equal and differing contents.")
		{
			prev := "aa"
			txs := []ledger.Tx{
				{Sender: "ana", Recipient: "bob", Amount: 1},
				{Sender: "bob", Recipient: "cam", Amount: 2},
			}

			b1 := ledger.Block{Index: 1, Timestamp: 1624600000.25, Proof: 35293, PrevHash: &prev, Transactions: txs}
			b2 := ledger.Block{Index: 1, Timestamp: 1624600000.25, Proof: 35293, PrevHash: &prev, Transactions: txs}

			if b1.Hash() != b2.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould hash identical blocks identically.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould hash identical blocks identically.", success)

			b3 := b1
			b3.Proof++
			if b3.Hash() == b1.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould change the hash when a field changes.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould change the hash when a field changes.", success)

			b4 := b1
			b4.Transactions = []ledger.Tx{txs[1], txs[0]}
			if b4.Hash() == b1.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould change the hash when transactions reorder.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould change the hash when transactions reorder.", success)
		}
	}
}

func Test_ChainRoundTrip(t *testing.T) {
	t.Log("Given the need to serialize a chain and import it back.")
	{
		t.Logf("\tTest 0:\tWhen round tripping a mined chain through JSON.")
		{
			l := ledger.New(pow.FourZeros())
			l.Submit("ana", "bob", 3)
			mineNext(t, l)
			mineNext(t, l)

			data, err := json.Marshal(l.Chain())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to marshal the chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to marshal the chain.", success)

			var chain []ledger.Block
			if err := json.Unmarshal(data, &chain); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to unmarshal the chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to unmarshal the chain.", success)

			l2, err := ledger.FromChain(chain, pow.FourZeros())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to import the chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to import the chain.", success)

			if !l2.IsValid() {
				t.Fatalf("\t%s\tTest 0:\tShould import a valid ledger.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould import a valid ledger.", success)

			if !reflect.DeepEqual(l.Chain(), l2.Chain()) {
				t.Fatalf("\t%s\tTest 0:\tShould import the chain block for block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould import the chain block for block.", success)
		}
	}
}

func Test_FromChainFailsClosed(t *testing.T) {
	t.Log("Given the need to reject invalid imported chains.")
	{
		t.Logf("\tTest 0:\tWhen importing corrupted chains.")
		{
			l := ledger.New(easyVerifier())
			l.Submit("ana", "bob", 3)
			mineNext(t, l)

			// An index that skips breaks invariant 1.
			chain := l.Chain()
			chain[len(chain)-1].Index = 0
			if _, err := ledger.FromChain(chain, easyVerifier()); !errors.Is(err, ledger.ErrInvalidChain) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a chain with a wrong index, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a chain with a wrong index.", success)

			// A duplicated last block breaks the previous hash linkage.
			chain = l.Chain()
			chain = append(chain, chain[len(chain)-1])
			if _, err := ledger.FromChain(chain, easyVerifier()); !errors.Is(err, ledger.ErrInvalidChain) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a chain with a duplicated block, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a chain with a duplicated block.", success)

			// An empty sequence has no genesis block.
			if _, err := ledger.FromChain(nil, easyVerifier()); !errors.Is(err, ledger.ErrInvalidChain) {
				t.Fatalf("\t%s\tTest 0:\tShould reject an empty chain, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject an empty chain.", success)
		}
	}
}

func Test_Resolve(t *testing.T) {
	t.Log("Given the need to adopt the longest valid peer chain.")
	{
		t.Logf("\tTest 0:\tWhen candidates of different lengths compete.")
		{
			l1 := ledger.New(easyVerifier())

			l2 := ledger.New(easyVerifier())
			mineNext(t, l2)
			mineNext(t, l2)

			l3 := ledger.New(easyVerifier())
			mineNext(t, l3)

			if !l1.Resolve([]*ledger.Ledger{l2, l3}) {
				t.Fatalf("\t%s\tTest 0:\tShould replace the chain with a longer valid candidate.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould replace the chain with a longer valid candidate.", success)

			if !reflect.DeepEqual(l1.Chain(), l2.Chain()) {
				t.Fatalf("\t%s\tTest 0:\tShould adopt the longest candidate's chain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould adopt the longest candidate's chain.", success)

			if !l1.IsValid() {
				t.Fatalf("\t%s\tTest 0:\tShould remain valid after replacement.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould remain valid after replacement.", success)
		}

		t.Logf("\tTest 1:\tWhen no candidate is strictly longer.")
		{
			l1 := ledger.New(easyVerifier())
			mineNext(t, l1)

			same := ledger.New(easyVerifier())
			mineNext(t, same)

			if l1.Resolve([]*ledger.Ledger{same}) {
				t.Fatalf("\t%s\tTest 1:\tShould keep the local chain against equal length candidates.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould keep the local chain against equal length candidates.", success)
		}

		t.Logf("\tTest 2:\tWhen a longer candidate plays by different rules.")
		{
			l1 := ledger.New(easyVerifier())

			other := ledger.New(pow.NewVerifier("always", func(lastProof uint64, proof uint64) bool {
				return true
			}))
			mineNext(t, other)
			mineNext(t, other)

			if l1.Resolve([]*ledger.Ledger{other}) {
				t.Fatalf("\t%s\tTest 2:\tShould ignore candidates with a different verifier.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould ignore candidates with a different verifier.", success)
		}
	}
}

func Test_PendingSurvivesResolve(t *testing.T) {
	t.Log("Given the need to keep local pending transactions across a chain swap.")
	{
		t.Logf("\tTest 0:\tWhen resolve replaces the chain.")
		{
			l1 := ledger.New(easyVerifier())
			l1.Submit("ana", "bob", 3)

			l2 := ledger.New(easyVerifier())
			l2.Submit("cam", "dan", 5)
			mineNext(t, l2)

			if !l1.Resolve([]*ledger.Ledger{l2}) {
				t.Fatalf("\t%s\tTest 0:\tShould replace the chain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould replace the chain.", success)

			pending := l1.Pending()
			if len(pending) != 1 || pending[0].Sender != "ana" {
				t.Fatalf("\t%s\tTest 0:\tShould keep the local pending buffer untouched.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould keep the local pending buffer untouched.", success)
		}
	}
}
