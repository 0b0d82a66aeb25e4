package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Block is one immutable link in the chain. The field declaration order
// is the canonical serialization order: it fixes the JSON layout used
// both for hashing and for the wire, so reordering fields here changes
// every block hash. The previous hash and the transaction batch are
// absent on the genesis block and marshal as JSON null.
type Block struct {
	Index        uint64  `json:"index"`
	Timestamp    float64 `json:"timestamp"`
	Proof        uint64  `json:"proof"`
	PrevHash     *string `json:"previous_hash"`
	Transactions []Tx    `json:"transactions"`
}

// Hash returns the unique hash for the block by marshaling the block
// into its canonical JSON form and performing a sha256 operation. The
// hash is a pure function of the block's contents, transaction order
// included.
func (b Block) Hash() string {

	// A Block contains nothing json.Marshal can reject.
	data, _ := json.Marshal(b)

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// timestamp converts a time into the floating point seconds carried by
// a block.
func timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
