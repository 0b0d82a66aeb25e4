package public

import (
	"github.com/nprav/blockchain/foundation/blockchain/ledger"
)

// tx is what a client submits. The amount is left untyped so the
// ledger can coerce JSON numbers and numeric strings alike.
type tx struct {
	Sender    string `json:"sender" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Amount    any    `json:"amount" validate:"required"`
}

type txResult struct {
	Message string `json:"message"`
	Block   uint64 `json:"block"`
}

type mineResult struct {
	Message      string      `json:"message"`
	Index        uint64      `json:"index"`
	Transactions []ledger.Tx `json:"transactions"`
	Reward       float64     `json:"reward"`
}

type chainResult struct {
	Chain  []ledger.Block `json:"chain"`
	Length int            `json:"length"`
}

type resolveResult struct {
	Message  string         `json:"message"`
	Replaced bool           `json:"replaced"`
	Chain    []ledger.Block `json:"chain"`
}
