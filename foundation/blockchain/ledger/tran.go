package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Tx is an immutable value transfer record between two parties. The
// sender and recipient are opaque labels, not authenticated identities.
type Tx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// NewTx constructs a transaction. The amount can arrive off the wire as
// a JSON number or a numeric string; anything that can't be coerced to
// a float is rejected.
func NewTx(sender string, recipient string, amount any) (Tx, error) {
	value, err := toAmount(amount)
	if err != nil {
		return Tx{}, err
	}

	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    value,
	}

	return tx, nil
}

// toAmount coerces the supported wire representations of an amount into
// a float64.
func toAmount(amount any) (float64, error) {
	switch v := amount.(type) {
	case float64:
		return v, nil

	case float32:
		return float64(v), nil

	case int:
		return float64(v), nil

	case int64:
		return float64(v), nil

	case uint:
		return float64(v), nil

	case uint64:
		return float64(v), nil

	case json.Number:
		value, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("amount %q: %w", v.String(), ErrInvalidAmount)
		}
		return value, nil

	case string:
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("amount %q: %w", v, ErrInvalidAmount)
		}
		return value, nil
	}

	return 0, fmt.Errorf("amount %v: %w", amount, ErrInvalidAmount)
}
