// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nprav/blockchain/business/web/errs"
	"github.com/nprav/blockchain/foundation/blockchain/ledger"
	"github.com/nprav/blockchain/foundation/blockchain/state"
	"github.com/nprav/blockchain/foundation/events"
	"github.com/nprav/blockchain/foundation/validate"
	"github.com/nprav/blockchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of public endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new transaction to the pending buffer.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var newTx tx
	if err := web.Decode(r, &newTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(newTx); err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "from", newTx.Sender, "to", newTx.Recipient)

	index, err := h.State.SubmitTransaction(newTx.Sender, newTx.Recipient, newTx.Amount)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	resp := txResult{
		Message: fmt.Sprintf("transaction will be added to block %d", index),
		Block:   index,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mine solves the puzzle, credits this node with the mining reward and
// mines all pending transactions into a new block. The request context
// cancels the solve loop if the client goes away.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.MineNextBlock(ctx)
	if err != nil {
		var ipe *ledger.InvalidProofError
		if errors.As(err, &ipe) {
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return err
	}

	resp := mineResult{
		Message:      fmt.Sprintf("block %d mined", block.Index),
		Index:        block.Index,
		Transactions: block.Transactions,
		Reward:       state.MiningReward,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Chain returns the full chain and its length.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain := h.State.RetrieveChain()

	resp := chainResult{
		Chain:  chain,
		Length: len(chain),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Pending returns the transactions not yet mined into a block.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrievePending(), http.StatusOK)
}

// Resolve runs conflict resolution against every known peer and
// reports whether the chain was replaced.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced := h.State.Resolve()

	msg := "chain is authoritative"
	if replaced {
		msg = "chain was replaced"
	}

	resp := resolveResult{
		Message:  msg,
		Replaced: replaced,
		Chain:    h.State.RetrieveChain(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
