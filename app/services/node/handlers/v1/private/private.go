// Package private maintains the group of handlers for node to node
// access.
package private

import (
	"context"
	"net/http"

	"github.com/nprav/blockchain/business/web/errs"
	"github.com/nprav/blockchain/foundation/blockchain/peer"
	"github.com/nprav/blockchain/foundation/blockchain/state"
	"github.com/nprav/blockchain/foundation/validate"
	"github.com/nprav/blockchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status reports what this node knows: latest block, chain length and
// known peers. Peers use it to decide whether this chain is worth
// fetching.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock()

	status := peer.Status{
		LatestBlockHash: latest.Hash(),
		ChainLength:     h.State.RetrieveChainLength(),
		KnownPeers:      h.State.RetrieveKnownPeers(),
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// Chain returns the full serialized chain for replication.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveChain(), http.StatusOK)
}

// AddPeers registers a list of peer hosts with this node.
func (h Handlers) AddPeers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var hosts []string
	if err := web.Decode(r, &hosts); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(struct {
		Hosts []string `json:"hosts" validate:"required,min=1,dive,required"`
	}{Hosts: hosts}); err != nil {
		return err
	}

	var added int
	for _, host := range hosts {
		if h.State.AddKnownPeer(peer.New(host)) {
			h.Log.Infow("add peer", "traceid", v.TraceID, "host", host)
			added++
		}
	}

	resp := struct {
		Message    string      `json:"message"`
		Added      int         `json:"added"`
		KnownPeers []peer.Peer `json:"known_peers"`
	}{
		Message:    "peers registered",
		Added:      added,
		KnownPeers: h.State.RetrieveKnownPeers(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
