// Package state is the core API for the node. It wires the ledger, the
// set of known peers and the node identity together and implements the
// business rules for mining and conflict resolution.
package state

import (
	"github.com/nprav/blockchain/foundation/blockchain/ledger"
	"github.com/nprav/blockchain/foundation/blockchain/peer"
	"github.com/nprav/blockchain/foundation/blockchain/pow"
)

// EventHandler defines a function that is called when events occur in
// the processing of the node.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented
// by any package providing support for background peer and chain sync
// operations.
type Worker interface {
	Shutdown()
	SignalPeerUpdates()
}

// =============================================================================

// Config represents the configuration required to start the node.
type Config struct {
	MinerAddress string
	Host         string
	Verifier     pow.Verifier
	KnownPeers   *peer.Set
	EvHandler    EventHandler
}

// State manages the blockchain node.
type State struct {
	minerAddress string
	host         string
	evHandler    EventHandler

	knownPeers *peer.Set
	ledger     *ledger.Ledger

	// Worker is not set here. The call to worker.Run assigns itself
	// and starts the background operations for the node.
	Worker Worker
}

// New constructs a new node state for ledger management.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	return &State{
		minerAddress: cfg.MinerAddress,
		host:         cfg.Host,
		evHandler:    ev,

		knownPeers: cfg.KnownPeers,
		ledger:     ledger.New(cfg.Verifier),
	}
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// RetrieveHost returns a copy of the host information.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveMinerAddress returns the node's globally unique miner
// address. It is generated once at process start and credited on every
// mining reward.
func (s *State) RetrieveMinerAddress() string {
	return s.minerAddress
}

// RetrieveLatestBlock returns the current last block on the chain.
func (s *State) RetrieveLatestBlock() ledger.Block {
	return s.ledger.LastBlock()
}

// RetrieveChain returns a copy of the full block sequence.
func (s *State) RetrieveChain() []ledger.Block {
	return s.ledger.Chain()
}

// RetrieveChainLength returns the number of blocks on the chain.
func (s *State) RetrieveChainLength() int {
	return s.ledger.Length()
}

// RetrievePending returns the transactions not yet mined into a block.
func (s *State) RetrievePending() []ledger.Tx {
	return s.ledger.Pending()
}

// RetrieveKnownPeers retrieves a copy of the known peer list without
// this node.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}

// AddKnownPeer provides the ability to add a new peer to the known
// peer list. It reports whether the peer was new.
func (s *State) AddKnownPeer(peer peer.Peer) bool {
	return s.knownPeers.Add(peer)
}

// RemoveKnownPeer provides the ability to remove a peer from the known
// peer list.
func (s *State) RemoveKnownPeer(peer peer.Peer) {
	s.knownPeers.Remove(peer)
}
