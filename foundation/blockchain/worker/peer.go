package worker

import (
	"github.com/nprav/blockchain/foundation/blockchain/peer"
)

// peerOperations handles peer list refreshes and chain sync on a
// schedule or on demand.
func (w *Worker) peerOperations() {
	w.evHandler("worker: peerOperations: G started")
	defer w.evHandler("worker: peerOperations: G completed")

	for {
		select {
		case <-w.peerUpdates:
			if !w.isShutdown() {
				w.runPeersOperation()
			}
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runPeersOperation()
			}
		case <-w.shut:
			w.evHandler("worker: peerOperations: received shut signal")
			return
		}
	}
}

// runPeersOperation updates the peer list and syncs the chain with any
// peer that reports a longer one.
func (w *Worker) runPeersOperation() {
	w.evHandler("worker: runPeersOperation: started")
	defer w.evHandler("worker: runPeersOperation: completed")

	var longerPeer bool

	for _, pr := range w.state.RetrieveKnownPeers() {

		// Retrieve the status of this peer. A peer that can't be
		// reached is dropped from the list; it can re-register later.
		peerStatus, err := w.state.NetRequestPeerStatus(pr)
		if err != nil {
			w.evHandler("worker: runPeersOperation: queryPeerStatus: %s: ERROR: %s", pr.Host, err)
			w.state.RemoveKnownPeer(pr)
			continue
		}

		// Add new peers to this node's list.
		w.addNewPeers(peerStatus.KnownPeers)

		if peerStatus.ChainLength > w.state.RetrieveChainLength() {
			w.evHandler("worker: runPeersOperation: peer[%s] reports longer chain: length[%d]", pr.Host, peerStatus.ChainLength)
			longerPeer = true
		}
	}

	// Let the latest peers know this node is available to participate.
	for _, pr := range w.state.RetrieveKnownPeers() {
		if err := w.state.NetRequestAddPeer(pr); err != nil {
			w.evHandler("worker: runPeersOperation: addPeer: %s: ERROR: %s", pr.Host, err)
		}
	}

	// Somebody claims to be ahead of us. Run conflict resolution over
	// everything the network has to offer.
	if longerPeer {
		if w.state.Resolve() {
			w.evHandler("worker: runPeersOperation: chain replaced by longer peer chain")
		}
	}
}

// addNewPeers takes a list of known peers and makes sure they are
// included in this node's list of known peers.
func (w *Worker) addNewPeers(knownPeers []peer.Peer) {
	w.evHandler("worker: addNewPeers: started")
	defer w.evHandler("worker: addNewPeers: completed")

	for _, pr := range knownPeers {

		// Don't add this running node to the known peer list.
		if pr.Match(w.state.RetrieveHost()) {
			continue
		}

		if w.state.AddKnownPeer(pr) {
			w.evHandler("worker: addNewPeers: adding peer-node %s", pr.Host)
		}
	}
}
