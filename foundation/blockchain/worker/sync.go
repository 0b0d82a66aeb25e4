package worker

// Sync brings this node up to date with the network before it starts
// accepting work: learn everybody's peers and adopt the longest valid
// chain out there.
func (w *Worker) Sync() {
	w.evHandler("worker: sync: started")
	defer w.evHandler("worker: sync: completed")

	for _, pr := range w.state.RetrieveKnownPeers() {
		peerStatus, err := w.state.NetRequestPeerStatus(pr)
		if err != nil {
			w.evHandler("worker: sync: queryPeerStatus: %s: ERROR: %s", pr.Host, err)
			continue
		}

		w.addNewPeers(peerStatus.KnownPeers)
	}

	if w.state.Resolve() {
		w.evHandler("worker: sync: adopted longer chain from network")
	}
}
