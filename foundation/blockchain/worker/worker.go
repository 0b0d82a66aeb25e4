// Package worker implements the background operations the node needs
// to keep itself part of the network: refreshing the known peer list
// and syncing the chain with longer peers.
package worker

import (
	"sync"
	"time"

	"github.com/nprav/blockchain/foundation/blockchain/state"
)

// peerUpdateInterval represents the interval for refreshing the known
// peer list and checking peers for a longer chain.
const peerUpdateInterval = time.Minute

// Worker manages the background workflows for the node.
type Worker struct {
	state       *state.State
	wg          sync.WaitGroup
	ticker      *time.Ticker
	shut        chan struct{}
	peerUpdates chan bool
	evHandler   state.EventHandler
}

// Run creates a worker and starts the background operations. The
// worker registers itself with the state.
func Run(st *state.State, evHandler state.EventHandler) {
	w := Worker{
		state:       st,
		ticker:      time.NewTicker(peerUpdateInterval),
		shut:        make(chan struct{}),
		peerUpdates: make(chan bool, 1),
		evHandler:   evHandler,
	}

	// Register this worker with the state so the rest of the node can
	// signal it.
	st.Worker = &w

	// Sync with the network before accepting any work.
	w.Sync()

	// Load the set of operations needed to run.
	operations := []func(){
		w.peerOperations,
	}

	// Set waitgroup to match the number of G's needed for the set of
	// operations we have.
	g := len(operations)
	w.wg.Add(g)

	// Don't return until all the G's are up and running.
	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}
}

// Shutdown terminates the goroutines performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.ticker.Stop()

	close(w.shut)
	w.wg.Wait()
}

// SignalPeerUpdates starts a peer operations cycle outside of the
// ticker. The signal is dropped if a cycle is already queued.
func (w *Worker) SignalPeerUpdates() {
	select {
	case w.peerUpdates <- true:
	default:
	}
	w.evHandler("worker: SignalPeerUpdates: peer updates signaled")
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
