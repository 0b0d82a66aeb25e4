package state

import (
	"github.com/nprav/blockchain/foundation/blockchain/ledger"
)

// ResolveWithPeerChains runs conflict resolution over a set of raw
// chains received from peers. Each chain is first imported through the
// fail closed constructor; a candidate that does not validate is
// reported and discarded without affecting the others. It reports
// whether the local chain was replaced.
func (s *State) ResolveWithPeerChains(chains [][]ledger.Block) bool {
	s.evHandler("state: ResolveWithPeerChains: started: candidates[%d]", len(chains))
	defer s.evHandler("state: ResolveWithPeerChains: completed")

	candidates := make([]*ledger.Ledger, 0, len(chains))
	for i, chain := range chains {
		candidate, err := ledger.FromChain(chain, s.ledger.Verifier())
		if err != nil {
			s.evHandler("state: ResolveWithPeerChains: candidate[%d]: rejected: %s", i, err)
			continue
		}
		candidates = append(candidates, candidate)
	}

	replaced := s.ledger.Resolve(candidates)
	if replaced {
		s.evHandler("state: ResolveWithPeerChains: chain replaced: length[%d]", s.ledger.Length())
	}

	return replaced
}

// Resolve fetches the chain from every known peer and runs conflict
// resolution over the results. A peer that cannot be reached is
// skipped; its failure never blocks evaluating the others.
func (s *State) Resolve() bool {
	s.evHandler("state: Resolve: started")
	defer s.evHandler("state: Resolve: completed")

	var chains [][]ledger.Block
	for _, pr := range s.RetrieveKnownPeers() {
		chain, err := s.NetRequestPeerChain(pr)
		if err != nil {
			s.evHandler("state: Resolve: peer[%s]: ERROR: %s", pr.Host, err)
			continue
		}
		chains = append(chains, chain)
	}

	return s.ResolveWithPeerChains(chains)
}
