package skstr

import "github.com/pfsalab/skstr/internal/kstrings"

// These methods let *Node and *PFSA satisfy internal/kstrings's
// GraphNode/Graph interfaces, so the enumerator and its cache can operate
// directly on the PFSA graph without that package importing this one back.

// StateID implements kstrings.GraphNode.
func (n *Node) StateID() int { return n.State }

// OutTransitions implements kstrings.GraphNode.
func (n *Node) OutTransitions() []kstrings.Transition {
	ts := make([]kstrings.Transition, len(n.Trans))
	for i, a := range n.Trans {
		ts[i] = kstrings.Transition{Target: a.Target, Sym: a.Sym, Freq: a.Freq}
	}
	return ts
}

// TotalOutFreq implements kstrings.GraphNode.
func (n *Node) TotalOutFreq() int { return n.NOut }

// NodeByState implements kstrings.Graph. It must return a nil interface
// (not a typed nil *Node) when the state doesn't exist.
func (p *PFSA) NodeByState(state int) kstrings.GraphNode {
	n := p.byState[state]
	if n == nil {
		return nil
	}
	return n
}

// IsDelimiter implements kstrings.Graph.
func (p *PFSA) IsDelimiter(sym int) bool { return sym == DelimiterSymbol }

// KStringCache builds a cache bound to p with the given enumeration
// parameters -- the constructor the driver uses to get its one,
// exclusively-owned cache instance.
func (p *PFSA) KStringCache(params kstrings.Params) *kstrings.Cache {
	return kstrings.NewCache(p, params)
}
