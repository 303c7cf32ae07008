package skstr

import "sort"

// Fixed limits carried from the original tool's compiled-in constants
// (spec.md §6). Exceeding MaxNodes or MaxSyms is a fatal condition, not a
// recoverable error, matching the source's behavior on its own static
// arrays.
const (
	MaxNodes   = 4096
	MaxSyms    = 256
	MaxSymSize = 64
)

// PFSA is a probabilistic finite-state acceptor: a set of states (Nodes,
// kept sorted ascending by State id so every operator that says "in list
// order" gets the same order the original pointer-linked list produced),
// a shared SymbolTable, and the bookkeeping counters the original kept on
// its header node (node count, max state id, non-delimiter arc count).
type PFSA struct {
	Symtab *SymbolTable

	nodes    []*Node
	byState  map[int]*Node
	maxState int
	narcs    int // count of non-delimiter arcs, mirrors the source's trancnt

	// CallString is the heuristic invocation that produced this PFSA,
	// reconstructed for the "-v" output's "# <call-string>" comment.
	CallString string
}

// NewPFSA builds an empty acceptor sharing symtab. When symtab is nil, a
// fresh table capped at MaxSyms is created.
func NewPFSA(symtab *SymbolTable) *PFSA {
	if symtab == nil {
		symtab = NewSymbolTable(MaxSyms)
	}
	return &PFSA{
		Symtab:  symtab,
		byState: make(map[int]*Node),
	}
}

// NStates returns the number of live states.
func (p *PFSA) NStates() int { return len(p.nodes) }

// MaxState returns the largest live state id. When Merge or Trim removes
// the node that held it, it is recomputed from the remaining states.
func (p *PFSA) MaxState() int { return p.maxState }

// NArcs returns the number of non-delimiter arcs in the acceptor.
func (p *PFSA) NArcs() int { return p.narcs }

// Nodes returns the live nodes in ascending state-id order. Callers must not
// mutate the returned slice's backing array; Arc/StateList slices within
// each Node may be freely read.
func (p *PFSA) Nodes() []*Node { return p.nodes }

// Node returns the node for state, or nil if no such state is live.
func (p *PFSA) Node(state int) *Node { return p.byState[state] }

// AddNode creates a new state with the given id. It is fatal to reuse a live
// id or to exceed MaxNodes, mirroring the source's statelimiterror.
func (p *PFSA) AddNode(state int) *Node {
	if _, exists := p.byState[state]; exists {
		fatalf("skstr: duplicate state id %d", state)
	}
	if len(p.nodes) >= MaxNodes {
		fatalf("skstr: state limit exceeded (max %d nodes)", MaxNodes)
	}
	n := &Node{State: state}
	idx := sort.Search(len(p.nodes), func(i int) bool { return p.nodes[i].State >= state })
	p.nodes = append(p.nodes, nil)
	copy(p.nodes[idx+1:], p.nodes[idx:])
	p.nodes[idx] = n
	p.byState[state] = n
	if state > p.maxState {
		p.maxState = state
	}
	return n
}

// NextState returns an id one past MaxState, the
// convention AddArc's callers use when growing the acceptor incrementally.
func (p *PFSA) NextState() int { return p.maxState + 1 }

// AddArc adds freq occurrences of an arc src --sym--> dst, creating src/dst
// if they don't exist yet. An existing (sym, dst) arc from src has its
// frequency incremented rather than duplicated, exactly as the source's
// addtrans does; the reverse Source list on dst is kept as an exact mirror.
func (p *PFSA) AddArc(src, dst, sym, freq int) {
	sn, ok := p.byState[src]
	if !ok {
		sn = p.AddNode(src)
	}
	dn, ok := p.byState[dst]
	if !ok {
		dn = p.AddNode(dst)
	}

	if i := sn.findArcExact(sym, dst); i >= 0 {
		sn.Trans[i].Freq += freq
	} else {
		symWasNew := len(sn.TransOn(sym)) == 0
		idx := insertionIndex(sn.Trans, sym)
		sn.Trans = append(sn.Trans, Arc{})
		copy(sn.Trans[idx+1:], sn.Trans[idx:])
		sn.Trans[idx] = Arc{Target: dst, Sym: sym, Freq: freq}
		if symWasNew {
			sn.NSymbols++
		}
		if sym != DelimiterSymbol {
			p.narcs++
		}
	}

	if i := dn.findSourceExact(sym, src); i >= 0 {
		dn.Source[i].Freq += freq
	} else {
		idx := insertionIndex(dn.Source, sym)
		dn.Source = append(dn.Source, Arc{})
		copy(dn.Source[idx+1:], dn.Source[idx:])
		dn.Source[idx] = Arc{Target: src, Sym: sym, Freq: freq}
	}

	sn.NOut += freq
	dn.NIn += freq
	p.Symtab.AddFreq(sym, freq)
}

// findSourceExact mirrors findArcExact over the Source list, where Target
// holds the originating state rather than the destination.
func (n *Node) findSourceExact(sym, source int) int {
	for i := range n.Source {
		if n.Source[i].Sym == sym && n.Source[i].Target == source {
			return i
		}
	}
	return -1
}

// removeNode deletes a node entirely, used by Merge and Trim. It does not
// touch any other node's Trans/Source lists — callers must have already
// rewritten or removed every arc that referenced it.
func (p *PFSA) removeNode(state int) {
	n, ok := p.byState[state]
	if !ok {
		return
	}
	delete(p.byState, state)
	for i, nd := range p.nodes {
		if nd == n {
			p.nodes = append(p.nodes[:i], p.nodes[i+1:]...)
			break
		}
	}
	if state == p.maxState {
		max := 0
		for s := range p.byState {
			if s > max {
				max = s
			}
		}
		p.maxState = max
	}
}
