package skstr

// Arc is one weighted transition. In a Node's Trans list Target is the
// destination state; in a Node's Source list (the mirror Merge needs to walk
// backwards through) Target instead holds the state the arc comes from. Sym
// is an interned SymbolTable id, never the delimiter for an arc that isn't
// terminal.
type Arc struct {
	Target int
	Sym    int
	Freq   int
}

// Node is one PFSA state. Trans is kept sorted by Sym with same-symbol arcs
// contiguous, which both AddArc and the lookahead walker in walker.go rely
// on. Source mirrors Trans so Merge can rewrite incoming arcs without a
// linear scan of the whole graph's outgoing lists.
type Node struct {
	State     int
	Trans     []Arc
	Source    []Arc
	NSymbols  int
	NOut      int
	NIn       int
	StateList []int
}

// findArcExact returns the index of the (sym, target) arc in Trans, or -1.
func (n *Node) findArcExact(sym, target int) int {
	for i := range n.Trans {
		if n.Trans[i].Sym == sym && n.Trans[i].Target == target {
			return i
		}
	}
	return -1
}

// insertionIndex returns where an arc with the given symbol should be spliced
// into Trans to keep the sym-sorted invariant, preferring to land after any
// existing run of arcs on that symbol.
func insertionIndex(arcs []Arc, sym int) int {
	i := 0
	for i < len(arcs) && arcs[i].Sym <= sym {
		i++
	}
	return i
}

// TransOn returns every outgoing arc whose symbol is sym, in the order they
// appear in Trans.
func (n *Node) TransOn(sym int) []Arc {
	var out []Arc
	for _, a := range n.Trans {
		if a.Sym == sym {
			out = append(out, a)
		}
	}
	return out
}

// HasStateInHistory reports whether state appears in n's merge history,
// i.e. n resulted (possibly transitively) from merging a node with that id.
func (n *Node) HasStateInHistory(state int) bool {
	for _, s := range n.StateList {
		if s == state {
			return true
		}
	}
	return false
}
