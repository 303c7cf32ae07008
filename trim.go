package skstr

import "sort"

// Trim removes every zero-frequency arc (and its mirror Source entry), then
// removes any state that this pass left with no outgoing arcs at all. A
// state that had no outgoing arcs to begin with (such as an accept state)
// is kept. Grounded in the source's trim(), which does the same two-phase
// cleanup over translist entries and then the node list.
func (p *PFSA) Trim() {
	var dead []int
	for _, n := range p.nodes {
		kept := n.Trans[:0:0]
		for _, a := range n.Trans {
			if a.Freq != 0 {
				kept = append(kept, a)
				continue
			}
			if a.Sym != DelimiterSymbol {
				p.narcs--
			}
			if tgt := p.Node(a.Target); tgt != nil {
				tgt.removeSourceArc(a.Sym, n.State)
			}
		}
		if len(n.Trans) > 0 && len(kept) == 0 {
			dead = append(dead, n.State)
		}
		n.Trans = kept
	}

	for _, s := range dead {
		p.removeNode(s)
	}
}

func (n *Node) removeSourceArc(sym, source int) {
	for i, a := range n.Source {
		if a.Sym == sym && a.Target == source {
			n.Source = append(n.Source[:i], n.Source[i+1:]...)
			return
		}
	}
}

// rewriteStates applies a state-id remap to every node, every arc's target,
// and the byState index. It deliberately leaves each node's StateList (the
// merge history of ids that no longer exist as live states) untouched --
// those ids are a historical record, not live references.
func (p *PFSA) rewriteStates(remap map[int]int) {
	for _, n := range p.nodes {
		for i := range n.Trans {
			n.Trans[i].Target = remap[n.Trans[i].Target]
		}
		for i := range n.Source {
			n.Source[i].Target = remap[n.Source[i].Target]
		}
	}
	for _, n := range p.nodes {
		n.State = remap[n.State]
	}
	p.byState = make(map[int]*Node, len(p.nodes))
	maxState := 0
	for _, n := range p.nodes {
		p.byState[n.State] = n
		if n.State > maxState {
			maxState = n.State
		}
	}
	p.maxState = maxState
}

// Renumber reassigns every state a sequential id (0, 1, 2, ...) in the
// acceptor's current ascending list order, the way the source's renumber()
// does. Unlike the source -- whose arcs are pointers to node structs and so
// need no rewriting -- arcs here store state ids and must be rewritten too.
func (p *PFSA) Renumber() {
	remap := make(map[int]int, len(p.nodes))
	for i, n := range p.nodes {
		remap[n.State] = i
	}
	p.rewriteStates(remap)
}

// BFRenumber renumbers states in breadth-first visitation order starting
// from start, then re-sorts the node list ascending by the new id.
// Grounded in the source's bf_renumber, minus its hand-rolled queue (a plain
// slice suffices) and its isort linked-list insertion sort (sort.Slice is
// observably identical: a stable ascending sort by id).
func (p *PFSA) BFRenumber(start int) {
	if p.Node(start) == nil {
		fatalf("skstr: bf-renumber from non-existent start state %d", start)
	}
	visited := make(map[int]bool, len(p.nodes))
	order := make([]int, 0, len(p.nodes))
	queue := []int{start}
	visited[start] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		order = append(order, s)
		n := p.Node(s)
		for _, a := range n.Trans {
			if !visited[a.Target] {
				visited[a.Target] = true
				queue = append(queue, a.Target)
			}
		}
	}
	// States unreachable from start are kept, appended in their existing
	// ascending order, rather than silently dropped.
	for _, n := range p.nodes {
		if !visited[n.State] {
			visited[n.State] = true
			order = append(order, n.State)
		}
	}

	remap := make(map[int]int, len(order))
	for i, s := range order {
		remap[s] = i
	}
	p.rewriteStates(remap)
	sort.Slice(p.nodes, func(i, j int) bool { return p.nodes[i].State < p.nodes[j].State })
}
