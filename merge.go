package skstr

import (
	"sort"

	sliceutil "github.com/projectdiscovery/utils/slice"
)

// Merge destructively folds state2 into state1: every arc anywhere in the
// acceptor that referenced state2 now references state1, state2's own arcs
// are spliced into state1's, and state2 is removed. This mirrors the
// source's merge() in misc.c, adapted to an arena-of-nodes-by-index so no
// pointer-rewrite table is needed.
//
// Step order matters: the graph-wide reference rewrite must happen before
// the splice, and the duplicate-coalescing pass must happen after the
// splice, because the rewrite is what can introduce the duplicate (sym,
// target) pairs the coalescing pass cleans up (e.g. two third-party arcs
// q->state1 and q->state2 on the same symbol both become q->state1).
func (p *PFSA) Merge(state1, state2 int) {
	if state1 == state2 {
		return
	}
	p1 := p.Node(state1)
	p2 := p.Node(state2)
	if p1 == nil || p2 == nil {
		fatalf("skstr: merge of non-existent state (%d, %d)", state1, state2)
	}

	// Step 1: rewrite every reference to state2 into a reference to state1,
	// across every node in the acceptor (including p1 and p2 themselves --
	// an arc p1->state2 becomes a self-loop on p1, and a self-loop on p2
	// becomes a p1->p1 self-loop too).
	for _, n := range p.nodes {
		for i := range n.Trans {
			if n.Trans[i].Target == state2 {
				n.Trans[i].Target = state1
			}
		}
		for i := range n.Source {
			if n.Source[i].Target == state2 {
				n.Source[i].Target = state1
			}
		}
	}

	// Step 2: fold state2 (and everything state2 was itself merged from)
	// into p1's merge history.
	p1.StateList = mergeSortedUniqueInts(p1.StateList, appendSortedUnique([]int{state2}, p2.StateList))

	// Step 3 & 4: splice state2's transition and source lists into p1's,
	// preserving the sym-sorted order both lists already have.
	p1.Trans = mergeArcsBySym(p1.Trans, p2.Trans)
	p1.Source = mergeArcsBySym(p1.Source, p2.Source)

	// Step 5: coalesce any (sym, target)/(sym, source) duplicates the
	// rewrite in step 1 introduced, anywhere in the acceptor, decrementing
	// the non-delimiter arc count for every duplicate folded away.
	for _, n := range p.nodes {
		var removed int
		n.Trans, removed = coalesceArcs(n.Trans)
		p.narcs -= removed
		n.Source, _ = coalesceArcs(n.Source)
	}

	// Step 6: fold state2's traffic totals into p1.
	p1.NOut += p2.NOut
	p1.NIn += p2.NIn

	// Step 7: state2 no longer exists.
	p.removeNode(state2)
}

// coalesceArcs merges entries sharing the same (Sym, Target), summing
// frequencies, and reports how many non-delimiter duplicates were folded
// away. The relative order of first-seen entries -- and therefore the
// sym-sorted grouping -- is preserved.
func coalesceArcs(arcs []Arc) ([]Arc, int) {
	if len(arcs) < 2 {
		return arcs, 0
	}
	type key struct{ sym, target int }
	seen := make(map[key]int, len(arcs))
	out := make([]Arc, 0, len(arcs))
	removed := 0
	for _, a := range arcs {
		k := key{a.Sym, a.Target}
		if idx, ok := seen[k]; ok {
			out[idx].Freq += a.Freq
			if a.Sym != DelimiterSymbol {
				removed++
			}
			continue
		}
		seen[k] = len(out)
		out = append(out, a)
	}
	return out, removed
}

// mergeArcsBySym merges two Sym-sorted arc lists into one Sym-sorted list,
// without deduplicating (that's coalesceArcs's job, run afterward).
func mergeArcsBySym(a, b []Arc) []Arc {
	out := make([]Arc, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Sym <= b[j].Sym {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// appendSortedUnique inserts the elements of extra into base (already
// sorted-unique or empty) keeping the result sorted and deduplicated.
func appendSortedUnique(base, extra []int) []int {
	return mergeSortedUniqueInts(base, extra)
}

// mergeSortedUniqueInts merges two int slices (each sorted, not required to
// be dedup'd among themselves) into one sorted, deduplicated slice of the
// two merge histories. Deduplication itself is sliceutil.Dedupe's job (the
// same call alterx's mutator.go makes to collapse a generated wordlist);
// this just adds back the sortedness a merge history needs to stay a stable
// StateList.
func mergeSortedUniqueInts(a, b []int) []int {
	combined := make([]int, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	out := sliceutil.Dedupe(combined)
	sort.Ints(out)
	return out
}

// Copy returns a deep, independent clone of the acceptor sharing the same
// SymbolTable (the original never cloned the global symbol table either --
// symbols are immutable once registered). Because arcs here store state ids
// rather than pointers, no remap table is needed the way copypfsa's
// two-pass pointer rewrite required in the source.
func (p *PFSA) Copy() *PFSA {
	np := NewPFSA(p.Symtab)
	for _, n := range p.nodes {
		nn := np.AddNode(n.State)
		nn.NSymbols = n.NSymbols
		nn.NOut = n.NOut
		nn.NIn = n.NIn
		nn.StateList = append([]int(nil), n.StateList...)
	}
	for _, n := range p.nodes {
		nn := np.Node(n.State)
		nn.Trans = append([]Arc(nil), n.Trans...)
		nn.Source = append([]Arc(nil), n.Source...)
	}
	np.narcs = p.narcs
	np.maxState = p.maxState
	np.CallString = p.CallString
	return np
}

// MergeCopy clones the acceptor and merges state2 into state1 within the
// clone, leaving p untouched. Grounded in the source's mergecopy, which
// exists so the driver can test a prospective merge's k-string behavior
// before committing to it.
func (p *PFSA) MergeCopy(state1, state2 int) *PFSA {
	clone := p.Copy()
	clone.Merge(state1, state2)
	return clone
}

// MealyMergeable reports whether state1 and state2 could be merged without
// introducing non-determinism on any symbol they share: for every symbol
// both nodes transition on, the targets must already agree, or must be
// exactly the {state1, state2} pair (which Merge would collapse into a
// harmless self-loop). Grounded in the source's mealymerge.
func (p *PFSA) MealyMergeable(state1, state2 int) bool {
	if state1 == state2 {
		return true
	}
	n1 := p.Node(state1)
	n2 := p.Node(state2)
	if n1 == nil || n2 == nil {
		return false
	}
	i, j := 0, 0
	for i < len(n1.Trans) && j < len(n2.Trans) {
		a, b := n1.Trans[i], n2.Trans[j]
		switch {
		case a.Sym < b.Sym:
			i++
		case a.Sym > b.Sym:
			j++
		default:
			reflexive := (a.Target == state1 && b.Target == state2) || (a.Target == state2 && b.Target == state1)
			if a.Target != b.Target && !reflexive {
				return false
			}
			i++
			j++
		}
	}
	return true
}
