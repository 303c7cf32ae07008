// Package kstrings enumerates the bounded, probability-ranked multiset of
// delimited symbol sequences reachable from a PFSA state, and caches the
// result per state id. It depends on nothing from the root skstr package so
// that package can depend on kstrings without an import cycle; callers
// adapt their own graph type to the Graph/GraphNode interfaces below.
package kstrings

import "github.com/projectdiscovery/gologger"

// DefaultMaxStr is the enumerator's default hard cap on entries produced for
// a single state before enumeration is aborted as fatal.
const DefaultMaxStr = 1024

// DefaultPrec is the fixed-point scale factor: the whole probability space
// is 100*Prec units wide.
const DefaultPrec = 1000

// Transition is the minimal view of one outgoing arc the enumerator needs.
type Transition struct {
	Target int
	Sym    int
	Freq   int
}

// GraphNode is the minimal per-state view the enumerator needs. Transitions
// must be returned in symbol-ascending order with same-symbol arcs
// contiguous -- the Minprob cutoff below depends on it.
type GraphNode interface {
	StateID() int
	OutTransitions() []Transition
	TotalOutFreq() int
}

// Graph is the minimal acceptor view the enumerator needs.
type Graph interface {
	NodeByState(state int) GraphNode
	IsDelimiter(sym int) bool
}

// KString is one enumerated entry: a symbol sequence ending in the
// delimiter, plus the fixed-point probability (out of 100*Prec) of
// following that sequence to the delimiter.
type KString struct {
	Symbols []int
	Prob    int64
}

// Params configures one enumeration run.
type Params struct {
	TailSize int   // k: max number of symbols per string, terminal delimiter included
	Minprob  int64 // cutoff, in the same 100*Prec-scaled units as Prob
	Prec     int64
	MaxStr   int
}

// DefaultParams returns the tool's stock defaults: tail size 1, Minprob 1%,
// Prec 1000, MaxStr 1024.
func DefaultParams() Params {
	return Params{TailSize: 1, Minprob: DefaultPrec, Prec: DefaultPrec, MaxStr: DefaultMaxStr}
}

// MinprobFromPercent converts a Minprob percentage (0, 100] into the
// fixed-point units Params.Minprob and KString.Prob share.
func MinprobFromPercent(pct float64, prec int64) int64 {
	return int64(pct * float64(prec))
}

// GetKStrings enumerates every k-string reachable from state, honoring the
// Minprob cutoff and MaxStr overflow fatal. Grounded in the source's
// get_kstrList.
func GetKStrings(g Graph, state int, params Params) []KString {
	n := g.NodeByState(state)
	if n == nil {
		return nil
	}
	var out []KString
	enumerate(g, n, params.TailSize, nil, params.Prec*100, params, &out)
	return out
}

// enumerate walks the forward-arc tree from n, consuming one unit of budget
// k per non-delimiter symbol. A call made with k == 0 emits nothing at all:
// per the enumeration rule, a string whose budget is exhausted before it
// reaches the delimiter is dropped, not emitted as a truncated prefix.
func enumerate(g Graph, n GraphNode, k int, seq []int, acc int64, params Params, out *[]KString) {
	if k == 0 {
		return
	}
	total := int64(n.TotalOutFreq())
	if total == 0 {
		return
	}
	for _, arc := range n.OutTransitions() {
		newprob := acc * int64(arc.Freq) / total
		if newprob < params.Minprob {
			// Transitions are symbol-sorted; once one falls below the
			// floor, abandoning the rest of this node's list is a valid
			// O(branches) pruning heuristic, not an O(all-strings) one.
			return
		}
		if g.IsDelimiter(arc.Sym) {
			termSeq := make([]int, len(seq)+1)
			copy(termSeq, seq)
			termSeq[len(seq)] = arc.Sym
			addString(out, termSeq, newprob, params)
			continue
		}
		child := g.NodeByState(arc.Target)
		if child == nil {
			continue
		}
		nextSeq := make([]int, len(seq)+1)
		copy(nextSeq, seq)
		nextSeq[len(seq)] = arc.Sym
		enumerate(g, child, k-1, nextSeq, newprob, params, out)
	}
}

// addString appends a completed k-string, coalescing it into the previous
// entry when the two share an identical symbol sequence (two distinct paths
// reaching the delimiter with the same visible string), and enforces
// MaxStr.
func addString(out *[]KString, seq []int, prob int64, params Params) {
	if n := len(*out); n > 0 && CompareSeq((*out)[n-1].Symbols, seq) == 0 {
		(*out)[n-1].Prob += prob
		return
	}
	if len(*out) >= params.MaxStr {
		gologger.Fatal().Msgf("k-string enumeration exceeded MAXSTR (%d) entries; raise Minprob", params.MaxStr)
	}
	*out = append(*out, KString{Symbols: append([]int(nil), seq...), Prob: prob})
}

// CompareSeq lexicographically compares two symbol sequences, mirroring
// the source's intcmp.
func CompareSeq(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
