package kstrings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testNode/testGraph are a minimal standalone Graph/GraphNode implementation
// used only to exercise the enumerator without depending on the root
// package's PFSA type (this package must stay import-cycle-free from it).
type testNode struct {
	id    int
	trans []Transition
	total int
}

func (n *testNode) StateID() int                  { return n.id }
func (n *testNode) OutTransitions() []Transition   { return n.trans }
func (n *testNode) TotalOutFreq() int              { return n.total }

type testGraph struct {
	nodes map[int]*testNode
	delim int
}

func (g *testGraph) NodeByState(state int) GraphNode {
	n, ok := g.nodes[state]
	if !ok {
		return nil
	}
	return n
}
func (g *testGraph) IsDelimiter(sym int) bool { return sym == g.delim }

func (g *testGraph) add(id int, total int, trans ...Transition) {
	g.nodes[id] = &testNode{id: id, trans: trans, total: total}
}

// branchingGraph builds: 0 --sym1(3)--> 1 --delim(3)--> 9
//                        0 --sym2(1)--> 2 --delim(1)--> 9
// the classic two-branch fixture for the total-mass property.
func branchingGraph() *testGraph {
	const delim = 0
	g := &testGraph{nodes: make(map[int]*testNode), delim: delim}
	g.add(0, 4, Transition{Target: 1, Sym: 1, Freq: 3}, Transition{Target: 2, Sym: 2, Freq: 1})
	g.add(1, 3, Transition{Target: 9, Sym: delim, Freq: 3})
	g.add(2, 1, Transition{Target: 9, Sym: delim, Freq: 1})
	return g
}

func TestGetKStringsTotalMass(t *testing.T) {
	g := branchingGraph()
	params := Params{TailSize: 2, Minprob: 0, Prec: DefaultPrec, MaxStr: DefaultMaxStr}

	list := GetKStrings(g, 0, params)

	var total int64
	for _, ks := range list {
		total += ks.Prob
	}
	require.Equal(t, int64(100)*params.Prec, total, "k-string probabilities must sum to 100*Prec for k>=1, Minprob=0")
}

func TestGetKStringsTotalMassDeeperTree(t *testing.T) {
	const delim = 0
	g := &testGraph{nodes: make(map[int]*testNode), delim: delim}
	// 0 -a(1)-> 1 -b(1)-> 2 -delim(1)-> 9
	// 0 -c(1)-> 3 -delim(1)-> 9
	// 0 -d(2)-> 4 -delim(2)-> 9
	g.add(0, 4,
		Transition{Target: 1, Sym: 1, Freq: 1},
		Transition{Target: 3, Sym: 2, Freq: 1},
		Transition{Target: 4, Sym: 3, Freq: 2},
	)
	g.add(1, 1, Transition{Target: 2, Sym: 4, Freq: 1})
	g.add(2, 1, Transition{Target: 9, Sym: delim, Freq: 1})
	g.add(3, 1, Transition{Target: 9, Sym: delim, Freq: 1})
	g.add(4, 2, Transition{Target: 9, Sym: delim, Freq: 2})

	params := Params{TailSize: 3, Minprob: 0, Prec: DefaultPrec, MaxStr: DefaultMaxStr}
	list := GetKStrings(g, 0, params)

	var total int64
	for _, ks := range list {
		total += ks.Prob
	}
	require.Equal(t, int64(100)*params.Prec, total)
}

func TestGetKStringsBudgetZeroEmitsNothing(t *testing.T) {
	g := branchingGraph()
	params := Params{TailSize: 0, Minprob: 0, Prec: DefaultPrec, MaxStr: DefaultMaxStr}

	list := GetKStrings(g, 0, params)
	require.Empty(t, list)
}

func TestGetKStringsMissingStateReturnsNil(t *testing.T) {
	g := branchingGraph()
	params := DefaultParams()
	require.Nil(t, GetKStrings(g, 999, params))
}

func TestAddStringCoalescesIdenticalSequences(t *testing.T) {
	const delim = 0
	g := &testGraph{nodes: make(map[int]*testNode), delim: delim}
	// Two distinct arcs on the same symbol converge on a shared tail so the
	// visible string "x" is reachable by two different paths.
	g.add(0, 2, Transition{Target: 1, Sym: 1, Freq: 1}, Transition{Target: 2, Sym: 1, Freq: 1})
	g.add(1, 1, Transition{Target: 9, Sym: delim, Freq: 1})
	g.add(2, 1, Transition{Target: 9, Sym: delim, Freq: 1})

	params := Params{TailSize: 2, Minprob: 0, Prec: DefaultPrec, MaxStr: DefaultMaxStr}
	list := GetKStrings(g, 0, params)

	require.Len(t, list, 1, "two paths emitting the same symbol sequence must coalesce into one entry")
	require.Equal(t, int64(100)*params.Prec, list[0].Prob)
}

func TestMinprobCutoffPrunesLowProbabilityBranches(t *testing.T) {
	g := branchingGraph()
	// Minprob above branch 2's 25% share prunes it away entirely.
	params := Params{TailSize: 2, Minprob: int64(30) * DefaultPrec, Prec: DefaultPrec, MaxStr: DefaultMaxStr}

	list := GetKStrings(g, 0, params)
	require.Len(t, list, 1)
	require.Equal(t, []int{1, 0}, list[0].Symbols, "the emitted sequence must include the terminal delimiter symbol")
}

func TestCompareSeqOrdering(t *testing.T) {
	require.Equal(t, 0, CompareSeq([]int{1, 2}, []int{1, 2}))
	require.Equal(t, -1, CompareSeq([]int{1, 2}, []int{1, 3}))
	require.Equal(t, 1, CompareSeq([]int{1, 3}, []int{1, 2}))
	require.Equal(t, -1, CompareSeq([]int{1}, []int{1, 2}), "shorter prefix sorts first")
	require.Equal(t, 1, CompareSeq([]int{1, 2}, []int{1}))
}

func TestSortByProbDescendingThenSeq(t *testing.T) {
	list := []KString{
		{Symbols: []int{2}, Prob: 50},
		{Symbols: []int{1}, Prob: 90},
		{Symbols: []int{0}, Prob: 90},
	}
	SortByProb(list)
	require.Equal(t, []int64{90, 90, 50}, []int64{list[0].Prob, list[1].Prob, list[2].Prob})
	require.Equal(t, []int{0}, list[0].Symbols, "ties broken by ascending sequence")
}

func TestSortByStrAscendingThenProbDescending(t *testing.T) {
	list := []KString{
		{Symbols: []int{2}, Prob: 10},
		{Symbols: []int{1}, Prob: 90},
		{Symbols: []int{1}, Prob: 95},
	}
	SortByStr(list)
	require.Equal(t, []int{1}, list[0].Symbols)
	require.Equal(t, int64(95), list[0].Prob, "ties broken by descending probability")
	require.Equal(t, []int{2}, list[2].Symbols)
}

func TestMinprobFromPercent(t *testing.T) {
	require.Equal(t, int64(1000), MinprobFromPercent(1.0, 1000))
	require.Equal(t, int64(500), MinprobFromPercent(0.5, 1000))
}
