package skstr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDriverTerminatesAndShrinksStateCount exercises the termination
// invariant (spec.md §8): the driver always returns, having strictly
// reduced the state count by at least one merge when mergeable states
// exist.
func TestDriverTerminatesAndShrinksStateCount(t *testing.T) {
	p := buildTree(t)
	before := p.NStates()

	driver := NewDriver(p, Options{Heuristic: "and", TailSize: 1, Agreepct: 50, MinprobPercent: 1.0})
	result := driver.Induce()

	require.Less(t, result.NStates(), before, "at least one merge must have happened")
	require.GreaterOrEqual(t, result.NStates(), 1)
}

// buildRepeatedAChain builds the canonical machine for {aa, aaa, aaaa}
// (spec.md §8 scenario 2) via BuildCanonical: the samples share their
// prefixes, so this is a single chain of "a" arcs with a delimiter arc
// after the second, third and fourth "a".
func buildRepeatedAChain(t *testing.T) *PFSA {
	t.Helper()
	symtab := NewSymbolTable(0)
	a, err := symtab.Intern("a")
	require.NoError(t, err)

	samples := [][]int{
		{a, a},
		{a, a, a},
		{a, a, a, a},
	}
	return BuildCanonical(symtab, samples, nil)
}

// TestDriverScenario2ConvergesToACycle drives the {aa,aaa,aaaa} canonical
// machine under strict/-t2/-p100 (spec.md §8 scenario 2): the samples all
// being built from the same repeated symbol, the induced machine should
// collapse down to a small cycle on "a" -- fewer states than the starting
// chain, with a self-loop on some live state.
func TestDriverScenario2ConvergesToACycle(t *testing.T) {
	p := buildRepeatedAChain(t)
	before := p.NStates()

	driver := NewDriver(p, Options{Heuristic: "strict", TailSize: 2, Agreepct: 100, MinprobPercent: 1.0})
	result := driver.Induce()

	require.Less(t, result.NStates(), before, "the starting chain must collapse")

	var foundSelfLoop bool
	for _, n := range result.Nodes() {
		for _, arc := range n.Trans {
			if arc.Target == n.State && arc.Sym != DelimiterSymbol {
				foundSelfLoop = true
			}
		}
	}
	require.True(t, foundSelfLoop, "repeated-symbol samples of growing length should induce a self-loop cycle")
}

func TestDriverRenumbersResult(t *testing.T) {
	p := buildTree(t)
	driver := NewDriver(p, Options{Heuristic: "and", TailSize: 1, Agreepct: 50, MinprobPercent: 1.0})
	result := driver.Induce()

	states := make(map[int]bool)
	for _, n := range result.Nodes() {
		states[n.State] = true
	}
	for i := 0; i < result.NStates(); i++ {
		require.True(t, states[i], "renumbered states must be contiguous from 0")
	}
}

func TestOptionsValidateDefaultsOutOfRangeFields(t *testing.T) {
	opts := Options{Heuristic: "and", TailSize: -1, Agreepct: 200, MinprobPercent: 0, MinEntropy: -1}
	h := opts.Validate()

	require.Equal(t, HeuristicAnd, h)
	require.Equal(t, 1, opts.TailSize)
	require.Equal(t, 50, opts.Agreepct)
	require.Equal(t, 1.0, opts.MinprobPercent)
	require.Equal(t, 0.5, opts.MinEntropy)
}

func TestOptionsValidateForcesFullAgreepctForDistributionHeuristics(t *testing.T) {
	opts := Options{Heuristic: "vardist", TailSize: 1, Agreepct: 50, MinprobPercent: 1.0, MinEntropy: 0.2}
	opts.Validate()

	require.Equal(t, 100, opts.Agreepct)
	require.Equal(t, 0.2, opts.MinEntropy)
}
