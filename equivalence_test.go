package skstr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildChain builds a linear chain of n states (0..n) each with a single
// non-delimiter arc to the next, plus a delimiter arc to a shared accept
// state -- large enough to stand in for the "copy a sizeable PFSA" scenario.
func buildChain(t *testing.T, n int) *PFSA {
	t.Helper()
	symtab := NewSymbolTable(0)
	p := NewPFSA(symtab)
	for i := 0; i < n; i++ {
		sym, err := symtab.Intern(fmt.Sprintf("s%d", i))
		require.NoError(t, err)
		p.AddArc(i, i+1, sym, 1)
	}
	accept := n + 1
	p.AddArc(n, accept, DelimiterSymbol, 1)
	return p
}

func TestIsEquivalentAfterCopy(t *testing.T) {
	p := buildChain(t, 100)
	clone := p.Copy()

	require.True(t, IsEquivalent(p, clone))
	require.Equal(t, p.NStates(), clone.NStates())
}

func TestIsEquivalentFalseAfterMutation(t *testing.T) {
	p := buildChain(t, 100)
	clone := p.Copy()
	require.True(t, IsEquivalent(p, clone))

	clone.Node(0).Trans[0].Freq += 1

	require.False(t, IsEquivalent(p, clone), "mutating a clone's arc frequency must break equivalence")
}

func TestIsEquivalentIgnoresArcOrder(t *testing.T) {
	p := buildTree(t)
	clone := p.Copy()

	n := clone.Node(1)
	n.Trans[0], n.Trans[1] = n.Trans[1], n.Trans[0]

	require.True(t, IsEquivalent(p, clone), "arc order within a state must not affect equivalence")
}

func TestIsEquivalentUnrealisedMatchesMergeCopy(t *testing.T) {
	p := buildTree(t)
	other := buildTree(t)

	require.True(t, p.IsEquivalentUnrealised(2, 3, other, 2, 3))
}

func TestIsEquivalentUnrealisedFalseOnDivergence(t *testing.T) {
	p := buildTree(t)
	other := buildTree(t)
	other.Node(1).Trans[0].Freq += 5

	require.False(t, p.IsEquivalentUnrealised(2, 3, other, 2, 3))
}

func TestIsEquivalentUnrealisedDoesNotMutateInputs(t *testing.T) {
	p := buildTree(t)
	before := p.Copy()
	other := buildTree(t)

	p.IsEquivalentUnrealised(2, 3, other, 2, 3)

	require.True(t, IsEquivalent(p, before), "IsEquivalentUnrealised must not mutate its receiver")
}
