package skstr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolTableDelimiterPreregistered(t *testing.T) {
	st := NewSymbolTable(0)
	require.True(t, st.IsDelimiter(DelimiterSymbol))
	require.Equal(t, "\n", st.Label(DelimiterSymbol))
}

func TestSymbolTableWithCustomDelimiter(t *testing.T) {
	st := NewSymbolTableWithDelimiter(0, ";")
	require.Equal(t, ";", st.Label(DelimiterSymbol))
	id, ok := st.Lookup(";")
	require.True(t, ok)
	require.Equal(t, DelimiterSymbol, id)
}

func TestInternIsIdempotent(t *testing.T) {
	st := NewSymbolTable(0)
	id1, err := st.Intern("a")
	require.NoError(t, err)
	id2, err := st.Intern("a")
	require.NoError(t, err)
	require.Equal(t, id1, id2)
}

func TestInternFailsAtCapacity(t *testing.T) {
	st := NewSymbolTable(2) // the id-0 sentinel and the delimiter already fill both slots
	_, err := st.Intern("a")
	require.Error(t, err)
}

func TestAddFreqAccumulates(t *testing.T) {
	st := NewSymbolTable(0)
	sym, err := st.Intern("a")
	require.NoError(t, err)
	st.AddFreq(sym, 3)
	st.AddFreq(sym, 4)
	require.Equal(t, 7, st.symbols[sym].Freq)
}

func TestSymbolsExcludesSentinelAndDelimiter(t *testing.T) {
	st := NewSymbolTable(0)
	a, err := st.Intern("a")
	require.NoError(t, err)
	b, err := st.Intern("b")
	require.NoError(t, err)

	ids := st.Symbols()
	require.ElementsMatch(t, []int{a, b}, ids)
	require.NotContains(t, ids, DelimiterSymbol)
	require.NotContains(t, ids, 0)
}
