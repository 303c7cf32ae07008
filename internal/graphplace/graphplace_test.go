package graphplace

import (
	"strings"
	"testing"

	"github.com/pfsalab/skstr"
	"github.com/stretchr/testify/require"
)

func TestWriteCollapsesParallelArcsOntoOneEdgeLine(t *testing.T) {
	symtab := skstr.NewSymbolTable(0)
	a, err := symtab.Intern("a")
	require.NoError(t, err)
	b, err := symtab.Intern("b")
	require.NoError(t, err)
	p := skstr.NewPFSA(symtab)
	p.AddArc(0, 1, a, 3)
	p.AddArc(0, 1, b, 1)
	p.AddArc(1, 2, skstr.DelimiterSymbol, 4)

	var buf strings.Builder
	require.NoError(t, Write(&buf, p))

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "0 1 edge"), "both arcs to state 1 must collapse onto one edge line")
	require.Contains(t, out, "a^3")
	require.Contains(t, out, "b")
	require.NotContains(t, out, "b^1", "a frequency of 1 is elided, not printed as \"^1\"")
}

func TestWriteReportsDelimiterCountOnNodeLine(t *testing.T) {
	symtab := skstr.NewSymbolTable(0)
	p := skstr.NewPFSA(symtab)
	p.AddArc(0, 1, skstr.DelimiterSymbol, 5)

	var buf strings.Builder
	require.NoError(t, Write(&buf, p))

	require.Contains(t, buf.String(), "(!^5)")
}

func TestWriteOmitsDelimiterAnnotationWhenNodeHasNone(t *testing.T) {
	symtab := skstr.NewSymbolTable(0)
	a, err := symtab.Intern("a")
	require.NoError(t, err)
	p := skstr.NewPFSA(symtab)
	p.AddArc(0, 1, a, 1)
	p.AddArc(1, 2, skstr.DelimiterSymbol, 1)

	var buf strings.Builder
	require.NoError(t, Write(&buf, p))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	var sawBareNode bool
	for _, l := range lines {
		if strings.HasSuffix(l, "0 node") {
			require.False(t, strings.Contains(l, "!^"))
			sawBareNode = true
		}
	}
	require.True(t, sawBareNode)
}
