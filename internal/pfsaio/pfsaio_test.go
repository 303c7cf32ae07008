package pfsaio

import (
	"strings"
	"testing"

	"github.com/pfsalab/skstr"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	input := "# a comment\n\n0\t1\ta\t2\n   # indented comment\n"
	p, err := Parse(strings.NewReader(input), ParseOptions{})
	require.NoError(t, err)

	require.Equal(t, 2, p.NStates())
	require.Equal(t, 1, p.NArcs())
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := Parse(strings.NewReader("0\t1\ta\n"), ParseOptions{})
	require.Error(t, err)
}

func TestParseInternsRepeatedSymbolsOnce(t *testing.T) {
	input := "0\t1\ta\t3\n0\t1\ta\t2\n"
	p, err := Parse(strings.NewReader(input), ParseOptions{})
	require.NoError(t, err)

	sym, ok := p.Symtab.Lookup("a")
	require.True(t, ok)
	n := p.Node(0)
	require.Len(t, n.Trans, 1)
	require.Equal(t, 5, n.Trans[0].Freq)
	require.Equal(t, sym, n.Trans[0].Sym)
}

func TestParseHonorsCustomDelimiter(t *testing.T) {
	input := "0\t1\t;\t1\n"
	p, err := Parse(strings.NewReader(input), ParseOptions{Delimiter: ";"})
	require.NoError(t, err)

	require.True(t, p.Symtab.IsDelimiter(skstr.DelimiterSymbol))
	require.Equal(t, ";", p.Symtab.Label(skstr.DelimiterSymbol))
}

func TestWriteThenParseRoundTrips(t *testing.T) {
	symtab := skstr.NewSymbolTable(0)
	a, err := symtab.Intern("a")
	require.NoError(t, err)
	p := skstr.NewPFSA(symtab)
	p.AddArc(0, 1, a, 3)
	p.AddArc(1, 2, skstr.DelimiterSymbol, 3)

	var buf strings.Builder
	require.NoError(t, Write(&buf, p, WriteOptions{}))

	reparsed, err := Parse(strings.NewReader(buf.String()), ParseOptions{})
	require.NoError(t, err)

	require.Equal(t, p.NStates(), reparsed.NStates())
	require.Equal(t, p.NArcs(), reparsed.NArcs())
}

func TestWriteEscapesNewlineDelimiter(t *testing.T) {
	symtab := skstr.NewSymbolTable(0)
	p := skstr.NewPFSA(symtab)
	p.AddArc(0, 1, skstr.DelimiterSymbol, 1)

	var buf strings.Builder
	require.NoError(t, Write(&buf, p, WriteOptions{}))

	require.Contains(t, buf.String(), `\n`, "the newline delimiter label must be escaped, not emitted literally")
}

func TestWriteVerboseAppendsStatisticComments(t *testing.T) {
	symtab := skstr.NewSymbolTable(0)
	a, err := symtab.Intern("a")
	require.NoError(t, err)
	p := skstr.NewPFSA(symtab)
	p.AddArc(0, 1, a, 1)
	p.AddArc(1, 2, skstr.DelimiterSymbol, 1)

	var buf strings.Builder
	require.NoError(t, Write(&buf, p, WriteOptions{
		Verbose: true,
		MMLCost: func(*skstr.PFSA) float64 { return 1.5 },
	}))

	out := buf.String()
	require.Contains(t, out, "# states: 3")
	require.Contains(t, out, "# arcs: 1")
	require.Contains(t, out, "# mml-cost: 1.5000")
}

func TestParseCorpusCountsRepeatedSamples(t *testing.T) {
	input := "a b\na b\n# a comment\n\nc\n"
	p, err := ParseCorpus(strings.NewReader(input), ParseOptions{}, len(input))
	require.NoError(t, err)

	root := p.Node(0)
	require.Len(t, root.Trans, 2, "two distinct first symbols: a, c")

	symtab := p.Symtab
	aSym, ok := symtab.Lookup("a")
	require.True(t, ok)
	var aTarget int
	for _, arc := range root.Trans {
		if arc.Sym == aSym {
			require.Equal(t, 2, arc.Freq, "the \"a b\" sample was repeated twice")
			aTarget = arc.Target
		}
	}

	bSym, ok := symtab.Lookup("b")
	require.True(t, ok)
	mid := p.Node(aTarget)
	require.Len(t, mid.Trans, 1)
	require.Equal(t, bSym, mid.Trans[0].Sym)
	require.Equal(t, 2, mid.Trans[0].Freq)
}

func TestParseCorpusDisjointSamplesDiverge(t *testing.T) {
	input := "a b\nc d\n"
	p, err := ParseCorpus(strings.NewReader(input), ParseOptions{}, len(input))
	require.NoError(t, err)

	root := p.Node(0)
	require.Len(t, root.Trans, 2)
	for _, arc := range root.Trans {
		require.Equal(t, 1, arc.Freq)
	}
}

func TestWriteCallStringComment(t *testing.T) {
	symtab := skstr.NewSymbolTable(0)
	p := skstr.NewPFSA(symtab)
	p.AddArc(0, 1, skstr.DelimiterSymbol, 1)

	var buf strings.Builder
	require.NoError(t, Write(&buf, p, WriteOptions{CallString: "skstr -H and -i -"}))

	require.True(t, strings.HasPrefix(buf.String(), "# skstr -H and -i -\n"))
}
