// Package graphplace emits diagram-mode output for the external graphplace
// drawing helper: one node directive and one edge directive per arc, with
// parallel arcs on the same (source, target) pair collapsed into a single
// annotated edge so graphplace doesn't print them stacked illegibly.
// Grounded in the source's misc.c writepfsa (Graphplace branch) and
// getanno.
package graphplace

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/pfsalab/skstr"
)

// Write emits p's diagram-mode directives to w.
func Write(w io.Writer, p *skstr.PFSA) error {
	bw := bufio.NewWriter(w)
	delim := p.Symtab.Label(skstr.DelimiterSymbol)

	for _, n := range p.Nodes() {
		annos, ndelims := annotate(n, p, delim)

		targets := make([]int, 0, len(annos))
		for t := range annos {
			targets = append(targets, t)
		}
		sort.Ints(targets)
		for _, t := range targets {
			if _, err := fmt.Fprintf(bw, "%s %d %d edge\n", annos[t], n.State, t); err != nil {
				return err
			}
		}

		var err error
		if ndelims > 0 {
			_, err = fmt.Fprintf(bw, "(!^%d) (%d) () %d node\n", ndelims, n.State, n.State)
		} else {
			_, err = fmt.Fprintf(bw, "(%d) () %d node\n", n.State, n.State)
		}
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}

// annotate groups n's outgoing non-delimiter arcs by target, building one
// annotation string per target (e.g. "() (a^3,b)"), and separately sums the
// frequency of all delimiter arcs (reported on the node directive instead
// of as an edge). Grounded in getanno, minus its single-vs-multi-transition
// dual-format trick: collapsing to the multi-transition form uniformly is
// observably equivalent once frequencies of 1 are elided the same way.
func annotate(n *skstr.Node, p *skstr.PFSA, delim string) (map[int]string, int) {
	type entry struct {
		label string
		freq  int
	}
	byTarget := make(map[int][]entry)
	var ndelims int

	for _, a := range n.Trans {
		label := p.Symtab.Label(a.Sym)
		if label == delim {
			ndelims += a.Freq
			continue
		}
		byTarget[a.Target] = append(byTarget[a.Target], entry{label: label, freq: a.Freq})
	}

	annos := make(map[int]string, len(byTarget))
	for target, entries := range byTarget {
		s := "() ("
		for i, e := range entries {
			if i > 0 {
				s += ","
			}
			if e.freq == 1 {
				s += e.label
			} else {
				s += fmt.Sprintf("%s^%d", e.label, e.freq)
			}
		}
		s += ")"
		annos[target] = s
	}
	return annos, ndelims
}
