package skstr

// BuildCanonical builds the canonical machine for a set of training
// strings: the prefix-tree PFSA that exactly accepts them, with every arc
// frequency equal to how many times that prefix extension was taken across
// the sample (glossary: "Canonical machine"). Each sample is a sequence of
// already-interned non-delimiter symbols; BuildCanonical appends the
// delimiter itself, so callers must not include it.
//
// This is the sk-strings driver's usual starting point before any merging:
// spec.md's "training strings" become this prefix tree, which Induce then
// folds down via repeated merges. No source file builds this tree
// directly -- buildpfsa instead parses an already-built specification
// through a grammar this pack didn't retrieve -- so it is grounded instead
// in the glossary's definition of the canonical machine, which is
// unambiguous: one path per distinct prefix, shared as far as samples
// agree, frequency on each arc equal to the number of samples that take it.
func BuildCanonical(symtab *SymbolTable, samples []([]int), counts []int) *PFSA {
	p := NewPFSA(symtab)
	root := p.AddNode(0).State
	accept := p.AddNode(1).State

	for i, seq := range samples {
		freq := 1
		if counts != nil {
			freq = counts[i]
		}
		state := root
		for _, sym := range seq {
			state = followOrExtend(p, state, sym, freq)
		}
		p.AddArc(state, accept, DelimiterSymbol, freq)
	}
	return p
}

// followOrExtend returns the state reached by taking arc (state, sym),
// creating a fresh target state if no such arc exists yet, or adding freq
// onto the existing arc's target if it does -- the prefix tree only
// branches where samples actually diverge.
func followOrExtend(p *PFSA, state, sym, freq int) int {
	n := p.Node(state)
	for _, a := range n.Trans {
		if a.Sym == sym {
			p.AddArc(state, a.Target, sym, freq)
			return a.Target
		}
	}
	target := p.NextState()
	p.AddArc(state, target, sym, freq)
	return target
}
