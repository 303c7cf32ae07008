package skstr

// Walker implements the lookahead acceptance test from the source's
// acceptable/lfindtrans/matchlen: when a state has more than one outgoing
// arc on the same symbol (a lookahead, non-Mealy automaton), the walker
// picks the arc whose target can match the longest continuation of the
// remaining sequence, rather than failing on the ambiguity.

// lfindtrans picks the transition on seq[0] to follow from n. When n has a
// single arc on that symbol (the common case) it's returned immediately;
// when several arcs share the symbol, the one whose target yields the
// longest recursive match against the rest of seq wins.
func lfindtrans(p *PFSA, n *Node, seq []int) (Arc, bool) {
	if len(seq) == 0 {
		return Arc{}, false
	}
	sym := seq[0]
	candidates := n.TransOn(sym)
	if len(candidates) == 0 {
		return Arc{}, false
	}
	if sym == DelimiterSymbol || len(candidates) == 1 {
		return candidates[0], true
	}

	best := candidates[0]
	bestLen := matchLen(p, p.Node(best.Target), seq[1:])
	for _, c := range candidates[1:] {
		l := matchLen(p, p.Node(c.Target), seq[1:])
		if l > bestLen {
			bestLen = l
			best = c
		}
	}
	return best, true
}

// matchLen returns how many symbols of seq can be matched starting at n,
// following lfindtrans greedily at every step.
func matchLen(p *PFSA, n *Node, seq []int) int {
	if n == nil || len(seq) == 0 {
		return 0
	}
	arc, ok := lfindtrans(p, n, seq)
	if !ok {
		return 0
	}
	if arc.Sym == DelimiterSymbol {
		return 1
	}
	return 1 + matchLen(p, p.Node(arc.Target), seq[1:])
}

// Acceptable reports whether seq can be walked in full starting from start,
// using lookahead disambiguation at every step. A delimiter in seq ends the
// walk and is accepted only as seq's last symbol. Grounded in the source's
// acceptable().
func Acceptable(p *PFSA, start int, seq []int) bool {
	n := p.Node(start)
	if n == nil {
		return false
	}
	remaining := seq
	for len(remaining) > 0 {
		arc, ok := lfindtrans(p, n, remaining)
		if !ok {
			return false
		}
		if arc.Sym == DelimiterSymbol {
			return len(remaining) == 1
		}
		n = p.Node(arc.Target)
		if n == nil {
			return false
		}
		remaining = remaining[1:]
	}
	return true
}
