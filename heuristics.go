package skstr

import (
	"math"

	"github.com/pfsalab/skstr/internal/kstrings"
)

// Heuristic names one of the six mergeability predicates. Modeled as a
// tagged variant rather than a function-pointer table, per the design
// notes' "small interface with one method" alternative collapsed to a
// switch since there's no per-call state to carry.
type Heuristic int

const (
	HeuristicAnd Heuristic = iota
	HeuristicOr
	HeuristicLax
	HeuristicStrict
	HeuristicXentropic
	HeuristicVarDist
)

func (h Heuristic) String() string {
	switch h {
	case HeuristicAnd:
		return "and"
	case HeuristicOr:
		return "or"
	case HeuristicLax:
		return "lax"
	case HeuristicStrict:
		return "strict"
	case HeuristicXentropic:
		return "xentropic"
	case HeuristicVarDist:
		return "vardist"
	default:
		return "unknown"
	}
}

// ParseHeuristic resolves a CLI -H value to a Heuristic. An unknown name is
// fatal per spec.md §7 ("invalid option value... except for an unknown
// heuristic name which is fatal").
func ParseHeuristic(name string) Heuristic {
	switch name {
	case "and":
		return HeuristicAnd
	case "or":
		return HeuristicOr
	case "lax":
		return HeuristicLax
	case "strict":
		return HeuristicStrict
	case "xentropic":
		return HeuristicXentropic
	case "vardist":
		return HeuristicVarDist
	default:
		fatalf("skstr: unknown heuristic %q", name)
		return HeuristicAnd // unreached
	}
}

// HeuristicParams carries the acceptance knobs every heuristic reads.
// Agreepct/Prec combine into the cutoff A = Agreepct*Prec the design notes
// describe; MinEntropy bounds xentropic/vardist; Minprob backs xentropic's
// epsilon floor.
type HeuristicParams struct {
	Agreepct   int
	MinEntropy float64
	Prec       int64
	Minprob    int64
}

// cutoff returns A = Agreepct*Prec, the acceptance-cutoff threshold shared
// by and/or/lax/strict. Per spec.md §9's open-question (b) resolution, lax
// (and, since it shares the same cutoff test, strict) uses this
// Prec-scaled form uniformly, not the source's raw Agreepct comparison.
func (hp HeuristicParams) cutoff() int64 {
	return int64(hp.Agreepct) * hp.Prec
}

// Mergeable dispatches to the named heuristic. cache must be bound to pfsa.
func Mergeable(h Heuristic, pfsa *PFSA, cache *kstrings.Cache, p, q int, hp HeuristicParams) bool {
	switch h {
	case HeuristicAnd:
		return acceptTopA(pfsa, cache, p, q, hp) && acceptTopA(pfsa, cache, q, p, hp)
	case HeuristicOr:
		return acceptTopA(pfsa, cache, p, q, hp) || acceptTopA(pfsa, cache, q, p, hp)
	case HeuristicLax:
		return alignedPair(cache, p, q, hp, false)
	case HeuristicStrict:
		return alignedPair(cache, p, q, hp, true)
	case HeuristicXentropic:
		return xentropicDivergence(cache, p, q, hp) <= hp.MinEntropy
	case HeuristicVarDist:
		return variationDistance(cache, p, q, hp) <= hp.MinEntropy
	default:
		fatalf("skstr: unhandled heuristic %v", h)
		return false
	}
}

// acceptTopA walks from's probability-ordered k-string list, requiring
// every entry up to and including the one that pushes cumulative
// probability past the cutoff to be Acceptable at state at. Grounded in the
// source's acceptlist.
func acceptTopA(pfsa *PFSA, cache *kstrings.Cache, from, at int, hp HeuristicParams) bool {
	list := cache.ByProb(from)
	a := hp.cutoff()
	var cumulative int64
	for _, ks := range list {
		if !Acceptable(pfsa, at, ks.Symbols) {
			return false
		}
		cumulative += ks.Prob
		if cumulative > a {
			break
		}
	}
	return true
}

// alignedPair implements lax (requireProbMatch=false) and strict
// (requireProbMatch=true): walk both sequence-ordered lists in lockstep,
// requiring identical sequences at every index visited, until cumulative
// probability on BOTH sides has reached the cutoff. Grounded in the
// source's skstr_lax/skstr_strict.
func alignedPair(cache *kstrings.Cache, p, q int, hp HeuristicParams, requireProbMatch bool) bool {
	listP := cache.ByStr(p)
	listQ := cache.ByStr(q)
	a := hp.cutoff()
	var cutoffP, cutoffQ int64
	i := 0
	for {
		if cutoffP >= a && cutoffQ >= a {
			return true
		}
		if i >= len(listP) || i >= len(listQ) {
			return false
		}
		x, y := listP[i], listQ[i]
		if kstrings.CompareSeq(x.Symbols, y.Symbols) != 0 {
			return false
		}
		if requireProbMatch && x.Prob != y.Prob {
			return false
		}
		cutoffP += x.Prob
		cutoffQ += y.Prob
		i++
	}
}

// pairwiseMerge walks two sequence-ordered k-string lists as a sorted
// merge-join, calling visit once per distinct sequence found in either
// list with its probability fraction on each side (0 if absent from that
// side). total is the full probability space (100*Prec) used to convert
// fixed-point Prob values to [0,1] fractions.
func pairwiseMerge(listP, listQ []kstrings.KString, total float64, visit func(pi, qi float64, presentP, presentQ bool)) {
	i, j := 0, 0
	for i < len(listP) || j < len(listQ) {
		switch {
		case i >= len(listP):
			visit(0, float64(listQ[j].Prob)/total, false, true)
			j++
		case j >= len(listQ):
			visit(float64(listP[i].Prob)/total, 0, true, false)
			i++
		default:
			switch kstrings.CompareSeq(listP[i].Symbols, listQ[j].Symbols) {
			case 0:
				visit(float64(listP[i].Prob)/total, float64(listQ[j].Prob)/total, true, true)
				i++
				j++
			case -1:
				visit(float64(listP[i].Prob)/total, 0, true, false)
				i++
			default:
				visit(0, float64(listQ[j].Prob)/total, false, true)
				j++
			}
		}
	}
}

// xentropicDivergence computes the symmetric Kullback divergence between
// p and q's k-string distributions, normalized into roughly [0, 1].
// Grounded in the source's skstr_xentropic.
func xentropicDivergence(cache *kstrings.Cache, p, q int, hp HeuristicParams) float64 {
	listP := cache.ByStr(p)
	listQ := cache.ByStr(q)
	total := float64(100) * float64(hp.Prec)
	epsilon := float64(hp.Minprob) / 100.0 / float64(hp.Prec)

	var xent float64
	pairwiseMerge(listP, listQ, total, func(pi, qi float64, presentP, presentQ bool) {
		if !presentP {
			pi = epsilon
		}
		if !presentQ {
			qi = epsilon
		}
		if pi > 0 && qi > 0 {
			xent += (pi - qi) * math.Log(pi/qi)
		}
	})

	denom := -2.0 * (1.0 - epsilon) * math.Log(epsilon)
	if denom == 0 {
		return math.Inf(1)
	}
	return xent / denom
}

// variationDistance computes half the total variation distance between p
// and q's k-string distributions: ½·Σ|pᵢ−qᵢ|, per spec.md §4.4 and
// original_source/skstr.c's skstr_vardist, which sums the absolute per-entry
// differences and unconditionally divides by 2.0 regardless of how many
// entries were compared.
func variationDistance(cache *kstrings.Cache, p, q int, hp HeuristicParams) float64 {
	listP := cache.ByStr(p)
	listQ := cache.ByStr(q)
	total := float64(100) * float64(hp.Prec)

	var sum float64
	pairwiseMerge(listP, listQ, total, func(pi, qi float64, _, _ bool) {
		d := pi - qi
		if d < 0 {
			d = -d
		}
		sum += d
	})
	return sum / 2.0
}
