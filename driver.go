package skstr

import (
	"github.com/pfsalab/skstr/internal/kstrings"
	"github.com/projectdiscovery/gologger"
)

// Options configures one sk-strings induction run. Fields mirror the CLI's
// -H, -D, -t, -p, -m, -e and -d flags (the output flags have no field
// here); Validate fills in defaults and performs
// the same out-of-range handling the source's flag parser did.
type Options struct {
	Heuristic      string
	Delimiter      string
	TailSize       int
	Agreepct       int
	MinprobPercent float64
	MinEntropy     float64
	Debug          bool
}

// DefaultOptions returns the tool's stock defaults (heuristic "and", "\n"
// delimiter, tail size 1, Agreepct 50, Minprob 1.0%, MinEntropy unset,
// which Validate resolves to 0.5).
func DefaultOptions() Options {
	return Options{
		Heuristic:      "and",
		Delimiter:      "\n",
		TailSize:       1,
		Agreepct:       50,
		MinprobPercent: 1.0,
		MinEntropy:     -1, // sentinel: unset
	}
}

// Validate resolves an Options value to something NewDriver can use:
// out-of-range numeric knobs are reset to their default with a warning; an
// unknown heuristic name is fatal (spec.md §7 singles this one out as
// unrecoverable). xentropic and vardist force Agreepct to 100, and an unset
// (negative) MinEntropy defaults to 0.5 whatever the heuristic, matching
// the source's flag-parsing behavior (spec.md §7 supplement).
func (o *Options) Validate() Heuristic {
	if o.Delimiter == "" {
		o.Delimiter = "\n"
	}
	if o.TailSize < 0 {
		gologger.Warning().Msgf("tail size must be non-negative, resetting to default 1")
		o.TailSize = 1
	}
	if o.Agreepct < 0 || o.Agreepct > 100 {
		gologger.Warning().Msgf("agreepct must be within [0,100], resetting to default 50")
		o.Agreepct = 50
	}
	if o.MinprobPercent <= 0 || o.MinprobPercent > 100 {
		gologger.Warning().Msgf("minprob must be within (0,100], resetting to default 1.0")
		o.MinprobPercent = 1.0
	}

	h := ParseHeuristic(o.Heuristic)

	if h == HeuristicXentropic || h == HeuristicVarDist {
		o.Agreepct = 100
	}
	if o.MinEntropy < 0 {
		o.MinEntropy = 0.5
	}
	if o.MinEntropy > 1 {
		gologger.Warning().Msgf("minentropy must be within [0,1], resetting to default 0.5")
		o.MinEntropy = 0.5
	}
	return h
}

// Driver runs the outer sk-strings fixed-point merge loop over one PFSA. It
// is the exclusive owner of the k-string cache: nothing else may read or
// invalidate it while a Driver holds it, per spec.md §5's concurrency
// model.
type Driver struct {
	pfsa      *PFSA
	cache     *kstrings.Cache
	heuristic Heuristic
	hp        HeuristicParams
	debug     bool
}

// NewDriver builds a Driver over pfsa using opts, after resolving defaults
// via Options.Validate.
func NewDriver(pfsa *PFSA, opts Options) *Driver {
	h := opts.Validate()
	prec := int64(kstrings.DefaultPrec)
	minprob := kstrings.MinprobFromPercent(opts.MinprobPercent, prec)

	params := kstrings.Params{
		TailSize: opts.TailSize,
		Minprob:  minprob,
		Prec:     prec,
		MaxStr:   kstrings.DefaultMaxStr,
	}

	return &Driver{
		pfsa:      pfsa,
		cache:     pfsa.KStringCache(params),
		heuristic: h,
		hp: HeuristicParams{
			Agreepct:   opts.Agreepct,
			MinEntropy: opts.MinEntropy,
			Prec:       prec,
			Minprob:    minprob,
		},
	}
}

// SetDebug toggles verbose per-merge trace output. Replaces the source's
// signal-driven debug toggle with a plain API call, per spec.md §9.
func (d *Driver) SetDebug(debug bool) { d.debug = debug }

// Induce runs the outer fixed-point loop to completion and returns the
// (now renumbered) PFSA. Grounded in the source's do_skstrings.
func (d *Driver) Induce() *PFSA {
outer:
	for {
		states := stateIDs(d.pfsa.Nodes())
		for i := 0; i < len(states); i++ {
			p1 := states[i]
			if d.pfsa.Node(p1) == nil {
				continue
			}
			for j := i + 1; j < len(states); j++ {
				p2 := states[j]
				if d.pfsa.Node(p2) == nil {
					continue
				}
				if !Mergeable(d.heuristic, d.pfsa, d.cache, p1, p2, d.hp) {
					continue
				}
				if d.debug {
					gologger.Debug().Msgf("skstr: merging state %d into %d (%s)", p2, p1, d.heuristic)
				}
				if Indistinguishable(d.cache, p1, p2) {
					// p2's distribution is folded away but, by definition,
					// nothing else's distribution changes -- patch, don't
					// flush, and keep scanning the rest of this pass.
					d.cache.Discard(p2)
					d.pfsa.Merge(p1, p2)
					continue
				}
				d.cache.Flush()
				d.pfsa.Merge(p1, p2)
				continue outer
			}
		}
		break
	}
	d.pfsa.Renumber()
	return d.pfsa
}

func stateIDs(nodes []*Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.State
	}
	return ids
}

// Indistinguishable reports whether p and q have identical full k-string
// lists (same length, same sequences in order, same probabilities). Per
// spec.md §9's open-question (a) resolution, this compares the full list,
// not just the top-Agreepct prefix. Grounded in the source's
// sk_distinguishable (inverted: that function reports the opposite sense).
func Indistinguishable(cache *kstrings.Cache, p, q int) bool {
	a := cache.Get(p)
	b := cache.Get(q)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if kstrings.CompareSeq(a[i].Symbols, b[i].Symbols) != 0 {
			return false
		}
		if a[i].Prob != b[i].Prob {
			return false
		}
	}
	return true
}
