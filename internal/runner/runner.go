package runner

import (
	"fmt"
	"os"
	"strconv"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	updateutils "github.com/projectdiscovery/utils/update"

	skstr "github.com/pfsalab/skstr"
)

// Options holds the parsed command line, one field per spec.md §6 flag plus
// the teacher's ambient config/update machinery.
type Options struct {
	Input          string
	RawCorpus      bool
	Heuristic      string
	Delimiter      string
	TailSize       int
	Agreepct       int
	MinprobPercent float64
	MinEntropy     float64
	Output         string
	Graphplace     bool
	Verbose        bool
	Debug          bool

	Config             string
	DisableUpdateCheck bool
	Silent             bool

	// raw string forms of the two floating-point flags, parsed in
	// ParseFlags after flagSet.Parse returns -- goflags has no native
	// float flag type, matching the pattern the teacher uses for its own
	// non-native "-max-size" flag.
	minprobRaw string
	minentRaw  string
}

// ParseFlags builds the flag set, parses argv, merges a config file if one
// is given, and applies the teacher's banner/update-check/log-level
// bootstrap.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Probabilistic finite-state acceptor induction via sk-strings state merging.`)

	// DefaultConfig (loaded from disk in this package's init) seeds flag
	// defaults when present, so a persisted config.yaml takes effect even
	// without an explicit "-config" flag; individual flags on the command
	// line still win since goflags applies them after these defaults.
	heuristicDefault, delimDefault := "and", "\n"
	tailDefault, agreepctDefault := 1, 50
	minprobDefault, minentDefault := "1.0", "0.5"
	if DefaultConfig != nil {
		if DefaultConfig.Heuristic != "" {
			heuristicDefault = DefaultConfig.Heuristic
		}
		if DefaultConfig.Delimiter != "" {
			delimDefault = DefaultConfig.Delimiter
		}
		if DefaultConfig.TailSize != 0 {
			tailDefault = DefaultConfig.TailSize
		}
		if DefaultConfig.Agreepct != 0 {
			agreepctDefault = DefaultConfig.Agreepct
		}
		if DefaultConfig.MinprobPercent != 0 {
			minprobDefault = strconv.FormatFloat(DefaultConfig.MinprobPercent, 'f', -1, 64)
		}
		if DefaultConfig.MinEntropy != 0 {
			minentDefault = strconv.FormatFloat(DefaultConfig.MinEntropy, 'f', -1, 64)
		}
	}

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Input, "input", "i", "-", "input pfsa file in the line format (- for stdin)"),
		flagSet.StringVarP(&opts.Delimiter, "delimiter", "D", delimDefault, "one-character training-string delimiter"),
		flagSet.BoolVar(&opts.RawCorpus, "raw", false, "treat input as a raw sample-of-strings corpus instead of a pre-built arc listing"),
	)

	flagSet.CreateGroup("heuristic", "Heuristic",
		flagSet.StringVarP(&opts.Heuristic, "heuristic", "H", heuristicDefault, "mergeability heuristic (and, or, lax, strict, xentropic, vardist)"),
		flagSet.IntVarP(&opts.TailSize, "tail-size", "t", tailDefault, "k-string tail size"),
		flagSet.IntVarP(&opts.Agreepct, "agreepct", "p", agreepctDefault, "agreement percentage, 0-100"),
		flagSet.StringVarP(&opts.minprobRaw, "minprob", "m", minprobDefault, "minimum k-string probability percent, (0, 100]"),
		flagSet.StringVarP(&opts.minentRaw, "min-entropy", "e", minentDefault, "max cross-entropy/variation-distance, [0, 1]"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "-", "output file (- for stdout)"),
		flagSet.BoolVarP(&opts.Graphplace, "graphplace", "g", false, "emit diagram-mode output"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose statistics"),
		flagSet.BoolVarP(&opts.Debug, "debug", "d", false, "display per-merge debug trace"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display skstr version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `skstr cli config file (default '$HOME/.config/skstr/config.yaml')`),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(GetUpdateCallback(), "update", "up", "update skstr to latest version"),
		flagSet.BoolVarP(&opts.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic skstr update check"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	opts.MinprobPercent = parseFloatOrWarn(opts.minprobRaw, 1.0, "minprob")
	opts.MinEntropy = parseFloatOrWarn(opts.minentRaw, 0.5, "min-entropy")

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if !opts.DisableUpdateCheck {
		latestVersion, err := updateutils.GetVersionCheckCallback("skstr")()
		if err != nil {
			if opts.Verbose {
				gologger.Error().Msgf("skstr version check failed: %v", err.Error())
			}
		} else {
			gologger.Info().Msgf("Current skstr version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
		}
	}

	return opts
}

// DomainOptions converts the parsed flags into a skstr.Options value for
// NewDriver. Validation of individual field ranges happens inside
// Options.Validate -- this is pure field mapping.
func (o *Options) DomainOptions() skstr.Options {
	return skstr.Options{
		Heuristic:      o.Heuristic,
		Delimiter:      o.Delimiter,
		TailSize:       o.TailSize,
		Agreepct:       o.Agreepct,
		MinprobPercent: o.MinprobPercent,
		MinEntropy:     o.MinEntropy,
		Debug:          o.Debug,
	}
}

// CallString reconstructs the invocation as a single line, for the "-v"
// output's leading "# <call-string>" comment. Grounded in the source's
// global Callstring, built once at startup from argv and then carried
// through to output_pfsa.
func (o *Options) CallString() string {
	return fmt.Sprintf("skstr -H %s -D %q -t %d -p %d -m %.2f -e %.2f -o %s %s",
		o.Heuristic, o.Delimiter, o.TailSize, o.Agreepct, o.MinprobPercent, o.MinEntropy, o.Output, o.Input)
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}

// parseFloatOrWarn parses an -m/-e flag value, falling back to fallback
// with a warning on a malformed value. Range checking (e.g. MinEntropy
// outside [0, 1]) is left to skstr.Options.Validate, which already resets
// out-of-range values the same way.
func parseFloatOrWarn(raw string, fallback float64, flag string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		gologger.Warning().Msgf("invalid -%s value %q, resetting to default %v", flag, raw, fallback)
		return fallback
	}
	return v
}
