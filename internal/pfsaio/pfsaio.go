// Package pfsaio reads and writes the line-oriented PFSA text format:
// one arc per line, whitespace-separated `source target symbol frequency`,
// `#`-prefixed comment lines, and a one-character delimiter symbol escaped
// as `\n` in labels when it is itself the newline. Grounded in the source's
// misc.c writepfsa (non-Graphplace branch) and the buildpfsa/yyparse input
// convention described by spec.md §6 (the core receives an already-parsed
// graph; this package plays that external parser's role).
package pfsaio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pfsalab/skstr"
)

// escapedDelim is the textual rendering of the newline delimiter label
// inside a line-format field, where a literal newline can't appear.
const escapedDelim = `\n`

// ParseOptions configures Parse.
type ParseOptions struct {
	// Delimiter is the one-character training-string terminator (`-D`).
	// Defaults to "\n" if empty.
	Delimiter string
	MaxSyms   int
}

// Parse reads a PFSA in the line format from r. Comment lines (leading `#`,
// after trimming leading whitespace) and blank lines are skipped. Returns an
// error naming the line on any malformed line or symbol-table overflow; the
// CLI treats it as fatal -- spec.md §7 treats file format errors as fatal,
// not recoverable.
func Parse(r io.Reader, opts ParseOptions) (*skstr.PFSA, error) {
	delim := opts.Delimiter
	if delim == "" {
		delim = "\n"
	}
	maxSyms := opts.MaxSyms
	if maxSyms <= 0 {
		maxSyms = skstr.MaxSyms
	}

	symtab := skstr.NewSymbolTableWithDelimiter(maxSyms, delim)
	pfsa := skstr.NewPFSA(symtab)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("pfsaio: line %d: expected 4 fields, got %d", lineNo, len(fields))
		}
		src, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("pfsaio: line %d: bad source state %q: %w", lineNo, fields[0], err)
		}
		dst, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("pfsaio: line %d: bad target state %q: %w", lineNo, fields[1], err)
		}
		label := unescape(fields[2], delim)
		freq, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("pfsaio: line %d: bad frequency %q: %w", lineNo, fields[3], err)
		}

		sym, err := symtab.Intern(label)
		if err != nil {
			return nil, fmt.Errorf("pfsaio: line %d: %w", lineNo, err)
		}
		pfsa.AddArc(src, dst, sym, freq)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pfsaio: %w", err)
	}
	return pfsa, nil
}

// ParseCorpus reads a raw training-string corpus from r: one sample per
// line, its symbols whitespace-separated, blank lines and `#`-comments
// skipped. Unlike Parse, the lines are not an already-built arc listing --
// they are the samples themselves, which must be deduplicated into
// frequency counts before the canonical (prefix-tree) machine can be built
// from them. byteLen is the caller's estimate of the corpus size, used to
// pick between skstr's in-memory and disk-backed dedupe backends exactly as
// NewSampleCounter does. Grounded in original_source's buildpfsa, which
// builds the symbol table and delimiter entry first and only then walks the
// sample list; this package's Parse instead plays the role of an already-
// parsed grammar, so ParseCorpus is the supplementary path that actually
// exercises internal/dedupe the way it was built for.
func ParseCorpus(r io.Reader, opts ParseOptions, byteLen int) (*skstr.PFSA, error) {
	delim := opts.Delimiter
	if delim == "" {
		delim = "\n"
	}
	maxSyms := opts.MaxSyms
	if maxSyms <= 0 {
		maxSyms = skstr.MaxSyms
	}

	lines := make(chan string)
	counter := skstr.NewSampleCounter(lines, byteLen)

	var scanErr error
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			lines <- line
		}
		scanErr = scanner.Err()
		close(lines)
	}()
	counter.Drain()
	if scanErr != nil {
		return nil, fmt.Errorf("pfsaio: %w", scanErr)
	}
	counts := counter.Counts()

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	symtab := skstr.NewSymbolTableWithDelimiter(maxSyms, delim)
	samples := make([][]int, 0, len(keys))
	freqs := make([]int, 0, len(keys))
	for _, line := range keys {
		fields := strings.Fields(line)
		seq := make([]int, 0, len(fields))
		for _, f := range fields {
			sym, err := symtab.Intern(f)
			if err != nil {
				return nil, fmt.Errorf("pfsaio: sample %q: %w", line, err)
			}
			seq = append(seq, sym)
		}
		samples = append(samples, seq)
		freqs = append(freqs, counts[line])
	}

	return skstr.BuildCanonical(symtab, samples, freqs), nil
}

func unescape(field, delim string) string {
	if field == escapedDelim && delim == "\n" {
		return "\n"
	}
	return field
}

func escape(label, delim string) string {
	if label == "\n" && delim == "\n" {
		return escapedDelim
	}
	return label
}

// WriteOptions configures Write.
type WriteOptions struct {
	// CallString, when non-empty, is emitted as a leading "# <call-string>"
	// comment line (the "-v" verbose invocation record).
	CallString string
	// Verbose appends state/arc/max-state/MML-cost statistic comment lines
	// after the arc listing.
	Verbose bool
	// MMLCost supplies the verbose output's cost figure; when it is nil the
	// "# mml-cost" line is omitted.
	MMLCost func(*skstr.PFSA) float64
}

// Write emits p in the line format to w. Grounded in the source's
// writepfsa's non-Graphplace branch.
func Write(w io.Writer, p *skstr.PFSA, opts WriteOptions) error {
	bw := bufio.NewWriter(w)
	delim := p.Symtab.Label(skstr.DelimiterSymbol)

	if opts.CallString != "" {
		if _, err := fmt.Fprintf(bw, "# %s\n", opts.CallString); err != nil {
			return err
		}
	}

	for _, n := range p.Nodes() {
		for _, a := range n.Trans {
			label := escape(p.Symtab.Label(a.Sym), delim)
			if _, err := fmt.Fprintf(bw, "%d\t%d\t%s\t%d\n", n.State, a.Target, label, a.Freq); err != nil {
				return err
			}
		}
	}

	if opts.Verbose {
		if _, err := fmt.Fprintf(bw, "# states: %d\n", p.NStates()); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "# arcs: %d\n", p.NArcs()); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "# max-state: %d\n", p.MaxState()); err != nil {
			return err
		}
		if opts.MMLCost != nil {
			if _, err := fmt.Fprintf(bw, "# mml-cost: %.4f\n", opts.MMLCost(p)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
