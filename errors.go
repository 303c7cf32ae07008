package skstr

import (
	"fmt"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// errf builds a tagged error for this package, matching the
// errorutil.NewWithTag convention the rest of the ambient stack uses at API
// boundaries.
func errf(format string, args ...interface{}) error {
	return errorutil.NewWithTag("skstr", format, args...)
}

// fatalf reports an unrecoverable invariant violation and terminates the
// process. This package's fatal conditions (state-limit overflow, a
// duplicate or missing state, an unknown heuristic name) go through this,
// never a silent recovery. Symbol-table overflow is returned as an errf
// error instead, and malformed input and MAXSTR overflow are reported fatal
// by the CLI and internal/kstrings respectively.
func fatalf(format string, args ...interface{}) {
	gologger.Fatal().Msgf(fmt.Sprintf(format, args...))
}
