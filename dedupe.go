package skstr

import "github.com/pfsalab/skstr/internal/dedupe"

// MaxInMemoryDedupeSize bounds how much raw sample data SampleCounter keeps
// in a plain in-memory map before switching to the disk-backed hybrid map
// backend (default: 100 MB).
var MaxInMemoryDedupeSize = 100 * 1024 * 1024

// CountBackend accumulates frequency counts for the distinct raw training
// strings building a canonical machine (see BuildCanonical) needs, without
// requiring every repeated sample to be held in memory simultaneously.
type CountBackend interface {
	// Add records one more occurrence of elem.
	Add(elem string)
	// IterCallback invokes callback once per distinct element with its
	// accumulated count.
	IterCallback(callback func(elem string, freq int))
	// Cleanup releases any resources (temp files, buffered memory) held by
	// the backend.
	Cleanup()
}

// SampleCounter consumes raw training strings off a channel and tallies
// their frequencies, picking an in-memory or disk-backed CountBackend based
// on the caller's estimate of total input size.
type SampleCounter struct {
	receive <-chan string
	backend CountBackend
}

// Drain consumes every string off the channel, accumulating counts. It
// blocks until the channel is closed.
func (d *SampleCounter) Drain() {
	for {
		val, ok := <-d.receive
		if !ok {
			break
		}
		d.backend.Add(val)
	}
}

// Counts returns every distinct sample seen and its frequency. It must be
// called after Drain returns.
func (d *SampleCounter) Counts() map[string]int {
	out := make(map[string]int)
	d.backend.IterCallback(func(elem string, freq int) {
		out[elem] = freq
	})
	d.backend.Cleanup()
	return out
}

// NewSampleCounter returns a counter reading from ch. If byteLen exceeds
// MaxInMemoryDedupeSize the disk-backed hybrid-map backend is used instead
// of a plain Go map.
func NewSampleCounter(ch <-chan string, byteLen int) *SampleCounter {
	d := &SampleCounter{receive: ch}
	if byteLen <= MaxInMemoryDedupeSize {
		d.backend = dedupe.NewMapBackend()
	} else {
		d.backend = dedupe.NewLevelDBBackend()
	}
	return d
}
