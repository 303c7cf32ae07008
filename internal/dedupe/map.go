package dedupe

import "runtime/debug"

// MapBackend tallies frequencies in a plain in-memory map.
type MapBackend struct {
	storage map[string]int
}

func NewMapBackend() *MapBackend {
	return &MapBackend{storage: map[string]int{}}
}

func (m *MapBackend) Add(elem string) {
	m.storage[elem]++
}

func (m *MapBackend) IterCallback(callback func(elem string, freq int)) {
	for k, v := range m.storage {
		callback(k, v)
	}
}

func (m *MapBackend) Cleanup() {
	m.storage = nil
	// By default GC does not release buffered/allocated memory since there
	// is always a possibility of needing it again immediately, and it
	// releases memory in chunks. debug.FreeOSMemory forces GC to release
	// allocated memory at once.
	debug.FreeOSMemory()
}
