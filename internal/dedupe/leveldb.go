package dedupe

import (
	"encoding/binary"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hmap/store/hybrid"
)

// LevelDBBackend tallies frequencies in a disk-backed hybrid map, for
// sample sets too large to count entirely in memory. Each value is an
// 8-byte big-endian count, read-modify-written on every Add -- acceptable
// here since sample counting is a one-shot preprocessing pass, not a hot
// path the driver itself runs repeatedly.
type LevelDBBackend struct {
	storage *hybrid.HybridMap
}

func NewLevelDBBackend() *LevelDBBackend {
	l := &LevelDBBackend{}
	db, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		gologger.Fatal().Msgf("failed to create temp dir for skstr sample counting: %v", err)
	}
	l.storage = db
	return l
}

func (l *LevelDBBackend) Add(elem string) {
	var count uint64
	if v, ok := l.storage.Get(elem); ok {
		count = binary.BigEndian.Uint64(v)
	}
	count++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, count)
	if err := l.storage.Set(elem, buf); err != nil {
		gologger.Error().Msgf("sample counting: leveldb: got %v while writing %v", err, elem)
	}
}

func (l *LevelDBBackend) IterCallback(callback func(elem string, freq int)) {
	l.storage.Scan(func(k, v []byte) error {
		callback(string(k), int(binary.BigEndian.Uint64(v)))
		return nil
	})
}

func (l *LevelDBBackend) Cleanup() {
	_ = l.storage.Close()
}
