package classpath

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/coffee-is-power/jerris/classfile"
)

// DefaultCacheSize bounds the loader cache when no size is given.
const DefaultCacheSize = 256

// Loader reads and parses classes from a Path, keeping recently
// parsed classes in a bounded cache. It is safe for concurrent use.
type Loader struct {
	path  Path
	cache *lru.Cache[string, *classfile.Class]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats reports cache effectiveness counters for a Loader.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// NewLoader builds a Loader over the given path. A size of zero or
// less selects DefaultCacheSize.
func NewLoader(path Path, size int) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *classfile.Class](size)
	if err != nil {
		return nil, err
	}
	return &Loader{path: path, cache: cache}, nil
}

// Load returns the parsed class for a binary name, reading and
// parsing it on a cache miss. The name may use dots or slashes.
func (l *Loader) Load(name string) (*classfile.Class, error) {
	key := normalize(name)
	if c, ok := l.cache.Get(key); ok {
		l.hits.Add(1)
		Logger().Debug("class cache hit", zap.String("class", key))
		return c, nil
	}

	data, err := l.path.Read(key)
	if err != nil {
		return nil, err
	}
	c, err := classfile.Parse(data)
	if err != nil {
		Logger().Debug("class parse failed",
			zap.String("class", key),
			zap.Error(err))
		return nil, fmt.Errorf("classpath: parsing %s: %w", key, err)
	}

	l.cache.Add(key, c)
	l.misses.Add(1)
	Logger().Debug("class loaded",
		zap.String("class", key),
		zap.Int("bytes", len(data)))
	return c, nil
}

// Stats returns a snapshot of the cache counters.
func (l *Loader) Stats() Stats {
	return Stats{
		Hits:   l.hits.Load(),
		Misses: l.misses.Load(),
	}
}
