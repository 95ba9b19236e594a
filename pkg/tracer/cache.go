package tracer

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/optray/go-ray-optics/pkg/core"
)

// Cache remembers finished traces across animation frames. Entries are
// keyed by scene revision and launch ray, so an animation driver that swaps
// the scene and bumps its revision naturally invalidates stale traces while
// unchanged frames are served from memory.
type Cache struct {
	entries *lru.Cache
}

// NewCache creates a trace cache holding up to size entries
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Len returns the number of cached traces
func (c *Cache) Len() int {
	return c.entries.Len()
}

type cacheKey struct {
	revision       int64
	ox, oy, dx, dy float64
}

// TraceCached returns a cached trace for the launch ray when the scene
// revision still matches, tracing and caching on a miss.
func (t *Tracer) TraceCached(cache *Cache, origin, dir core.Vec2) (*RayTrace, error) {
	unit := dir.Normalize()
	key := cacheKey{
		revision: t.scene.Revision,
		ox:       origin.X,
		oy:       origin.Y,
		dx:       unit.X,
		dy:       unit.Y,
	}
	if cached, ok := cache.entries.Get(key); ok {
		return cached.(*RayTrace), nil
	}
	trace, err := t.Trace(origin, unit)
	if err != nil {
		return nil, err
	}
	cache.entries.Add(key, trace)
	return trace, nil
}
