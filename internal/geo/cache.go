package geo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/example/helper-matching/internal/models"
)

// CachedGeocoder memoizes lookups of an inner geocoder. Request locations
// repeat heavily (the same customers file requests from the same addresses),
// and external geocoding services rate-limit, so a small TTL cache in front
// of the HTTP tier pays for itself quickly.
type CachedGeocoder struct {
	Inner Geocoder

	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	c  models.Coord
	ts time.Time
}

func NewCachedGeocoder(inner Geocoder, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{Inner: inner, store: make(map[string]cacheEntry), ttl: ttl}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (models.Coord, error) {
	key := strings.ToLower(strings.TrimSpace(address))

	g.mu.RLock()
	e, ok := g.store[key]
	g.mu.RUnlock()
	if ok && time.Since(e.ts) <= g.ttl {
		return e.c, nil
	}

	coord, err := g.Inner.Geocode(ctx, address)
	if err != nil {
		return models.Coord{}, err
	}
	g.mu.Lock()
	g.store[key] = cacheEntry{c: coord, ts: time.Now()}
	g.mu.Unlock()
	return coord, nil
}
