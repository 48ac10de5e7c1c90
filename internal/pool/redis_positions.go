package pool

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/helper-matching/internal/models"
)

// RedisPositions overlays live helper coordinates from a Redis GEO set onto
// the profiles of an inner provider. Mobile helpers report their position
// through the ingest pipeline; a profile with a fresher live position gets
// ranked by where the helper actually is, not their home base. Redis being
// down just means profiles keep their stored positions.
type RedisPositions struct {
	Inner  Provider
	client *redis.Client
	key    string
}

func NewRedisPositions(inner Provider, addr, password, key string) *RedisPositions {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &RedisPositions{Inner: inner, client: c, key: key}
}

// NewRedisPositionsFromClient wraps an existing client, used by tests.
func NewRedisPositionsFromClient(inner Provider, client *redis.Client, key string) *RedisPositions {
	return &RedisPositions{Inner: inner, client: client, key: key}
}

func (r *RedisPositions) ActiveHelpers(ctx context.Context) ([]models.HelperProfile, error) {
	helpers, err := r.Inner.ActiveHelpers(ctx)
	if err != nil {
		return nil, err
	}
	if len(helpers) == 0 {
		return helpers, nil
	}
	ids := make([]string, len(helpers))
	for i, h := range helpers {
		ids[i] = h.ID
	}
	pos, err := r.client.GeoPos(ctx, r.key, ids...).Result()
	if err != nil {
		return helpers, nil
	}
	for i := range helpers {
		if i < len(pos) && pos[i] != nil {
			helpers[i].Position = &models.Coord{Lat: pos[i].Latitude, Lon: pos[i].Longitude}
		}
	}
	return helpers, nil
}

// Upsert records a live position report.
func (r *RedisPositions) Upsert(ctx context.Context, u models.HelperLocationUpdate) error {
	if err := r.client.GeoAdd(ctx, r.key, &redis.GeoLocation{
		Longitude: u.Loc.Lon,
		Latitude:  u.Loc.Lat,
		Name:      u.HelperID,
	}).Err(); err != nil {
		return err
	}
	return r.client.HSet(ctx, metaKey(u.HelperID), map[string]interface{}{
		"available": strconv.FormatBool(u.Available),
		"updated":   time.Now().Format(time.RFC3339),
	}).Err()
}

func metaKey(id string) string { return "helper:meta:" + id }
