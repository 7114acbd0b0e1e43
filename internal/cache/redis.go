// Package cache holds the redis cache for the public vehicle listing. The
// listing is read on every storefront load but changes only on inventory
// writes and booking transitions, so it is cached whole and invalidated on
// any of those.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"rentwheels/internal/models"
)

const vehiclesKey = "cache:vehicles"

type VehicleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVehicleCache(addr, password string, db int, ttl time.Duration) *VehicleCache {
	return &VehicleCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// GetVehicles returns the cached listing, or (nil, nil) on a miss.
func (c *VehicleCache) GetVehicles(ctx context.Context) ([]models.Vehicle, error) {
	data, err := c.client.Get(ctx, vehiclesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vehicles []models.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *VehicleCache) SetVehicles(ctx context.Context, vehicles []models.Vehicle) error {
	payload, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, vehiclesKey, payload, c.ttl).Err()
}

// Invalidate drops the cached listing after any write that can change it.
func (c *VehicleCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, vehiclesKey).Err()
}
