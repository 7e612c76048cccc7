package cache

import (
	"context"
	"fmt"

	"github.com/pintwise/pintwise/internal/database/types"
)

// PubCache caches per-pub reads. A nil *PubCache always loads.
type PubCache struct {
	cache *Cache
}

// NewPubCache creates a pub cache.
func NewPubCache(cache *Cache) *PubCache {
	return &PubCache{cache: cache}
}

func scheduleKey(pubID int64) string {
	return fmt.Sprintf("pub:%d:schedule", pubID)
}

func amenitiesKey(pubID int64) string {
	return fmt.Sprintf("pub:%d:amenities", pubID)
}

// Schedule returns a pub and its opening hours.
func (p *PubCache) Schedule(
	ctx context.Context, pubID int64, load func(context.Context) (*types.PubSchedule, error),
) (*types.PubSchedule, error) {
	if p == nil {
		return load(ctx)
	}
	return Fetch(ctx, p.cache, scheduleKey(pubID), load)
}

// Amenities returns the canonical amenity flags of a pub.
func (p *PubCache) Amenities(
	ctx context.Context, pubID int64, load func(context.Context) ([]*types.PubAmenity, error),
) ([]*types.PubAmenity, error) {
	if p == nil {
		return load(ctx)
	}
	return Fetch(ctx, p.cache, amenitiesKey(pubID), load)
}

// ForgetSchedule drops the cached schedule of a pub.
func (p *PubCache) ForgetSchedule(ctx context.Context, pubID int64) error {
	if p == nil {
		return nil
	}
	return p.cache.Delete(ctx, scheduleKey(pubID))
}

// ForgetAmenities drops the cached amenity flags of a pub.
func (p *PubCache) ForgetAmenities(ctx context.Context, pubID int64) error {
	if p == nil {
		return nil
	}
	return p.cache.Delete(ctx, amenitiesKey(pubID))
}
