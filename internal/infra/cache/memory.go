package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// MemoryAvailabilityCache is the single-process fallback used when no Redis
// is configured. Entries are stored serialized so callers never share
// slices with the cache.
type MemoryAvailabilityCache struct {
	mu      sync.Mutex
	entries map[rangeKey]memoryEntry
	gens    map[uint]uint64
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryAvailabilityCache(ttl time.Duration) *MemoryAvailabilityCache {
	return &MemoryAvailabilityCache{
		entries: make(map[rangeKey]memoryEntry),
		gens:    make(map[uint]uint64),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryAvailabilityCache) Get(
	_ context.Context,
	barberID uint,
	from, to time.Time,
) (*domain.AvailabilityResult, bool, error) {

	k := newRangeKey(barberID, from, to)

	c.mu.Lock()
	e, ok := c.entries[k]
	c.mu.Unlock()

	if !ok || !c.now().Before(e.expires) {
		return nil, false, nil
	}

	var result domain.AvailabilityResult
	if err := json.Unmarshal(e.payload, &result); err != nil {
		return nil, false, err
	}
	return &result, true, nil
}

func (c *MemoryAvailabilityCache) Generation(_ context.Context, barberID uint) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[barberID], nil
}

func (c *MemoryAvailabilityCache) Set(
	_ context.Context,
	barberID uint,
	from, to time.Time,
	gen uint64,
	result *domain.AvailabilityResult,
) (bool, error) {

	payload, err := json.Marshal(result)
	if err != nil {
		return false, err
	}

	k := newRangeKey(barberID, from, to)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[barberID] != gen {
		return false, nil
	}
	c.entries[k] = memoryEntry{payload: payload, expires: c.now().Add(c.ttl)}
	return true, nil
}

func (c *MemoryAvailabilityCache) Invalidate(
	_ context.Context,
	barberID uint,
	date time.Time,
) error {

	day := date.Format(timezone.DateLayout)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[barberID]++
	for k := range c.entries {
		if k.BarberID == barberID && k.Covers(day) {
			delete(c.entries, k)
		}
	}
	return nil
}

// Sweep remove entradas expiradas e devolve quantas saíram.
func (c *MemoryAvailabilityCache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *MemoryAvailabilityCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ScheduleSweep registers Sweep on cr under the given cron spec.
func (c *MemoryAvailabilityCache) ScheduleSweep(cr *cron.Cron, spec string, log *zap.Logger) error {
	_, err := cr.AddFunc(spec, func() {
		if n := c.Sweep(); n > 0 {
			log.Debug("availability cache swept", zap.Int("removed", n))
		}
	})
	return err
}

var _ domain.AvailabilityCache = (*MemoryAvailabilityCache)(nil)
