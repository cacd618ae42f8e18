package calendars

import (
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/warp/region-engine/calendar"
)

// =============================================================================
// ZONES - Time zone id -> *time.Location
// =============================================================================

// zoneCache loads IANA zones once per id. The process-local zone is never
// used: every region names its zone explicitly.
type zoneCache struct {
	aliases map[string]string

	mu   sync.RWMutex
	locs map[string]*time.Location
}

func newZoneCache(aliases map[string]string) *zoneCache {
	return &zoneCache{aliases: aliases, locs: make(map[string]*time.Location)}
}

func (z *zoneCache) load(r calendar.Region) (*time.Location, error) {
	id := strings.TrimSpace(r.TimeZone)
	if id == "" || strings.EqualFold(id, "local") {
		return nil, calendar.NewRegionError(r, "time_zone", calendar.ErrUnknownTimeZone, nil)
	}
	if target, ok := z.aliases[strings.ToLower(id)]; ok {
		id = target
	}

	z.mu.RLock()
	loc, ok := z.locs[id]
	z.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, calendar.NewRegionError(r, "time_zone", calendar.ErrUnknownTimeZone, err)
	}

	z.mu.Lock()
	z.locs[id] = loc
	z.mu.Unlock()
	return loc, nil
}
