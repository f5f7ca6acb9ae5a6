package handlers

import (
	"strings"
	"sync"
	"time"
)

// Dashboard responses are cheap to rebuild but hit on every filter change;
// a short TTL cache keeps repeated renders from rereading the data files.
type dashboardCacheEntry struct {
	value     any
	expiresAt time.Time
}

const dashboardCacheMaxEntries = 200

var (
	dashboardCacheMu sync.Mutex
	dashboardCache   = map[string]dashboardCacheEntry{}
)

func dashboardCacheKey(prefix string, parts ...string) string {
	segments := make([]string, 0, 1+len(parts))
	segments = append(segments, prefix)
	segments = append(segments, parts...)
	return strings.Join(segments, "|")
}

func getDashboardCache(key string) (any, bool) {
	dashboardCacheMu.Lock()
	defer dashboardCacheMu.Unlock()

	entry, ok := dashboardCache[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(dashboardCache, key)
		return nil, false
	}
	return entry.value, true
}

func setDashboardCache(key string, value any, ttl time.Duration) {
	dashboardCacheMu.Lock()
	defer dashboardCacheMu.Unlock()

	dashboardCache[key] = dashboardCacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	if len(dashboardCache) > dashboardCacheMaxEntries {
		dashboardCache = map[string]dashboardCacheEntry{}
	}
}

func invalidateDashboardCache(prefixes ...string) {
	dashboardCacheMu.Lock()
	defer dashboardCacheMu.Unlock()

	if len(prefixes) == 0 {
		dashboardCache = map[string]dashboardCacheEntry{}
		return
	}
	for key := range dashboardCache {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix+"|") || key == prefix {
				delete(dashboardCache, key)
				break
			}
		}
	}
}
