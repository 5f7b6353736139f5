package rpc

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/storage/history"
)

// listingCacheSize bounds the number of cached active-listing snapshots.
// Each snapshot is keyed by the applied-transaction counter, so at most one
// entry is live at a time; the rest age out.
const listingCacheSize = 8

// Services holds everything RPC handlers need to answer queries. History is
// optional; handlers surface noHistory when it is nil.
type Services struct {
	Engine  *tx.Engine
	History *history.Store
	Version string

	startTime    time.Time
	listingCache *lru.Cache[uint64, []ListingInfo]
}

// NewServices wires the handler dependencies.
func NewServices(engine *tx.Engine, hist *history.Store, version string) *Services {
	cache, _ := lru.New[uint64, []ListingInfo](listingCacheSize)
	return &Services{
		Engine:       engine,
		History:      hist,
		Version:      version,
		startTime:    time.Now(),
		listingCache: cache,
	}
}

// Uptime reports how long the services have been running.
func (s *Services) Uptime() time.Duration {
	return time.Since(s.startTime)
}
