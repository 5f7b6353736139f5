package rpc

import (
	"encoding/json"

	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/tx"
)

// PingMethod answers liveness probes.
type PingMethod struct{}

func (m *PingMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	return map[string]interface{}{}, nil
}

// ServerInfoMethod reports server and ledger status.
type ServerInfoMethod struct {
	services *Services
}

func (m *ServerInfoMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var (
		listingCount int
		activeCount  int
		nextID       uint64
		fees         ledger.FeeConfig
	)
	m.services.Engine.Ledger().Read(func(s *ledger.State) {
		listingCount = s.ListingCount()
		activeCount = len(s.ActiveListings())
		nextID = uint64(s.NextListingID())
		fees = s.FeeConfig()
	})

	info := map[string]interface{}{
		"build_version":        m.services.Version,
		"uptime":               int64(m.services.Uptime().Seconds()),
		"applied_transactions": m.services.Engine.Ledger().AppliedCount(),
		"listings":             listingCount,
		"active_listings":      activeCount,
		"next_listing_id":      nextID,
		"platform_owner":       fees.PlatformOwner.String(),
		"history_enabled":      m.services.History != nil,
		"supported_types":      typeNames(tx.SupportedTypes()),
	}
	return map[string]interface{}{"info": info}, nil
}

func typeNames(ts []tx.Type) []string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.String())
	}
	return names
}

// VersionMethod reports the build version.
type VersionMethod struct {
	services *Services
}

func (m *VersionMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	return map[string]interface{}{
		"version": m.services.Version,
	}, nil
}

// FeeMethod reports the current direct-transfer fee.
type FeeMethod struct {
	services *Services
}

func (m *FeeMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var fees ledger.FeeConfig
	m.services.Engine.Ledger().Read(func(s *ledger.State) {
		fees = s.FeeConfig()
	})
	return map[string]interface{}{
		"direct_transfer_fee": fees.DirectTransferFee.Units(),
		"platform_owner":      fees.PlatformOwner.String(),
	}, nil
}
