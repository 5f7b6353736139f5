package market

import (
	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/types"
)

// Market bundles the marketplace components that share one asset adapter
// and one marketplace identity.
type Market struct {
	Marketplace types.AccountID

	Adapter    *asset.Adapter
	Hooks      *asset.HookSet
	Registry   *Registry
	Settlement *Settlement
	Fees       *FeeOracle
}

// NewMarket builds the component suite around the given marketplace
// identity. A nil hook set gets an empty one.
func NewMarket(marketplace types.AccountID, hooks *asset.HookSet) *Market {
	if hooks == nil {
		hooks = asset.NewHookSet()
	}
	adapter := asset.NewAdapter(hooks)
	return &Market{
		Marketplace: marketplace,
		Adapter:     adapter,
		Hooks:       hooks,
		Registry:    NewRegistry(marketplace, adapter),
		Settlement:  NewSettlement(adapter),
		Fees:        NewFeeOracle(adapter),
	}
}
