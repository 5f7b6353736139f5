package rpc

import (
	"encoding/json"

	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

// ListingInfo is the JSON shape of one listing.
type ListingInfo struct {
	ListingID    uint64 `json:"listing_id"`
	Seller       string `json:"seller"`
	AssetKind    string `json:"asset_kind"`
	AssetID      uint64 `json:"asset_id"`
	Quantity     uint64 `json:"quantity"`
	PricePerUnit int64  `json:"price_per_unit"`
	Active       bool   `json:"active"`
	CreatedSeq   uint64 `json:"created_seq"`
}

func listingInfo(l ledger.Listing) ListingInfo {
	return ListingInfo{
		ListingID:    uint64(l.ID),
		Seller:       l.Seller.String(),
		AssetKind:    l.Ref.Kind.String(),
		AssetID:      uint64(l.Ref.ID),
		Quantity:     l.Quantity,
		PricePerUnit: l.PricePerUnit.Units(),
		Active:       l.Active,
		CreatedSeq:   l.CreatedSeq,
	}
}

// ListingMethod returns one listing by ID, active or not.
type ListingMethod struct {
	services *Services
}

type listingParams struct {
	ListingID uint64 `json:"listing_id"`
}

func (m *ListingMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p listingParams
	if params == nil {
		return nil, RpcErrorInvalidParams("Missing listing_id field")
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, RpcErrorInvalidParams("Invalid params: " + err.Error())
	}
	if p.ListingID == 0 {
		return nil, RpcErrorInvalidParams("Missing listing_id field")
	}

	var (
		l     ledger.Listing
		found bool
	)
	m.services.Engine.Ledger().Read(func(s *ledger.State) {
		l, found = s.Listing(types.ListingID(p.ListingID))
	})
	if !found {
		return nil, RpcErrorListingNotFound(p.ListingID)
	}

	return map[string]interface{}{"listing": listingInfo(l)}, nil
}

// ActiveListingsMethod enumerates active listings. Snapshots are cached per
// applied-transaction counter so repeated polling between transactions never
// re-walks the arena.
type ActiveListingsMethod struct {
	services *Services
}

func (m *ActiveListingsMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	applied := m.services.Engine.Ledger().AppliedCount()

	infos, ok := m.services.listingCache.Get(applied)
	if !ok {
		m.services.Engine.Ledger().Read(func(s *ledger.State) {
			for _, l := range s.ActiveListings() {
				infos = append(infos, listingInfo(l))
			}
		})
		if infos == nil {
			infos = []ListingInfo{}
		}
		m.services.listingCache.Add(applied, infos)
	}

	return map[string]interface{}{
		"listings": infos,
		"count":    len(infos),
	}, nil
}

// AssetInfoMethod returns the state of one asset: owner and approval for a
// unique asset, supply and holder balances for a divisible one.
type AssetInfoMethod struct {
	services *Services
}

type assetInfoParams struct {
	AssetKind string `json:"asset_kind"`
	AssetID   uint64 `json:"asset_id"`
}

func (m *AssetInfoMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p assetInfoParams
	if params == nil {
		return nil, RpcErrorInvalidParams("Missing asset_kind field")
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, RpcErrorInvalidParams("Invalid params: " + err.Error())
	}
	kind, err := types.ParseAssetKind(p.AssetKind)
	if err != nil {
		return nil, RpcErrorInvalidParams(err.Error())
	}
	ref := types.AssetRef{Kind: kind, ID: types.AssetID(p.AssetID)}

	var (
		result map[string]interface{}
		found  bool
	)
	m.services.Engine.Ledger().Read(func(s *ledger.State) {
		switch kind {
		case types.Unique:
			var e ledger.UniqueAssetEntry
			if e, found = s.UniqueAsset(ref.ID); found {
				asset := map[string]interface{}{
					"asset_kind": kind.String(),
					"asset_id":   uint64(e.ID),
					"owner":      e.Owner.String(),
				}
				if !e.Approved.IsZero() {
					asset["approved"] = e.Approved.String()
				}
				if e.MetadataURI != "" {
					asset["metadata_uri"] = e.MetadataURI
				}
				result = map[string]interface{}{"asset": asset}
			}
		case types.Divisible:
			var e ledger.DivisibleAssetEntry
			if e, found = s.DivisibleAsset(ref.ID); found {
				holders := make(map[string]uint64, len(e.Balances))
				for holder, balance := range e.Balances {
					holders[holder.String()] = balance
				}
				asset := map[string]interface{}{
					"asset_kind": kind.String(),
					"asset_id":   uint64(e.ID),
					"supply":     e.Supply,
					"holders":    holders,
				}
				if e.MetadataURI != "" {
					asset["metadata_uri"] = e.MetadataURI
				}
				result = map[string]interface{}{"asset": asset}
			}
		}
	})
	if !found {
		return nil, RpcErrorAssetNotFound(ref.String())
	}
	return result, nil
}
