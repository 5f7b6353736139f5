package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

func init() {
	tx.Register(tx.TypeAssetMint, func() tx.Transaction {
		return &AssetMint{BaseTx: *tx.NewBaseTx(tx.TypeAssetMint, "")}
	})
}

// AssetMint creates a new asset. A unique asset is owned by the minter; a
// divisible asset's full supply is credited to the minter.
type AssetMint struct {
	tx.BaseTx

	// AssetKind is "unique" or "divisible" (required)
	AssetKind string `json:"AssetKind"`

	// AssetID is the identifier for the new asset (required)
	AssetID uint64 `json:"AssetID"`

	// Supply is the initial supply, divisible assets only
	Supply uint64 `json:"Supply,omitempty"`

	// MetadataURI points at off-ledger metadata (optional)
	MetadataURI string `json:"MetadataURI,omitempty"`
}

// NewAssetMint creates a new AssetMint transaction
func NewAssetMint(account string, kind types.AssetKind, assetID types.AssetID, supply uint64) *AssetMint {
	return &AssetMint{
		BaseTx:    *tx.NewBaseTx(tx.TypeAssetMint, account),
		AssetKind: kind.String(),
		AssetID:   uint64(assetID),
		Supply:    supply,
	}
}

// Validate validates the AssetMint transaction
func (m *AssetMint) Validate() error {
	if err := m.BaseTx.Validate(); err != nil {
		return err
	}
	kind, err := types.ParseAssetKind(m.AssetKind)
	if err != nil {
		return errors.New("temBAD_ASSET: AssetKind must be unique or divisible")
	}
	if kind == types.Divisible && m.Supply == 0 {
		return errors.New("temBAD_QUANTITY: Supply must be positive for divisible assets")
	}
	if kind == types.Unique && m.Supply != 0 {
		return errors.New("temBAD_QUANTITY: Supply is not allowed for unique assets")
	}
	return nil
}

// Flatten returns a flat map of transaction fields
func (m *AssetMint) Flatten() (map[string]any, error) {
	flat := m.Common.ToMap()
	flat["AssetKind"] = m.AssetKind
	flat["AssetID"] = m.AssetID
	if m.Supply != 0 {
		flat["Supply"] = m.Supply
	}
	if m.MetadataURI != "" {
		flat["MetadataURI"] = m.MetadataURI
	}
	return flat, nil
}

// Apply mints the asset.
func (m *AssetMint) Apply(ctx *tx.ApplyContext) tx.Result {
	kind, err := types.ParseAssetKind(m.AssetKind)
	if err != nil {
		return tx.TemBAD_ASSET
	}

	id := types.AssetID(m.AssetID)
	switch kind {
	case types.Unique:
		err = asset.MintUnique(ctx.View, id, ctx.AccountID, m.MetadataURI)
	case types.Divisible:
		err = asset.MintDivisible(ctx.View, id, ctx.AccountID, m.Supply, m.MetadataURI)
	}
	if err != nil {
		return resultFromError(err)
	}
	return tx.TesSUCCESS
}
