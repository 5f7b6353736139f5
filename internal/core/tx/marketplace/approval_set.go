package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

func init() {
	tx.Register(tx.TypeApprovalSet, func() tx.Transaction {
		return &ApprovalSet{BaseTx: *tx.NewBaseTx(tx.TypeApprovalSet, "")}
	})
}

// ApprovalSet grants or revokes transfer approval. Without AssetID it sets
// a blanket operator approval over all of the account's assets; with
// AssetID it sets the single-operator approval slot on one unique asset the
// account owns.
type ApprovalSet struct {
	tx.BaseTx

	// Operator is the hex-encoded account being (dis)approved (required)
	Operator string `json:"Operator"`

	// Approved grants when true, revokes when false
	Approved bool `json:"Approved"`

	// AssetID selects a single unique asset instead of a blanket approval
	AssetID *uint64 `json:"AssetID,omitempty"`
}

// NewApprovalSet creates a blanket operator approval transaction
func NewApprovalSet(account, operator string, approved bool) *ApprovalSet {
	return &ApprovalSet{
		BaseTx:   *tx.NewBaseTx(tx.TypeApprovalSet, account),
		Operator: operator,
		Approved: approved,
	}
}

// Validate validates the ApprovalSet transaction
func (a *ApprovalSet) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	if a.Operator == "" {
		return errors.New("temINVALID: Operator is required")
	}
	if _, err := types.ParseAccountID(a.Operator); err != nil {
		return errors.New("temINVALID: Operator is not a valid account ID")
	}
	if a.Operator == a.Account {
		return errors.New("temSELF_TRANSFER: Operator may not be the account itself")
	}
	return nil
}

// Flatten returns a flat map of transaction fields
func (a *ApprovalSet) Flatten() (map[string]any, error) {
	flat := a.Common.ToMap()
	flat["Operator"] = a.Operator
	flat["Approved"] = a.Approved
	if a.AssetID != nil {
		flat["AssetID"] = *a.AssetID
	}
	return flat, nil
}

// Apply writes the approval.
func (a *ApprovalSet) Apply(ctx *tx.ApplyContext) tx.Result {
	operator, err := types.ParseAccountID(a.Operator)
	if err != nil {
		return tx.TemINVALID
	}

	if a.AssetID == nil {
		ctx.View.SetOperatorApproval(ctx.AccountID, operator, a.Approved)
		return tx.TesSUCCESS
	}

	e, ok := ctx.View.UniqueAsset(types.AssetID(*a.AssetID))
	if !ok {
		return tx.TecNO_ENTRY
	}
	if e.Owner != ctx.AccountID {
		return tx.TecNO_PERMISSION
	}
	if a.Approved {
		e.Approved = operator
	} else {
		e.Approved = types.AccountID{}
	}
	return tx.TesSUCCESS
}
