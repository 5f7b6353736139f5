// Package marketplace implements the marketplace transaction types:
// payments, asset minting, approvals, listing lifecycle, settlement and
// direct transfers.
package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/market"
	"github.com/nvalette/marketd/internal/core/tx"
)

// resultFromError maps marketplace and asset errors to result codes.
func resultFromError(err error) tx.Result {
	switch {
	case err == nil:
		return tx.TesSUCCESS
	case errors.Is(err, market.ErrListingNotFound):
		return tx.TecNO_ENTRY
	case errors.Is(err, market.ErrListingInactive):
		return tx.TecINACTIVE_LISTING
	case errors.Is(err, market.ErrBadPrice):
		return tx.TemBAD_PRICE
	case errors.Is(err, market.ErrBadQuantity):
		return tx.TemBAD_QUANTITY
	case errors.Is(err, market.ErrInsufficientQuantity):
		return tx.TecINSUFFICIENT_QUANTITY
	case errors.Is(err, market.ErrInsufficientPayment):
		return tx.TecINSUFFICIENT_PAYMENT
	case errors.Is(err, market.ErrInsufficientFunds):
		return tx.TecINSUFFICIENT_FUNDS
	case errors.Is(err, market.ErrNotSeller):
		return tx.TecNOT_SELLER
	case errors.Is(err, market.ErrNotApproved):
		return tx.TecNO_AUTH
	case errors.Is(err, market.ErrNotPlatformOwner):
		return tx.TecNO_PERMISSION
	case errors.Is(err, market.ErrReentrancy):
		return tx.TecREENTRANCY
	case errors.Is(err, market.ErrOverflow):
		return tx.TecOVERFLOW
	case errors.Is(err, market.ErrBadFee):
		return tx.TemBAD_FEE
	case errors.Is(err, asset.ErrAssetNotFound):
		return tx.TecNO_ENTRY
	case errors.Is(err, asset.ErrNotHeld):
		return tx.TecASSET_NOT_HELD
	case errors.Is(err, asset.ErrBadQuantity):
		return tx.TemBAD_QUANTITY
	case errors.Is(err, asset.ErrRecipientRefused):
		return tx.TecRECIPIENT_REFUSED
	case errors.Is(err, ledger.ErrEntryExists):
		return tx.TecDUPLICATE
	default:
		return tx.TefINTERNAL
	}
}
