package tx

import "fmt"

// Result represents a transaction result code
type Result int

// Transaction result codes, organized by category: tes, tec, tef, tem, ter
const (
	// tesSUCCESS (0-99)
	TesSUCCESS Result = 0

	// tec codes (100-199)
	// The transaction was well-formed and authorized against the current
	// state but the operation itself could not be completed.
	TecNO_PERMISSION          Result = 100
	TecNOT_SELLER             Result = 101
	TecNO_AUTH                Result = 102
	TecINACTIVE_LISTING       Result = 103
	TecINSUFFICIENT_QUANTITY  Result = 104
	TecASSET_NOT_HELD         Result = 105
	TecINSUFFICIENT_PAYMENT   Result = 106
	TecINSUFFICIENT_FUNDS     Result = 107
	TecRECIPIENT_REFUSED      Result = 108
	TecREENTRANCY             Result = 109
	TecNO_ENTRY               Result = 110
	TecDUPLICATE              Result = 111
	TecOVERFLOW               Result = 112

	// tef codes (-199 to -100)
	// The transaction can never succeed in its current form.
	TefINTERNAL Result = -192
	TefPAST_SEQ Result = -190

	// tem codes (-299 to -200)
	// The transaction is malformed.
	TemMALFORMED       Result = -299
	TemBAD_AMOUNT      Result = -298
	TemBAD_FEE         Result = -297
	TemBAD_PRICE       Result = -296
	TemBAD_QUANTITY    Result = -295
	TemBAD_ASSET       Result = -294
	TemBAD_SIGNATURE   Result = -293
	TemBAD_SRC_ACCOUNT Result = -292
	TemSELF_TRANSFER   Result = -291
	TemINVALID         Result = -290

	// ter codes (-99 to -1)
	// The transaction could not be applied now but may apply later.
	TerNO_ACCOUNT Result = -96
	TerPRE_SEQ    Result = -95
)

// String returns the canonical code name
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecNO_PERMISSION:
		return "tecNO_PERMISSION"
	case TecNOT_SELLER:
		return "tecNOT_SELLER"
	case TecNO_AUTH:
		return "tecNO_AUTH"
	case TecINACTIVE_LISTING:
		return "tecINACTIVE_LISTING"
	case TecINSUFFICIENT_QUANTITY:
		return "tecINSUFFICIENT_QUANTITY"
	case TecASSET_NOT_HELD:
		return "tecASSET_NOT_HELD"
	case TecINSUFFICIENT_PAYMENT:
		return "tecINSUFFICIENT_PAYMENT"
	case TecINSUFFICIENT_FUNDS:
		return "tecINSUFFICIENT_FUNDS"
	case TecRECIPIENT_REFUSED:
		return "tecRECIPIENT_REFUSED"
	case TecREENTRANCY:
		return "tecREENTRANCY"
	case TecNO_ENTRY:
		return "tecNO_ENTRY"
	case TecDUPLICATE:
		return "tecDUPLICATE"
	case TecOVERFLOW:
		return "tecOVERFLOW"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TefPAST_SEQ:
		return "tefPAST_SEQ"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_AMOUNT:
		return "temBAD_AMOUNT"
	case TemBAD_FEE:
		return "temBAD_FEE"
	case TemBAD_PRICE:
		return "temBAD_PRICE"
	case TemBAD_QUANTITY:
		return "temBAD_QUANTITY"
	case TemBAD_ASSET:
		return "temBAD_ASSET"
	case TemBAD_SIGNATURE:
		return "temBAD_SIGNATURE"
	case TemBAD_SRC_ACCOUNT:
		return "temBAD_SRC_ACCOUNT"
	case TemSELF_TRANSFER:
		return "temSELF_TRANSFER"
	case TemINVALID:
		return "temINVALID"
	case TerNO_ACCOUNT:
		return "terNO_ACCOUNT"
	case TerPRE_SEQ:
		return "terPRE_SEQ"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (operation failed) code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsTer returns true if this is a ter (retry) code
func (r Result) IsTer() bool {
	return r >= -99 && r <= -1
}

// ShouldRetry returns true if the transaction should be retried later
func (r Result) ShouldRetry() bool {
	return r.IsTer()
}

// IsApplied returns true if the transaction changed the ledger. Every
// failing code leaves the ledger exactly as it was, so only tesSUCCESS
// applies.
func (r Result) IsApplied() bool {
	return r.IsSuccess()
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecNO_PERMISSION:
		return "The account is not permitted to perform this operation."
	case TecNOT_SELLER:
		return "Only the listing seller may cancel it."
	case TecNO_AUTH:
		return "The marketplace is not transfer-approved for this asset."
	case TecINACTIVE_LISTING:
		return "The listing is not active."
	case TecINSUFFICIENT_QUANTITY:
		return "Requested quantity exceeds the remaining listing quantity."
	case TecINSUFFICIENT_PAYMENT:
		return "Attached payment is below the required total."
	case TecINSUFFICIENT_FUNDS:
		return "Account balance cannot cover the attached payment."
	case TecASSET_NOT_HELD:
		return "The account does not hold the asset."
	case TecRECIPIENT_REFUSED:
		return "The recipient refused receipt of the asset."
	case TecREENTRANCY:
		return "Reentrant settlement attempt rejected."
	case TecNO_ENTRY:
		return "The referenced entry does not exist."
	case TecDUPLICATE:
		return "The entry already exists."
	case TecOVERFLOW:
		return "Amount arithmetic overflow."
	case TemBAD_AMOUNT:
		return "Can only send positive amounts."
	case TemBAD_FEE:
		return "Invalid fee, must not be negative."
	case TemBAD_PRICE:
		return "Price per unit must be positive."
	case TemBAD_QUANTITY:
		return "Quantity is invalid."
	case TemBAD_ASSET:
		return "Asset reference is invalid."
	case TemSELF_TRANSFER:
		return "Destination may not be source."
	case TemINVALID:
		return "The transaction is ill-formed."
	case TemBAD_SIGNATURE:
		return "Invalid signature."
	case TemBAD_SRC_ACCOUNT:
		return "Invalid source account."
	case TerNO_ACCOUNT:
		return "The source account does not exist."
	case TerPRE_SEQ:
		return "Sequence number is ahead of the account."
	case TefPAST_SEQ:
		return "Sequence number has already passed."
	case TefINTERNAL:
		return "Internal processing error."
	default:
		return r.String()
	}
}
