package tx

// Type represents a transaction type code
type Type uint16

const (
	TypeInvalid Type = 0xFFFF

	TypePayment        Type = 0
	TypeAssetMint      Type = 1
	TypeApprovalSet    Type = 2
	TypeListingCreate  Type = 3
	TypeListingCancel  Type = 4
	TypePurchase       Type = 5
	TypeDirectTransfer Type = 6
	TypeFeeSet         Type = 7
)

// String returns the string name of the transaction type
func (t Type) String() string {
	switch t {
	case TypePayment:
		return "Payment"
	case TypeAssetMint:
		return "AssetMint"
	case TypeApprovalSet:
		return "ApprovalSet"
	case TypeListingCreate:
		return "ListingCreate"
	case TypeListingCancel:
		return "ListingCancel"
	case TypePurchase:
		return "Purchase"
	case TypeDirectTransfer:
		return "DirectTransfer"
	case TypeFeeSet:
		return "FeeSet"
	default:
		return "Invalid"
	}
}

// TypeFromName returns the type code for a transaction type name
func TypeFromName(name string) (Type, bool) {
	switch name {
	case "Payment":
		return TypePayment, true
	case "AssetMint":
		return TypeAssetMint, true
	case "ApprovalSet":
		return TypeApprovalSet, true
	case "ListingCreate":
		return TypeListingCreate, true
	case "ListingCancel":
		return TypeListingCancel, true
	case "Purchase":
		return TypePurchase, true
	case "DirectTransfer":
		return TypeDirectTransfer, true
	case "FeeSet":
		return TypeFeeSet, true
	default:
		return TypeInvalid, false
	}
}
