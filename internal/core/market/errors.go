package market

import "errors"

var (
	ErrListingNotFound      = errors.New("listing does not exist")
	ErrListingInactive      = errors.New("listing is not active")
	ErrBadPrice             = errors.New("price per unit must be positive")
	ErrBadQuantity          = errors.New("quantity is invalid")
	ErrInsufficientQuantity = errors.New("requested quantity exceeds remaining listing quantity")
	ErrInsufficientPayment  = errors.New("attached payment is below the required total")
	ErrInsufficientFunds    = errors.New("account balance cannot cover the attached payment")
	ErrNotSeller            = errors.New("caller is not the listing seller")
	ErrNotApproved          = errors.New("marketplace is not transfer-approved by the holder")
	ErrNotPlatformOwner     = errors.New("caller is not the platform owner")
	ErrReentrancy           = errors.New("reentrant settlement call rejected")
	ErrOverflow             = errors.New("price arithmetic overflow")
	ErrBadFee               = errors.New("fee must not be negative")
)
