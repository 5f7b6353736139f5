package types

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// AccountID identifies a participant on the ledger. It is derived from the
// account's public key (see internal/crypto).
type AccountID [20]byte

// ZeroAccount is the empty account ID; it is never a valid participant.
var ZeroAccount AccountID

var ErrBadAccountID = errors.New("malformed account ID")

// ParseAccountID decodes a 0x-prefixed, 40-character hex account address.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return id, ErrBadAccountID
	}
	raw, err := hex.DecodeString(s[2:])
	if err != nil || len(raw) != 20 {
		return id, ErrBadAccountID
	}
	copy(id[:], raw)
	return id, nil
}

func (a AccountID) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a AccountID) IsZero() bool {
	return a == ZeroAccount
}

func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountID) UnmarshalText(text []byte) error {
	id, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// ListingID identifies a listing. IDs are allocated monotonically starting
// at 1 and are never reused.
type ListingID uint64

// AssetID identifies an asset within its collection.
type AssetID uint64

// AssetKind selects one of the two asset collections.
type AssetKind uint8

const (
	// Unique assets have exactly one owner at a time.
	Unique AssetKind = iota
	// Divisible assets are tracked as a per-holder balance.
	Divisible
)

func (k AssetKind) String() string {
	switch k {
	case Unique:
		return "unique"
	case Divisible:
		return "divisible"
	default:
		return fmt.Sprintf("AssetKind(%d)", uint8(k))
	}
}

// ParseAssetKind converts the wire form ("unique"/"divisible") back to a kind.
func ParseAssetKind(s string) (AssetKind, error) {
	switch strings.ToLower(s) {
	case "unique":
		return Unique, nil
	case "divisible":
		return Divisible, nil
	}
	return 0, fmt.Errorf("unknown asset kind %q", s)
}

// AssetRef names an asset: which collection it lives in and its ID there.
type AssetRef struct {
	Kind AssetKind `json:"kind"`
	ID   AssetID   `json:"id"`
}

func (r AssetRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}
