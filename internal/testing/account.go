package testing

import (
	"crypto/sha512"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/nvalette/marketd/internal/core/types"
	"github.com/nvalette/marketd/internal/crypto"
)

// Account represents a test account with keypair and address information.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// ID is the 20-byte account ID derived from the public key.
	ID types.AccountID

	// Address is the hex-encoded account ID.
	Address string

	priv *secp256k1.PrivateKey
}

// NewAccount creates a new test account with a deterministic keypair derived
// from the name. Using the same name always produces the same account,
// making tests reproducible.
func NewAccount(name string) *Account {
	hash := sha512.Sum512([]byte(name))
	priv := secp256k1.PrivKeyFromBytes(hash[:32])

	id := crypto.AccountFromPubKey(priv.PubKey())
	return &Account{
		Name:    name,
		ID:      id,
		Address: id.String(),
		priv:    priv,
	}
}

// PublicKeyHex returns the hex-encoded compressed public key.
func (a *Account) PublicKeyHex() string {
	return crypto.PubKeyHex(a.priv)
}

// Sign returns the hex-encoded signature over the payload.
func (a *Account) Sign(payload []byte) string {
	return crypto.Sign(a.priv, payload)
}
