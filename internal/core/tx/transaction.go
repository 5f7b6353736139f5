package tx

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
)

// Common errors
var (
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAccount         = errors.New("invalid account")
	ErrInvalidSequence        = errors.New("invalid sequence")
)

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks if the transaction is well-formed. Implementations
	// prefix the error message with the malformed-code name, e.g.
	// "temBAD_PRICE: price per unit must be positive".
	Validate() error

	// Flatten returns a flat map of all transaction fields for serialization
	Flatten() (map[string]any, error)
}

// Appliable is implemented by transaction types that can apply themselves to
// ledger state. This replaces a central switch statement in the engine.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Common contains fields common to all transaction types
type Common struct {
	// Account is the hex-encoded source account ID (required)
	Account string `json:"Account"`

	// TransactionType is the type name (required)
	TransactionType string `json:"TransactionType"`

	// Sequence is the account sequence number (required)
	Sequence *uint32 `json:"Sequence,omitempty"`

	// SigningPubKey is the hex-encoded compressed public key
	SigningPubKey string `json:"SigningPubKey,omitempty"`

	// TxnSignature is the hex-encoded DER signature over the signing payload
	TxnSignature string `json:"TxnSignature,omitempty"`
}

// Validate validates the common fields
func (c *Common) Validate() error {
	if c.Account == "" {
		return errors.New("temBAD_SRC_ACCOUNT: Account is required")
	}
	if c.TransactionType == "" {
		return errors.New("temINVALID: TransactionType is required")
	}
	return nil
}

// SetSequence sets the sequence number
func (c *Common) SetSequence(seq uint32) {
	c.Sequence = &seq
}

// GetSequence returns the sequence number (0 if not set)
func (c *Common) GetSequence() uint32 {
	if c.Sequence == nil {
		return 0
	}
	return *c.Sequence
}

// ToMap converts common fields to a map
func (c *Common) ToMap() map[string]any {
	m := map[string]any{
		"Account":         c.Account,
		"TransactionType": c.TransactionType,
	}
	if c.Sequence != nil {
		m["Sequence"] = *c.Sequence
	}
	if c.SigningPubKey != "" {
		m["SigningPubKey"] = c.SigningPubKey
	}
	if c.TxnSignature != "" {
		m["TxnSignature"] = c.TxnSignature
	}
	return m
}

// BaseTx provides a base implementation for transactions
type BaseTx struct {
	Common
	txType Type
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common transaction fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the base transaction
func (b *BaseTx) Validate() error {
	return b.Common.Validate()
}

// Flatten returns a flat map of transaction fields
func (b *BaseTx) Flatten() (map[string]any, error) {
	return b.Common.ToMap(), nil
}

// NewBaseTx creates a new base transaction
func NewBaseTx(txType Type, account string) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
		txType: txType,
	}
}

// SigningPayload returns the canonical bytes a signature covers: the
// flattened transaction without the signature field, marshaled with sorted
// keys (encoding/json sorts map keys).
func SigningPayload(t Transaction) ([]byte, error) {
	flat, err := t.Flatten()
	if err != nil {
		return nil, err
	}
	delete(flat, "TxnSignature")
	return json.Marshal(flat)
}

// Hash returns the hex-encoded transaction hash: sha256 over the canonical
// serialization including the signature.
func Hash(t Transaction) (string, error) {
	flat, err := t.Flatten()
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(flat)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
