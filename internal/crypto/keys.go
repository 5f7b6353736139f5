// Package crypto provides transaction signing and account-ID derivation.
//
// Accounts are identified by the RIPEMD-160 hash of the SHA-256 hash of the
// signer's compressed secp256k1 public key. Signatures are DER-encoded ECDSA
// over the SHA-256 digest of the canonical signing payload.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/decred/dcrd/crypto/ripemd160"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/nvalette/marketd/internal/core/types"
)

var (
	ErrBadPublicKey = errors.New("malformed public key")
	ErrBadSignature = errors.New("signature verification failed")
)

// GenerateKey creates a new random private key.
func GenerateKey() (*secp256k1.PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// AccountFromPubKey derives the account ID for a public key.
func AccountFromPubKey(pub *secp256k1.PublicKey) types.AccountID {
	sha := sha256.Sum256(pub.SerializeCompressed())
	h := ripemd160.New()
	h.Write(sha[:])

	var id types.AccountID
	copy(id[:], h.Sum(nil))
	return id
}

// AccountFromPubKeyHex derives the account ID for a hex-encoded compressed
// public key.
func AccountFromPubKeyHex(pubHex string) (types.AccountID, error) {
	raw, err := hex.DecodeString(pubHex)
	if err != nil {
		return types.ZeroAccount, ErrBadPublicKey
	}
	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return types.ZeroAccount, ErrBadPublicKey
	}
	return AccountFromPubKey(pub), nil
}

// PubKeyHex returns the hex-encoded compressed public key for a private key.
func PubKeyHex(priv *secp256k1.PrivateKey) string {
	return hex.EncodeToString(priv.PubKey().SerializeCompressed())
}

// Sign signs the SHA-256 digest of payload and returns the DER signature
// hex-encoded.
func Sign(priv *secp256k1.PrivateKey, payload []byte) string {
	digest := sha256.Sum256(payload)
	sig := ecdsa.Sign(priv, digest[:])
	return hex.EncodeToString(sig.Serialize())
}

// Verify checks sigHex against payload for the given hex-encoded compressed
// public key.
func Verify(pubHex, sigHex string, payload []byte) error {
	rawPub, err := hex.DecodeString(pubHex)
	if err != nil {
		return ErrBadPublicKey
	}
	pub, err := secp256k1.ParsePubKey(rawPub)
	if err != nil {
		return ErrBadPublicKey
	}

	rawSig, err := hex.DecodeString(sigHex)
	if err != nil {
		return ErrBadSignature
	}
	sig, err := ecdsa.ParseDERSignature(rawSig)
	if err != nil {
		return ErrBadSignature
	}

	digest := sha256.Sum256(payload)
	if !sig.Verify(digest[:], pub) {
		return ErrBadSignature
	}
	return nil
}
