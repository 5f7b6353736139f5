package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	payload := []byte(`{"TransactionType":"Purchase","ListingID":1}`)
	sig := Sign(priv, payload)
	pub := PubKeyHex(priv)

	require.NoError(t, Verify(pub, sig, payload))

	// Tampered payload must not verify.
	assert.ErrorIs(t, Verify(pub, sig, append(payload, 'x')), ErrBadSignature)

	// Signature from a different key must not verify.
	other, err := GenerateKey()
	require.NoError(t, err)
	assert.ErrorIs(t, Verify(pub, Sign(other, payload), payload), ErrBadSignature)
}

func TestAccountDerivation(t *testing.T) {
	priv, err := GenerateKey()
	require.NoError(t, err)

	id := AccountFromPubKey(priv.PubKey())
	assert.False(t, id.IsZero())

	// Derivation from the hex form must agree.
	fromHex, err := AccountFromPubKeyHex(PubKeyHex(priv))
	require.NoError(t, err)
	assert.Equal(t, id, fromHex)

	_, err = AccountFromPubKeyHex("not-hex")
	assert.ErrorIs(t, err, ErrBadPublicKey)
}
