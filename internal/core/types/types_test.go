package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountID(t *testing.T) {
	id, err := ParseAccountID("0x00112233445566778899aabbccddeeff00112233")
	require.NoError(t, err)
	assert.Equal(t, "0x00112233445566778899aabbccddeeff00112233", id.String())
	assert.False(t, id.IsZero())

	for _, bad := range []string{
		"",
		"00112233445566778899aabbccddeeff00112233", // missing prefix
		"0x0011",                   // too short
		"0xzz112233445566778899aabbccddeeff00112233", // not hex
	} {
		_, err := ParseAccountID(bad)
		assert.Error(t, err, bad)
	}
}

func TestAccountIDJSONRoundTrip(t *testing.T) {
	id, err := ParseAccountID("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)

	raw, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"`, string(raw))

	var back AccountID
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, id, back)
}

func TestAssetKind(t *testing.T) {
	assert.Equal(t, "unique", Unique.String())
	assert.Equal(t, "divisible", Divisible.String())

	k, err := ParseAssetKind("Divisible")
	require.NoError(t, err)
	assert.Equal(t, Divisible, k)

	_, err = ParseAssetKind("fungible")
	assert.Error(t, err)

	ref := AssetRef{Kind: Unique, ID: 5}
	assert.Equal(t, "unique/5", ref.String())
}
