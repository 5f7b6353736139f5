package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.True(t, config.RPC.Enabled)
	assert.Equal(t, "127.0.0.1:5005", config.RPC.Address)
	assert.Equal(t, "pebble", config.Storage.Backend)
	assert.Equal(t, "sqlite", config.History.Driver)
	assert.Equal(t, int64(1000), config.Genesis.DirectTransferFeeUnits)
	assert.False(t, config.SkipSignatureVerification)
	assert.Empty(t, config.ConfigPath())
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()

	content := `
marketplace = "0x0101010101010101010101010101010101010101"
skip_signature_verification = true

[rpc]
address = "0.0.0.0:8080"
timeout_seconds = 10

[storage]
backend = "leveldb"
path = "/tmp/marketd/ledger"

[history]
enabled = false

[genesis]
platform_owner = "0x0202020202020202020202020202020202020202"
direct_transfer_fee_units = 500
`
	path := filepath.Join(tempDir, "marketd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", config.RPC.Address)
	assert.Equal(t, 10, config.RPC.TimeoutSeconds)
	assert.Equal(t, "leveldb", config.Storage.Backend)
	assert.False(t, config.History.Enabled)
	assert.Equal(t, int64(500), config.Genesis.DirectTransferFeeUnits)
	assert.True(t, config.SkipSignatureVerification)
	assert.Equal(t, path, config.ConfigPath())

	// Defaults still apply for sections the file omits.
	assert.Equal(t, "127.0.0.1:6006", config.WebSocket.Address)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MARKETD_RPC_ADDRESS", "127.0.0.1:9999")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", config.RPC.Address)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		config, err := LoadConfig("")
		require.NoError(t, err)
		return config
	}

	config := base()
	config.RPC.Address = "no-port"
	assert.Error(t, ValidateConfig(config))

	config = base()
	config.Storage.Backend = "bolt"
	assert.Error(t, ValidateConfig(config))

	config = base()
	config.History.Driver = "oracle"
	assert.Error(t, ValidateConfig(config))

	config = base()
	config.Genesis.PlatformOwner = "not-an-account"
	assert.Error(t, ValidateConfig(config))

	config = base()
	config.Marketplace = "0x0303030303030303030303030303030303030303"
	assert.NoError(t, ValidateConfig(config))
}
