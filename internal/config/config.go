// Package config loads the node configuration from defaults, a TOML file,
// and MARKETD_ environment variables, in that priority order.
package config

import "path/filepath"

// Config is the complete marketd configuration.
type Config struct {
	// Server section
	RPC       RPCConfig       `toml:"rpc" mapstructure:"rpc"`
	WebSocket WebSocketConfig `toml:"websocket" mapstructure:"websocket"`
	GRPC      GRPCConfig      `toml:"grpc" mapstructure:"grpc"`

	// Ledger persistence
	Storage StorageConfig `toml:"storage" mapstructure:"storage"`

	// Submission history
	History HistoryConfig `toml:"history" mapstructure:"history"`

	// Genesis state, used when no snapshot exists
	Genesis GenesisConfig `toml:"genesis" mapstructure:"genesis"`

	// Marketplace is the account listings are approved against.
	Marketplace string `toml:"marketplace" mapstructure:"marketplace"`

	// SkipSignatureVerification disables signature checks on submission.
	// Meant for standalone development nodes only.
	SkipSignatureVerification bool `toml:"skip_signature_verification" mapstructure:"skip_signature_verification"`

	configPath string `toml:"-" mapstructure:"-"`
}

// RPCConfig configures the HTTP JSON-RPC listener.
type RPCConfig struct {
	Enabled        bool   `toml:"enabled" mapstructure:"enabled"`
	Address        string `toml:"address" mapstructure:"address"`
	TimeoutSeconds int    `toml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// WebSocketConfig configures the event stream listener.
type WebSocketConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Address string `toml:"address" mapstructure:"address"`
}

// GRPCConfig configures the gRPC listener.
type GRPCConfig struct {
	Enabled        bool   `toml:"enabled" mapstructure:"enabled"`
	Address        string `toml:"address" mapstructure:"address"`
	MaxRecvMsgSize int    `toml:"max_recv_msg_size" mapstructure:"max_recv_msg_size"`
	MaxSendMsgSize int    `toml:"max_send_msg_size" mapstructure:"max_send_msg_size"`
}

// StorageConfig configures the ledger snapshot store.
type StorageConfig struct {
	// Backend is "pebble" or "leveldb".
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`
	// SnapshotEverySeconds is the periodic snapshot interval; 0 disables
	// periodic snapshots (one is still written on shutdown).
	SnapshotEverySeconds int `toml:"snapshot_every_seconds" mapstructure:"snapshot_every_seconds"`
}

// HistoryConfig configures the submission history database.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Driver  string `toml:"driver" mapstructure:"driver"`
	DSN     string `toml:"dsn" mapstructure:"dsn"`
}

// GenesisConfig seeds a fresh ledger.
type GenesisConfig struct {
	// PlatformOwner receives direct-transfer fees.
	PlatformOwner string `toml:"platform_owner" mapstructure:"platform_owner"`
	// PlatformBalanceUnits is the owner's starting balance.
	PlatformBalanceUnits int64 `toml:"platform_balance_units" mapstructure:"platform_balance_units"`
	// DirectTransferFeeUnits is the fixed fee on direct unique-asset
	// transfers.
	DirectTransferFeeUnits int64 `toml:"direct_transfer_fee_units" mapstructure:"direct_transfer_fee_units"`
}

// ConfigPath returns the path the configuration was loaded from, or empty
// when running on defaults.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() string {
	return "marketd.toml"
}

// ConfigPathFromDir returns the configuration path inside a directory.
func ConfigPathFromDir(dir string) string {
	return filepath.Join(dir, "marketd.toml")
}
