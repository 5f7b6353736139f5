package config

import "github.com/spf13/viper"

// setDefaults installs the defaults for a standalone development node.
func setDefaults(v *viper.Viper) {
	// RPC defaults
	v.SetDefault("rpc.enabled", true)
	v.SetDefault("rpc.address", "127.0.0.1:5005")
	v.SetDefault("rpc.timeout_seconds", 30)

	// WebSocket defaults
	v.SetDefault("websocket.enabled", true)
	v.SetDefault("websocket.address", "127.0.0.1:6006")

	// gRPC defaults
	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.address", "127.0.0.1:50051")
	v.SetDefault("grpc.max_recv_msg_size", 4*1024*1024)
	v.SetDefault("grpc.max_send_msg_size", 4*1024*1024)

	// Storage defaults
	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.path", "data/ledger")
	v.SetDefault("storage.snapshot_every_seconds", 60)

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "data/history.db")

	// Genesis defaults: one coin of platform balance, fee of 0.001 coin
	v.SetDefault("genesis.platform_balance_units", int64(1_000_000_000_000))
	v.SetDefault("genesis.direct_transfer_fee_units", int64(1000))

	v.SetDefault("skip_signature_verification", false)
}
