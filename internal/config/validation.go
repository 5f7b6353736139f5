package config

import (
	"fmt"
	"net"

	"github.com/nvalette/marketd/internal/core/types"
)

// ValidateConfig checks the loaded configuration for errors.
func ValidateConfig(c *Config) error {
	if c.RPC.Enabled {
		if err := validateAddress("rpc.address", c.RPC.Address); err != nil {
			return err
		}
		if c.RPC.TimeoutSeconds <= 0 {
			return fmt.Errorf("rpc.timeout_seconds must be positive, got %d", c.RPC.TimeoutSeconds)
		}
	}
	if c.WebSocket.Enabled {
		if err := validateAddress("websocket.address", c.WebSocket.Address); err != nil {
			return err
		}
	}
	if c.GRPC.Enabled {
		if err := validateAddress("grpc.address", c.GRPC.Address); err != nil {
			return err
		}
		if c.GRPC.MaxRecvMsgSize <= 0 {
			return fmt.Errorf("grpc.max_recv_msg_size must be positive")
		}
		if c.GRPC.MaxSendMsgSize <= 0 {
			return fmt.Errorf("grpc.max_send_msg_size must be positive")
		}
	}

	switch c.Storage.Backend {
	case "pebble", "leveldb":
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.Storage.SnapshotEverySeconds < 0 {
		return fmt.Errorf("storage.snapshot_every_seconds must be non-negative")
	}

	if c.History.Enabled {
		switch c.History.Driver {
		case "sqlite", "sqlite3", "postgres", "postgresql":
		default:
			return fmt.Errorf("unsupported history driver: %s", c.History.Driver)
		}
		if c.History.DSN == "" {
			return fmt.Errorf("history.dsn is required")
		}
	}

	if c.Genesis.PlatformOwner != "" {
		if _, err := types.ParseAccountID(c.Genesis.PlatformOwner); err != nil {
			return fmt.Errorf("invalid genesis.platform_owner: %w", err)
		}
	}
	if c.Genesis.PlatformBalanceUnits < 0 {
		return fmt.Errorf("genesis.platform_balance_units must be non-negative")
	}
	if c.Genesis.DirectTransferFeeUnits < 0 {
		return fmt.Errorf("genesis.direct_transfer_fee_units must be non-negative")
	}

	if c.Marketplace != "" {
		if _, err := types.ParseAccountID(c.Marketplace); err != nil {
			return fmt.Errorf("invalid marketplace account: %w", err)
		}
	}

	return nil
}

func validateAddress(field, address string) error {
	if address == "" {
		return fmt.Errorf("%s is required", field)
	}
	if _, _, err := net.SplitHostPort(address); err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	return nil
}
