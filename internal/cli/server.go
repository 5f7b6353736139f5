package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nvalette/marketd/internal/config"
	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/market"
	"github.com/nvalette/marketd/internal/core/tx"
	_ "github.com/nvalette/marketd/internal/core/tx/marketplace" // transactor registration
	"github.com/nvalette/marketd/internal/core/types"
	grpcserver "github.com/nvalette/marketd/internal/grpc"
	"github.com/nvalette/marketd/internal/rpc"
	"github.com/nvalette/marketd/internal/storage"
	"github.com/nvalette/marketd/internal/storage/history"
	"github.com/nvalette/marketd/internal/storage/snapshot"
)

// serverCmd starts the marketplace node. This is the default command.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the marketplace settlement daemon",
	Long: `Start the marketd server which provides:
- HTTP JSON-RPC API endpoints
- WebSocket event streams
- Optional gRPC API
- Ledger snapshots and submission history`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServer(cmd, args)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ledger store and snapshot restore.
	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open ledger store: %w", err)
	}
	defer store.Close()
	snapshots := snapshot.NewStore(store)

	l := ledger.New(genesisState(cfg))
	restored, err := snapshots.Restore(ctx, l)
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	if !quiet {
		if restored {
			log.Printf("ledger restored from snapshot, %d transactions applied", l.AppliedCount())
		} else {
			log.Printf("no snapshot found, starting from genesis")
		}
	}

	// Engine.
	m := market.NewMarket(marketplaceID(cfg), nil)
	engine := tx.NewEngine(l, m, tx.EngineConfig{
		SkipSignatureVerification: cfg.SkipSignatureVerification,
	})

	// Submission history.
	var hist *history.Store
	if cfg.History.Enabled {
		histCfg := history.NewConfig()
		histCfg.Driver = cfg.History.Driver
		histCfg.DSN = cfg.History.DSN
		hist, err = history.Open(ctx, histCfg)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer hist.Close()
		engine.SetRecorder(hist)
	}

	group, ctx := errgroup.WithContext(ctx)

	// HTTP JSON-RPC.
	if cfg.RPC.Enabled {
		services := rpc.NewServices(engine, hist, rootCmd.Version)
		timeout := time.Duration(cfg.RPC.TimeoutSeconds) * time.Second
		runHTTPServer(ctx, group, "rpc", &http.Server{
			Addr:         cfg.RPC.Address,
			Handler:      rpc.NewServer(services, timeout),
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		})
		if !quiet {
			log.Printf("json-rpc listening on http://%s/", cfg.RPC.Address)
		}
	}

	// WebSocket event stream.
	if cfg.WebSocket.Enabled {
		ws := rpc.NewWebSocketServer()
		engine.SetPublisher(ws)
		defer ws.Close()
		runHTTPServer(ctx, group, "websocket", &http.Server{
			Addr:    cfg.WebSocket.Address,
			Handler: ws,
		})
		if !quiet {
			log.Printf("event stream listening on ws://%s/", cfg.WebSocket.Address)
		}
	}

	// gRPC.
	if cfg.GRPC.Enabled {
		grpcSrv, err := grpcserver.NewServer(&grpcserver.ServerConfig{
			Address:        cfg.GRPC.Address,
			MaxRecvMsgSize: cfg.GRPC.MaxRecvMsgSize,
			MaxSendMsgSize: cfg.GRPC.MaxSendMsgSize,
		}, engine)
		if err != nil {
			return fmt.Errorf("create grpc server: %w", err)
		}
		group.Go(grpcSrv.Start)
		group.Go(func() error {
			<-ctx.Done()
			grpcSrv.Stop()
			return nil
		})
		if !quiet {
			log.Printf("grpc listening on %s", cfg.GRPC.Address)
		}
	}

	// Periodic snapshots.
	if cfg.Storage.SnapshotEverySeconds > 0 {
		interval := time.Duration(cfg.Storage.SnapshotEverySeconds) * time.Second
		group.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := snapshots.Save(context.Background(), l); err != nil {
						log.Printf("periodic snapshot failed: %v", err)
					}
				}
			}
		})
	}

	err = group.Wait()

	// Best-effort final snapshot on the way out.
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if saveErr := snapshots.Save(saveCtx, l); saveErr != nil {
		log.Printf("final snapshot failed: %v", saveErr)
	} else if !quiet {
		log.Printf("ledger snapshot written, %d transactions applied", l.AppliedCount())
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runHTTPServer serves until ctx is cancelled, then shuts down gracefully.
func runHTTPServer(ctx context.Context, group *errgroup.Group, name string, server *http.Server) {
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
}

func genesisState(cfg *config.Config) *ledger.State {
	var owner types.AccountID
	if cfg.Genesis.PlatformOwner != "" {
		owner, _ = types.ParseAccountID(cfg.Genesis.PlatformOwner)
	}
	return ledger.NewGenesisState(ledger.GenesisConfig{
		PlatformOwner:     owner,
		PlatformBalance:   amount.New(cfg.Genesis.PlatformBalanceUnits),
		DirectTransferFee: amount.New(cfg.Genesis.DirectTransferFeeUnits),
	})
}

// marketplaceID picks the account listings are approved against. Falls back
// to the platform owner when no dedicated marketplace account is configured.
func marketplaceID(cfg *config.Config) types.AccountID {
	if cfg.Marketplace != "" {
		id, _ := types.ParseAccountID(cfg.Marketplace)
		return id
	}
	if cfg.Genesis.PlatformOwner != "" {
		id, _ := types.ParseAccountID(cfg.Genesis.PlatformOwner)
		return id
	}
	return types.AccountID{}
}
