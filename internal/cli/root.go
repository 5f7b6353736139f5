// Package cli holds the marketd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	quiet      bool
)

// rootCmd is the base command when marketd is called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "marketd",
	Short: "marketd - marketplace settlement daemon",
	Long: `marketd runs a marketplace settlement node: a ledger of accounts,
unique and divisible assets, fixed-price listings and atomic purchases,
exposed over HTTP JSON-RPC, WebSocket event streams and gRPC.`,
	Version: "0.1.0-dev",
}

// Execute runs the command tree. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
}
