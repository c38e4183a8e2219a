// Command atsctl runs maintenance tasks against the candidate store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"young-ats/config"
	"young-ats/internal/app"
	"young-ats/pkg/logger"
)

// env is opened by the root command before any subcommand runs.
type env struct {
	cfg    *config.Config
	stores *app.Stores
	ucs    *app.Usecases
}

var current env

var rootCmd = &cobra.Command{
	Use:           "atsctl",
	Short:         "Maintenance commands for the Young ATS board",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logger.Init(cfg.LogLevel)

		stores, err := app.OpenStores(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open stores: %w", err)
		}
		// The CLI never signs anyone in.
		cliCfg := *cfg
		cliCfg.SessionSecret = ""
		ucs, err := app.NewUsecases(&cliCfg, stores)
		if err != nil {
			stores.Close()
			return err
		}
		current = env{cfg: cfg, stores: stores, ucs: ucs}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current.stores != nil {
			current.stores.Close()
		}
		logger.Sync()
	},
}

func init() {
	rootCmd.AddCommand(newExportCmd(), newAttentionCmd(), newNormalizeCitiesCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if current.stores != nil {
			current.stores.Close()
		}
		os.Exit(1)
	}
}
