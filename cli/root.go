package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"warehouse-inventory/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Global flag values.
var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:               "inventory",
	Short:             "Warehouse inventory service",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := config.PopulateAppConfig(config.Cfg, configFile, config.Defaults...); err != nil {
		return err
	}

	setupLogging(config.Cfg)

	return nil
}
