package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/cutverse/ai/observability/logging"
	"github.com/hrygo/cutverse/internal/profile"
	"github.com/hrygo/cutverse/internal/version"
	"github.com/hrygo/cutverse/store"
	"github.com/hrygo/cutverse/store/db"
)

var rootCmd = &cobra.Command{
	Use:           "cutverse",
	Short:         `AI writing tools with formatted, progressively revealed output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Only load .env for direct binary execution (not when running as systemd service)
		if !isRunningAsSystemdService() {
			// Try to load .env file from current directory (ignore error if file doesn't exist)
			_ = godotenv.Load()
		}
		return nil
	},
}

func init() {
	viper.SetDefault("mode", "prod")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("port", 28090)
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", "text")

	rootCmd.PersistentFlags().String("mode", "prod", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver (sqlite, postgres)")
	rootCmd.PersistentFlags().String("dsn", "", "database source name(aka. DSN)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	for _, name := range []string{"mode", "data", "driver", "dsn", "log-level", "log-format"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("cutverse")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newFormatCmd(),
		newToolsCmd(),
		newKeyCmd(),
		newAdsCmd(),
		newVersionCmd(),
	)
}

// loadProfile assembles the profile from flags, environment and defaults, and
// installs the logger it describes.
func loadProfile() (*profile.Profile, error) {
	mode := viper.GetString("mode")
	p := &profile.Profile{
		Mode:    mode,
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version.GetCurrentVersion(mode),
	}
	p.FromEnv()
	p.LogLevel = viper.GetString("log-level")
	p.LogFormat = viper.GetString("log-format")

	if _, err := logging.Setup(logging.Options{
		Level:  p.LogLevel,
		Format: logging.Format(p.LogFormat),
	}); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// openStore connects the configured database and prepares its schema.
func openStore(ctx context.Context, p *profile.Profile) (*store.Store, error) {
	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, err
	}
	storeInstance := store.New(dbDriver, p)
	if err := storeInstance.Migrate(ctx); err != nil {
		_ = storeInstance.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	if previous, err := storeInstance.RecordVersion(ctx, p.Version); err != nil {
		slog.Warn("failed to record version", "error", err)
	} else if previous != "" && previous != p.Version {
		slog.Info("upgraded data directory", "from", previous, "to", p.Version)
	}
	return storeInstance, nil
}

// isRunningAsSystemdService detects if the process is running under systemd
func isRunningAsSystemdService() bool {
	return os.Getenv("INVOCATION_ID") != "" || os.Getenv("WATCHDOG_USEC") != ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
