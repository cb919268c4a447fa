package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-StudioBookingService/internal/config"
	"github.com/m04kA/SMC-StudioBookingService/pkg/logger"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "studio",
		Short:         "Tattoo studio booking service: slot capacity, conflicts and agent appointments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMigrateCmd(&configPath))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig also pins time.Local to the studio zone so every date and
// "now" comparison happens in studio time
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	time.Local = cfg.Location()
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	var opts []logger.Option
	if strings.EqualFold(cfg.Logs.Format, "json") {
		opts = append(opts, logger.WithJSON())
	}
	if cfg.Logs.File != "" {
		opts = append(opts, logger.WithRotation(cfg.Logs.MaxSizeMB, cfg.Logs.MaxBackups, cfg.Logs.MaxAgeDays, cfg.Logs.Compress))
	}
	return logger.New(cfg.Logs.File, cfg.Logs.Level, opts...)
}
