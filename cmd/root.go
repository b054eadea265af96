// Package cmd provides the entry point for the hyprvirtualdisplays application.
// It builds, encodes and exports virtual display configurations.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Version    = "dev"
	Commit     = "none"
	BuildDate  = "unknown"
	BinaryName = "hyprvirtualdisplays"
)

var (
	debug                bool
	verbose              bool
	enableJSONLogsFormat bool
	configPath           string
	rootCmd              = &cobra.Command{
		Use:              BinaryName,
		Short:            "Build and export virtual display configurations",
		Long:             "HyprVirtualDisplays validates virtual display configurations, encodes them into their binary payload and keeps exported payloads in sync with the configuration file.",
		Version:          fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		PersistentPreRun: setupLogger,
		SilenceErrors:    true,
		SilenceUsage:     true,
	}
)

func Execute() {
	err := rootCmd.Execute()
	if errors.Is(err, context.Canceled) {
		logrus.WithError(err).Info("Context cancelled, exiting")
		return
	}
	if errors.Is(err, errs.ErrHyprNotRunning) {
		logrus.Warn(`Displays with mirror_monitor are resolved through Hyprland IPC.
Run inside a Hyprland session, or replace mirror_monitor with display_id_to_mirror.`)
		logrus.WithError(err).Fatal("Is Hyprland running?")
		return
	}
	if errors.Is(err, errs.ErrMalformed) {
		logrus.WithError(err).Fatal("Payload is malformed")
		return
	}
	if err != nil {
		logrus.WithError(err).Fatal("Command failed")
	}
	logrus.Debug("Exiting...")
}

func setupLogger(cmd *cobra.Command, args []string) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if verbose {
		logrus.SetReportCaller(true)
	}
	logrus.SetOutput(os.Stderr)

	if enableJSONLogsFormat {
		logrus.SetFormatter(&logrus.JSONFormatter{
			DisableTimestamp: false,
			TimestampFormat:  time.RFC3339Nano,
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: false,
			DisableColors:    false,
			TimestampFormat:  time.RFC3339Nano,
			FullTimestamp:    true,
			ForceQuote:       true,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				fn := filepath.Base(f.Function)
				file := fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
				return fn, file
			},
		})
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"$HOME/.config/hyprvirtualdisplays/config.toml",
		"Path to configuration file",
	)
	rootCmd.PersistentFlags().BoolVar(&enableJSONLogsFormat, "enable-json-logs-format", false, "Enable structured logging")
}
