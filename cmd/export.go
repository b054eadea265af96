package cmd

import (
	"context"
	"fmt"

	"github.com/fiffeek/hyprvirtualdisplays/internal/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	watch                bool
	dryRun               bool
	disableHypr          bool
	disableStore         bool
	disableAutoHotReload bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export payloads of every configured virtual display",
	Long: `Build every display from the configuration file, write its payload into the destination
directory and persist it in the payload store.

With --watch the command keeps running: changes to the configuration file and SIGUSR1 trigger a new export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.WithField("version", Version).Debug("Starting export")
		ctx, cancel := context.WithCancelCause(context.Background())
		defer cancel(context.Canceled)

		application, err := app.NewApplication(ctx, cancel, &app.Options{
			ConfigPath:           configPath,
			DryRun:               dryRun,
			DisableHypr:          disableHypr,
			DisableStore:         disableStore,
			DisableAutoHotReload: disableAutoHotReload,
		})
		if err != nil {
			return fmt.Errorf("cant create application: %w", err)
		}
		defer application.Close()

		if !watch {
			if err := application.RunOnce(ctx); err != nil {
				return fmt.Errorf("error while running: %w", err)
			}
			return nil
		}

		return application.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Show what would be done without making changes",
	)
	exportCmd.Flags().BoolVar(
		&watch,
		"watch",
		false,
		"Keep running and export again on config changes or SIGUSR1",
	)
	exportCmd.Flags().BoolVar(
		&disableHypr,
		"disable-hypr",
		false,
		"Do not connect to Hyprland IPC, displays with mirror_monitor fail to build",
	)
	exportCmd.Flags().BoolVar(
		&disableStore,
		"disable-store",
		false,
		"Do not persist payloads in the store",
	)
	exportCmd.Flags().BoolVar(
		&disableAutoHotReload,
		"disable-auto-hot-reload",
		false,
		"Disable automatic hot reload (no file watchers)",
	)
}
