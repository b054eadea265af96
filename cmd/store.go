package cmd

import (
	"fmt"
	"os"

	"github.com/fiffeek/hyprvirtualdisplays/internal/config"
	"github.com/fiffeek/hyprvirtualdisplays/internal/store"
	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	storePath         string
	storeOutput       = newOutputValue("text", "text", "json", "yaml")
	storeShowUniqueID bool
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect the payload store",
	Long:  `Inspect payloads persisted by export. The store location is read from the configuration file unless --store-path is given.`,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored displays",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			entries, err := s.List()
			if err != nil {
				return err
			}
			for _, entry := range entries {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d bytes\n", entry.Name, len(entry.Payload)); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Decode and print a stored display",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			cfg, err := s.Get(args[0])
			if err != nil {
				return err
			}
			return writeView(cmd.OutOrStdout(), storeOutput.String(), newDisplayView(cfg, storeShowUniqueID))
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a stored display",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			if err := s.Delete(args[0]); err != nil {
				return err
			}
			logrus.WithField("display", args[0]).Info("Deleted stored payload")
			return nil
		})
	},
}

func withStore(fn func(*store.Store) error) error {
	path := os.ExpandEnv(storePath)
	if path == "" {
		cfg, err := config.NewConfig(configPath)
		if err != nil {
			return fmt.Errorf("cant read store path from config: %w", err)
		}
		path = *cfg.Get().General.StorePath
	}

	s, err := store.Open(path, virtualdisplay.NewCodec(surface.NewParcelCodec()))
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close store")
		}
	}()
	return fn(s)
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeListCmd, storeGetCmd, storeDeleteCmd)

	storeCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "Path of the payload store, defaults to general.store_path")
	storeGetCmd.Flags().Var(storeOutput, "output", "Output style, one of [text, json, yaml]")
	storeGetCmd.Flags().BoolVar(&storeShowUniqueID, "show-unique-id", false, "Print the unique id instead of hiding it")
}
