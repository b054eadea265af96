package cmd

import (
	"github.com/fiffeek/hyprvirtualdisplays/internal/config"
	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file for syntax errors and check that every display builds.`,
	Run: func(cmd *cobra.Command, args []string) {
		logrus.WithField("config_path", configPath).Debug("Validating configuration")

		cfg, err := config.NewConfig(configPath)
		if err != nil {
			utils.PrettyPrintError(err)
			logrus.Fatal("Configuration validation failed")
			return
		}

		logrus.WithField("displays", len(cfg.Get().Displays)).Info("Configuration is valid")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
