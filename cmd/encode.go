package cmd

import (
	"fmt"
	"os"

	"github.com/fiffeek/hyprvirtualdisplays/internal/payload"
	"github.com/fiffeek/hyprvirtualdisplays/internal/surface"
	"github.com/fiffeek/hyprvirtualdisplays/internal/utils"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	encodeName              string
	encodeWidth             int32
	encodeHeight            int32
	encodeDensityDpi        int32
	encodeFlags             []string
	encodeExtraFlags        int32
	encodeUniqueID          string
	encodeDisplayIDToMirror int32
	encodeSurfaceName       string
	encodeSurfaceHandle     int64
	encodeFormat            = &payloadFormatValue{}
	encodeOutput            string
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a virtual display configuration from flags",
	Long: `Build a virtual display configuration from the given flags and write its binary payload.

Only flags that are passed are set on the builder; everything else takes its default:
no flags, no surface, no unique id and the default display as the display to mirror.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := virtualdisplay.NewBuilder(encodeName, encodeWidth, encodeHeight, encodeDensityDpi)
		if err != nil {
			return fmt.Errorf("invalid display: %w", err)
		}

		flags, err := virtualdisplay.ParseFlags(encodeFlags)
		if err != nil {
			return err
		}
		flags |= virtualdisplay.Flags(encodeExtraFlags)
		if cmd.Flags().Changed("flags") || cmd.Flags().Changed("extra-flags") {
			b.SetFlags(flags)
		}
		if cmd.Flags().Changed("unique-id") {
			b.SetUniqueID(encodeUniqueID)
		}
		if cmd.Flags().Changed("display-id-to-mirror") {
			b.SetDisplayIDToMirror(encodeDisplayIDToMirror)
		}
		if cmd.Flags().Changed("surface-name") {
			b.SetSurface(&surface.Ref{Name: encodeSurfaceName, Handle: encodeSurfaceHandle})
		}

		cfg, err := b.Build()
		if err != nil {
			return fmt.Errorf("invalid display: %w", err)
		}
		logrus.WithField("display", cfg.String()).Debug("Built display")

		raw, err := virtualdisplay.Encode(cfg)
		if err != nil {
			return fmt.Errorf("cant encode display: %w", err)
		}
		contents, err := payload.Marshal(encodeFormat.format, raw)
		if err != nil {
			return err
		}

		if encodeOutput == "-" {
			_, err := cmd.OutOrStdout().Write(contents)
			return err
		}
		if err := utils.WriteAtomic(os.ExpandEnv(encodeOutput), contents); err != nil {
			return fmt.Errorf("cant write payload: %w", err)
		}
		logrus.WithFields(logrus.Fields{"output": encodeOutput, "bytes": len(raw)}).Info("Payload written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVar(&encodeName, "name", "", "Name of the virtual display")
	encodeCmd.Flags().Int32Var(&encodeWidth, "width", 0, "Width in pixels")
	encodeCmd.Flags().Int32Var(&encodeHeight, "height", 0, "Height in pixels")
	encodeCmd.Flags().Int32Var(&encodeDensityDpi, "density-dpi", 0, "Density in dpi")
	for _, required := range []string{"name", "width", "height", "density-dpi"} {
		_ = encodeCmd.MarkFlagRequired(required)
	}
	encodeCmd.Flags().StringSliceVar(
		&encodeFlags,
		"flags",
		nil,
		"Virtual display flags, any of "+virtualdisplay.KnownFlagNames(),
	)
	encodeCmd.Flags().Int32Var(&encodeExtraFlags, "extra-flags", 0, "Raw flag bits ORed into --flags")
	encodeCmd.Flags().StringVar(&encodeUniqueID, "unique-id", "", "Unique identifier of the display")
	encodeCmd.Flags().Int32Var(
		&encodeDisplayIDToMirror,
		"display-id-to-mirror",
		virtualdisplay.DefaultDisplay,
		"Id of the display to mirror",
	)
	encodeCmd.Flags().StringVar(&encodeSurfaceName, "surface-name", "", "Name of the surface to render into")
	encodeCmd.Flags().Int64Var(&encodeSurfaceHandle, "surface-handle", 0, "Handle of the surface to render into")
	encodeCmd.Flags().Var(encodeFormat, "format", "Payload format, one of [raw, hex, base64]")
	encodeCmd.Flags().StringVar(&encodeOutput, "output", "-", "Where to write the payload, - for stdout")
}
