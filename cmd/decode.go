package cmd

import (
	"fmt"

	"github.com/fiffeek/hyprvirtualdisplays/internal/payload"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/spf13/cobra"
)

var (
	decodeInput        string
	decodeFormat       = &payloadFormatValue{}
	decodeOutput       = newOutputValue("text", "text", "json", "yaml")
	decodeShowUniqueID bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a virtual display payload",
	Long:  `Decode a binary virtual display payload, validate it and print its fields.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(decodeInput, cmd.InOrStdin())
		if err != nil {
			return err
		}
		raw, err := payload.Unmarshal(decodeFormat.format, data)
		if err != nil {
			return err
		}
		cfg, err := virtualdisplay.Decode(raw)
		if err != nil {
			return fmt.Errorf("cant decode %s: %w", decodeInput, err)
		}
		return writeView(cmd.OutOrStdout(), decodeOutput.String(), newDisplayView(cfg, decodeShowUniqueID))
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&decodeInput, "input", "-", "Payload to decode, - for stdin")
	decodeCmd.Flags().Var(decodeFormat, "format", "Payload format, one of [raw, hex, base64]")
	decodeCmd.Flags().Var(decodeOutput, "output", "Output style, one of [text, json, yaml]")
	decodeCmd.Flags().BoolVar(&decodeShowUniqueID, "show-unique-id", false, "Print the unique id instead of hiding it")
}
