package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spacemeshos/cser"
	"github.com/spacemeshos/cser/config"
	"github.com/spacemeshos/cser/schema"
)

var (
	decodeSchema string
	decodeFile   string
)

// decodeCmd represents the decode command.
var decodeCmd = &cobra.Command{
	Use:   "decode [HEX]",
	Short: "Decode a buffer into YAML, JSON or CBOR",
	Long: `decode reads an encoded buffer, rejects it unless it is canonical and prints the decoded value
in the format selected by --output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := parseSchema(decodeSchema)
		if err != nil {
			return err
		}
		data, err := readBuffer(args, decodeFile)
		if err != nil {
			return err
		}

		value, err := schema.Unmarshal(data, typ, limits(cfg), cser.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to decode buffer: %w", err)
		}
		return writeValue(cmd.OutOrStdout(), value, cfg.Output)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	addBufferFlags(decodeCmd, &decodeSchema, &decodeFile)
}

var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cli: CBOR encoder initialization failed: " + err.Error())
	}
}

func writeValue(w io.Writer, v any, format string) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to write yaml: %w", err)
		}
		return enc.Close()

	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case config.OutputCBOR:
		data, err := cborEncMode.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to write cbor: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
