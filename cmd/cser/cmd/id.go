package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/cser"
	"github.com/spacemeshos/cser/schema"
)

var (
	idSchema string
	idFile   string
	idHash   string
)

// idCmd represents the id command.
var idCmd = &cobra.Command{
	Use:   "id [HEX]",
	Short: "Print the content identifier of a canonical buffer",
	Long: `id decodes the buffer against --schema and prints the hash of its bytes.
Buffers that are not canonical have no identifier and are rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := parseSchema(idSchema)
		if err != nil {
			return err
		}
		data, err := readBuffer(args, idFile)
		if err != nil {
			return err
		}

		id, err := verifiedID(data, typ, limits(cfg), idHash, cser.WithLogger(logger))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(idCmd)

	addBufferFlags(idCmd, &idSchema, &idFile)
	idCmd.Flags().StringVar(&idHash, "hash", "sha256", "hash function (sha256, blake3)")
}

func verifiedID(data []byte, typ *schema.Type, lim schema.Limits, hash string, opts ...cser.OptionFunc) (cser.ID, error) {
	var sum func([]byte) cser.ID
	switch hash {
	case "sha256":
		sum = cser.ContentID
	case "blake3":
		sum = cser.ContentIDBlake3
	default:
		return cser.ID{}, fmt.Errorf("unknown hash %q", hash)
	}

	if _, err := schema.Unmarshal(data, typ, lim, opts...); err != nil {
		return cser.ID{}, fmt.Errorf("buffer is not a canonical %v: %w", typ, err)
	}
	return sum(data), nil
}
