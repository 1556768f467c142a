package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/cser/schema"
)

// addBufferFlags registers the flags of commands that read one encoded buffer.
func addBufferFlags(cmd *cobra.Command, schemaExpr, file *string) {
	cmd.Flags().StringVarP(schemaExpr, "schema", "s", "", "type expression of the encoded value (required)")
	cmd.Flags().StringVarP(file, "file", "f", "", "read the encoded buffer from a file instead of a hex argument")
	_ = cmd.MarkFlagRequired("schema")
}

// readBuffer returns the buffer named by file, or else the hex encoded
// buffer given as the only argument.
func readBuffer(args []string, file string) ([]byte, error) {
	switch {
	case file != "" && len(args) > 0:
		return nil, errors.New("a hex argument and --file are mutually exclusive")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		return data, nil
	case len(args) == 1:
		data, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(args[0]), "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid hex buffer: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("expected a hex encoded buffer or --file")
}

func parseSchema(expr string) (*schema.Type, error) {
	typ, err := schema.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid --schema: %w", err)
	}
	return typ, nil
}
