package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/cser"
	"github.com/spacemeshos/cser/schema"
)

var inspectSchema string

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Show the stream layout of encoded buffers",
	Long: `inspect splits every given buffer into its byte stream, bit stream and length trailer.
With --schema each buffer is also decoded and checked to be canonical.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var typ *schema.Type
		if inspectSchema != "" {
			var err error
			if typ, err = parseSchema(inspectSchema); err != nil {
				return err
			}
		}

		layouts, err := inspectFiles(cmd.Context(), args, typ, limits(cfg), logger)
		if err != nil {
			return err
		}
		renderLayouts(cmd.OutOrStdout(), layouts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectSchema, "schema", "s", "", "type expression to verify the buffers against")
}

type layout struct {
	Path    string
	Size    int
	Bytes   int
	Bits    int
	Trailer int
	Err     error
}

// inspectFiles reads and inspects every path concurrently. Failing to read a
// file aborts; a buffer that fails to decode is reported in its layout.
func inspectFiles(ctx context.Context, paths []string, typ *schema.Type, lim schema.Limits, logger *zap.Logger) ([]layout, error) {
	layouts := make([]layout, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			layouts[i] = inspectBuffer(path, data, typ, lim, logger)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return layouts, nil
}

func inspectBuffer(path string, data []byte, typ *schema.Type, lim schema.Limits, logger *zap.Logger) layout {
	l := layout{Path: path, Size: len(data)}

	bits, bytes, err := cser.Unpack(data)
	if err != nil {
		l.Err = err
		return l
	}
	l.Bytes = len(bytes)
	l.Bits = len(bits)
	l.Trailer = len(data) - len(bytes) - len(bits)

	if typ != nil {
		_, l.Err = schema.Unmarshal(data, typ, lim, cser.WithLogger(logger.With(zap.String("path", path))))
	}
	return l
}

func renderLayouts(w io.Writer, layouts []layout) {
	data := make([][]string, 0, len(layouts))
	for _, l := range layouts {
		status := "ok"
		if l.Err != nil {
			status = l.Err.Error()
		}
		data = append(data, []string{
			l.Path,
			bytefmt.ByteSize(uint64(l.Size)),
			strconv.Itoa(l.Bytes),
			strconv.Itoa(l.Bits),
			strconv.Itoa(l.Trailer),
			status,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"file", "size", "byte stream", "bit stream", "trailer", "status"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}
