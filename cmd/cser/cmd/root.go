package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/cser/config"
)

var (
	Version string
	Commit  string

	cfgFile     string
	printConfig bool

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cser",
	Short: "Work with canonical split-stream encoded buffers",
	Long: `cser inspects, encodes and decodes buffers in the canonical split-stream format.
Values are described by a type expression such as "{id:[32]byte,amount:u64,memo:?string}".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		l, err := buildLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize zap logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if printConfig {
			spew.Fdump(cmd.OutOrStdout(), cfg)
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "path to a yaml, json or toml configuration file")
	flags.Uint64Var(&cfg.MaxBytesLen, "max-bytes-len", cfg.MaxBytesLen, "largest byte string accepted when decoding")
	flags.Uint32Var(&cfg.MaxElements, "max-elements", cfg.MaxElements, "largest sequence accepted when decoding")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output format of decoded values (yaml, json, cbor)")

	rootCmd.Flags().BoolVar(&printConfig, "print-config", false, "print the used config and exit")
}
