package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/cser/config"
	"github.com/spacemeshos/cser/schema"
)

const envPrefix = "CSER"

// loadConfig fills cfg from, in increasing priority, the config file, the
// CSER_* environment and the command line flags.
func loadConfig(cmd *cobra.Command) error {
	vip := viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	if cfgFile != "" {
		vip.SetConfigFile(cfgFile)
		if err := vip.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindFlags(vip, cmd.Flags()); err != nil {
		return err
	}

	loaded := config.DefaultConfig()
	if err := vip.Unmarshal(loaded); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	*cfg = *loaded
	return nil
}

// bindFlags binds the flags backing config.Config fields, named after their
// mapstructure tags.
func bindFlags(vip *viper.Viper, flags *pflag.FlagSet) error {
	for _, name := range []string{"max-bytes-len", "max-elements", "log-level", "output"} {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag %s is not defined", name)
		}
		if err := vip.BindPFlag(name, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		// stdout carries encoded and decoded data.
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}

func limits(cfg *config.Config) schema.Limits {
	return schema.Limits{
		MaxBytesLen: cfg.MaxBytesLen,
		MaxElements: cfg.MaxElements,
	}
}
