package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/cser"
	"github.com/spacemeshos/cser/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		valid  bool
	}{
		{"max bytes len at limit", func(c *config.Config) { c.MaxBytesLen = cser.MaxU56 }, true},
		{"max bytes len beyond limit", func(c *config.Config) { c.MaxBytesLen = cser.MaxU56 + 1 }, false},
		{"zero max elements", func(c *config.Config) { c.MaxElements = 0 }, false},
		{"debug level", func(c *config.Config) { c.LogLevel = "debug" }, true},
		{"unknown level", func(c *config.Config) { c.LogLevel = "chatty" }, false},
		{"json output", func(c *config.Config) { c.Output = config.OutputJSON }, true},
		{"cbor output", func(c *config.Config) { c.Output = config.OutputCBOR }, true},
		{"xml output", func(c *config.Config) { c.Output = "xml" }, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfig()
			tc.modify(cfg)
			if tc.valid {
				require.NoError(t, cfg.Validate())
			} else {
				require.Error(t, cfg.Validate())
			}
		})
	}
}
