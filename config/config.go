package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/cser"
)

const (
	MaxBytesLen = cser.MaxU56

	MinMaxElements = 1
)

const (
	DefaultMaxBytesLen = 1 << 20
	DefaultMaxElements = 1 << 16
	DefaultLogLevel    = "info"
	DefaultOutput      = OutputYAML
)

// Output formats for decoded values.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
	OutputCBOR = "cbor"
)

type Config struct {
	// Limits applied when decoding untrusted input against a schema.
	MaxBytesLen uint64 `mapstructure:"max-bytes-len"`
	MaxElements uint32 `mapstructure:"max-elements"`

	LogLevel string `mapstructure:"log-level"`
	Output   string `mapstructure:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxBytesLen: DefaultMaxBytesLen,
		MaxElements: DefaultMaxElements,
		LogLevel:    DefaultLogLevel,
		Output:      DefaultOutput,
	}
}

func (cfg *Config) Validate() error {
	if cfg.MaxBytesLen > MaxBytesLen {
		return fmt.Errorf("invalid `MaxBytesLen`; expected: <= %d, given: %d", uint64(MaxBytesLen), cfg.MaxBytesLen)
	}

	if cfg.MaxElements < MinMaxElements {
		return fmt.Errorf("invalid `MaxElements`; expected: >= %d, given: %d", MinMaxElements, cfg.MaxElements)
	}

	if _, err := cfg.Level(); err != nil {
		return fmt.Errorf("invalid `LogLevel`: %w", err)
	}

	switch cfg.Output {
	case OutputYAML, OutputJSON, OutputCBOR:
	default:
		return fmt.Errorf("invalid `Output`; expected: one of %q, %q, %q, given: %q", OutputYAML, OutputJSON, OutputCBOR, cfg.Output)
	}

	return nil
}

// Level returns the parsed LogLevel.
func (cfg *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(cfg.LogLevel)
}
