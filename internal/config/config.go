// Package config resolves runtime settings for the jsonsql CLI.
//
// Precedence, lowest first: built-in defaults, the config file, JSONSQL_*
// environment variables, explicitly set command-line flags.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/jsonsql/internal/source"
)

// EnvPrefix is prepended to every environment variable, e.g. JSONSQL_FORMAT.
const EnvPrefix = "JSONSQL"

// DefaultConfigName is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigName = "jsonsql"

// DefaultPrompt is the REPL prompt.
const DefaultPrompt = "Enter SQL query (or type 'exit' to quit): "

// Keys shared by flags, env vars and config file entries.
const (
	KeyConfig       = "config"
	KeyFormat       = "format"
	KeyVerbose      = "verbose"
	KeyPrompt       = "prompt"
	KeySourceFormat = "source-format"
	KeyTable        = "table"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Config is the resolved runtime configuration.
type Config struct {
	Format       string
	Verbose      bool
	Prompt       string
	SourceFormat source.Format
	Table        string

	// File is the config file that was read, or "" if none.
	File string
}

// Load resolves configuration. Flags in fs named after the Key constants
// are bound; a flag only overrides lower layers when it was set explicitly.
// fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyPrompt, DefaultPrompt)
	v.SetDefault(KeySourceFormat, "")
	v.SetDefault(KeyTable, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for _, key := range []string{KeyConfig, KeyFormat, KeyVerbose, KeyPrompt, KeySourceFormat, KeyTable} {
			if f := fs.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		Format:  v.GetString(KeyFormat),
		Verbose: v.GetBool(KeyVerbose),
		Prompt:  v.GetString(KeyPrompt),
		Table:   v.GetString(KeyTable),
		File:    v.ConfigFileUsed(),
	}

	if !slices.Contains(ValidFormats, cfg.Format) {
		return nil, fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, ValidFormats)
	}

	sf, err := source.ParseFormat(v.GetString(KeySourceFormat))
	if err != nil {
		return nil, fmt.Errorf("invalid source format: %w", err)
	}
	cfg.SourceFormat = sf

	return cfg, nil
}

// readConfigFile reads an explicit config file, which must exist, or the
// default one from the working directory, which is optional.
func readConfigFile(v *viper.Viper) error {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
