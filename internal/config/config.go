package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/lsb-steg/internal/model"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LSBSTEG"

// Flag names shared between RegisterFlags and Load.
const (
	FlagBits    = "bits"
	FlagOutput  = "output"
	FlagVerbose = "verbose"
	FlagConfig  = "config"
)

// AppName is the directory name used under the user config directory.
const AppName = "lsb-steg"

// Settings holds the resolved, validated configuration.
type Settings struct {
	// Bits is the number of low bits per colour channel to use.
	Bits model.BitDepth

	// Output selects how command results are rendered.
	Output model.OutputFormat

	// Verbose enables debug logging on stderr.
	Verbose bool

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string
}

// rawSettings mirrors Settings before validation. Field tags are the
// keys used in config files.
type rawSettings struct {
	Bits    int    `mapstructure:"bits"`
	Output  string `mapstructure:"output"`
	Verbose bool   `mapstructure:"verbose"`
}

// RegisterFlags adds the global flags to fs. Defaults here are only
// documentation; the effective defaults are applied in Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.IntP(FlagBits, "b", int(model.DefaultBitDepth), "Low bits per colour channel used for the secret (1-8)")
	fs.StringP(FlagOutput, "o", string(model.OutputText), "Output format: text, json, yaml")
	fs.BoolP(FlagVerbose, "v", false, "Enable verbose output")
	fs.String(FlagConfig, "", "Config file (default: $LSBSTEG_CONFIG or <user config dir>/lsb-steg/config.yaml)")
}

// Load resolves settings using the flags in fs (which may be nil).
//
// An explicitly requested config file (--config or LSBSTEG_CONFIG) must
// exist; the default locations are optional.
func Load(fs *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetDefault(FlagBits, int(model.DefaultBitDepth))
	v.SetDefault(FlagOutput, string(model.OutputText))
	v.SetDefault(FlagVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := ""
	if fs != nil {
		for _, name := range []string{FlagBits, FlagOutput, FlagVerbose} {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
		if f := fs.Lookup(FlagConfig); f != nil {
			explicit = f.Value.String()
		}
	}
	if explicit == "" {
		explicit = os.Getenv(EnvPrefix + "_CONFIG")
	}

	configFile := explicit
	if configFile == "" {
		configFile = findDefaultConfig()
	}
	if configFile != "" {
		if err := readConfigFile(v, configFile); err != nil {
			code := model.ExitInvalidArgument
			if errors.Is(err, os.ErrNotExist) {
				code = model.ExitInputNotFound
			}
			return nil, model.WrapCLIError(code, fmt.Sprintf("failed to load config file %s", configFile), err)
		}
	}

	var raw rawSettings
	if err := v.Unmarshal(&raw); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid configuration", err)
	}

	settings, err := raw.validate()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid configuration", err)
	}
	settings.ConfigFile = configFile
	return settings, nil
}

// validate converts raw values into typed settings.
func (r rawSettings) validate() (*Settings, error) {
	bits := model.BitDepth(r.Bits)
	if err := bits.Validate(); err != nil {
		return nil, err
	}
	output, err := model.ParseOutputFormat(r.Output)
	if err != nil {
		return nil, err
	}
	return &Settings{Bits: bits, Output: output, Verbose: r.Verbose}, nil
}

// DefaultPaths lists the config files searched when none is given
// explicitly, in priority order.
func DefaultPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	base := filepath.Join(dir, AppName)
	return []string{
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
		filepath.Join(base, "config.json"),
		filepath.Join(base, "config.jsonc"),
	}
}

// findDefaultConfig returns the first existing default config file.
func findDefaultConfig() string {
	for _, p := range DefaultPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// readConfigFile loads path into v. JSON files go through jsonc.ToJSON
// so that comments and trailing commas are accepted.
func readConfigFile(v *viper.Viper, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		v.SetConfigType("json")
		return v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data)))
	case ".yaml", ".yml":
		if _, err := os.Stat(path); err != nil {
			return err
		}
		v.SetConfigFile(path)
		return v.ReadInConfig()
	default:
		return fmt.Errorf("unsupported config file extension %q (valid: .yaml, .yml, .json, .jsonc)", filepath.Ext(path))
	}
}
