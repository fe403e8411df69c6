package config

import (
	_ "embed"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/logging"
	"github.com/arthur-debert/slinky/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix of environment overrides
const EnvPrefix = "SLINKY_"

// LoadOptions tunes Load
type LoadOptions struct {
	// Path is an explicit config file. When set it must exist.
	Path string

	// Overrides are applied last, keyed by dotted koanf path
	Overrides map[string]interface{}

	// DefaultsOnly skips the config file and the environment
	DefaultsOnly bool
}

// rawBytesProvider feeds embedded bytes into koanf
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read()")
}

// Default returns the built-in configuration with paths expanded.
func Default() (*Config, error) {
	return Load(LoadOptions{DefaultsOnly: true})
}

// Load builds the configuration from, in increasing priority: embedded
// defaults, the config file, SLINKY_* environment variables and overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	source := ""
	if !opts.DefaultsOnly {
		path, explicit := opts.Path, opts.Path != ""
		if !explicit {
			path = paths.ConfigFilePath()
		}
		path = paths.ExpandHome(path)

		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse config file").
					WithDetail("path", path)
			}
			source = path
			logger.Debug().Str("path", path).Msg("loaded config file")
		} else if explicit {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "config file not found").
				WithDetail("path", path)
		}

		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	cfg.Source = source

	if err := cfg.finalize(source == ""); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps SLINKY_SECRETS__REDACT_IN_PLACE to secrets.redact_in_place
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// finalize expands paths, fills derived defaults and validates.
func (c *Config) finalize(detectStowDir bool) error {
	c.StowDir = paths.ExpandHome(c.StowDir)
	c.TargetDir = paths.ExpandHome(c.TargetDir)

	// Without a config file the default stow dir is only a guess, so try
	// the usual locations when it does not exist.
	if detectStowDir {
		if _, err := os.Stat(c.StowDir); err != nil {
			if dir, ok := paths.DetectStowDir(paths.HomeDir()); ok {
				c.StowDir = dir
			}
		}
	}

	if c.Secrets.VaultPath == "" {
		c.Secrets.VaultPath = paths.DefaultVaultPath()
	}
	c.Secrets.VaultPath = paths.ExpandHome(c.Secrets.VaultPath)
	for i, f := range c.Secrets.Files {
		c.Secrets.Files[i] = paths.ExpandHome(f)
	}

	return c.Validate()
}

// Validate checks the fields every command relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StowDir) == "" {
		return errors.New(errors.ErrInvalidInput, "stow_dir cannot be empty")
	}
	if strings.TrimSpace(c.TargetDir) == "" {
		return errors.New(errors.ErrInvalidInput, "target_dir cannot be empty")
	}
	if c.Secrets.KDF.Time == 0 || c.Secrets.KDF.MemoryKiB == 0 || c.Secrets.KDF.Threads == 0 {
		return errors.New(errors.ErrInvalidInput, "secrets.kdf parameters must be positive")
	}
	return nil
}
