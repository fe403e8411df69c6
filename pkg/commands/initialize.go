package commands

import (
	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

// InitOptions configures InitConfig
type InitOptions struct {
	// Path of the config file to write
	Path string

	// StowDir overrides the default or detected stow dir
	StowDir string

	// Force overwrites an existing file
	Force bool
}

// InitConfig writes a config file built from the defaults.
func InitConfig(rc *types.RunContext, opts InitOptions) (*config.Config, error) {
	log := rc.Logger.With().Str("component", "commands").Logger()
	log.Debug().Str("command", "InitConfig").Str("path", opts.Path).Msg("Executing command")

	if _, err := rc.FS.Stat(opts.Path); err == nil && !opts.Force {
		return nil, errors.New(errors.ErrInvalidInput, "config file already exists, use --force to overwrite").
			WithDetail("path", opts.Path)
	}

	cfg, err := config.Default()
	if err != nil {
		return nil, err
	}
	if opts.StowDir != "" {
		dir, err := paths.Normalize(opts.StowDir)
		if err != nil {
			return nil, err
		}
		cfg.StowDir = dir
	}

	if err := config.Save(rc.FS, cfg, opts.Path); err != nil {
		return nil, err
	}
	cfg.Source = opts.Path

	log.Info().Str("command", "InitConfig").Str("path", opts.Path).Msg("Command finished")
	return cfg, nil
}
