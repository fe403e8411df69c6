package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigSave, "failed to encode configuration")
	}
	return data, nil
}

// Save writes the configuration to path atomically.
func Save(fs types.FS, c *Config, path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := fs.AtomicWrite(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to write configuration").
			WithDetail("path", path)
	}
	return nil
}
