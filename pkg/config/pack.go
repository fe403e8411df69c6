package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/types"
)

// LoadPackageConfig reads the optional .slinky.toml at a package root. A
// missing file yields the zero config.
func LoadPackageConfig(fs types.FS, packageRoot string) (types.PackageConfig, error) {
	var cfg types.PackageConfig

	path := filepath.Join(packageRoot, types.PackageConfigFile)
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.PathError(err, "read", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, errors.ErrConfigParse, "invalid package config").
			WithDetail("path", path)
	}
	return cfg, nil
}
