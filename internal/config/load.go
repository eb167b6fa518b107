package config

import (
	"os"

	"github.com/pathwalk/pathwalk"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "resolve config path")
	}
	host := pathwalk.GetStyle()
	abs := host.Absolute(wd, path)
	cfg.baseDir = host.Normalize(host.Dirname(abs))

	return cfg, nil
}

// resolvePath makes p absolute against the directory of the config file.
// Paths are interpreted in the host style.
func (c *Config) resolvePath(p string) string {
	if p == "" {
		return ""
	}
	host := pathwalk.GetStyle()
	if host.IsAbsolute(p) {
		return host.Normalize(p)
	}
	base := c.baseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return host.Normalize(p)
		}
		base = wd
	}
	return host.Absolute(base, p)
}
