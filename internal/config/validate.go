package config

import (
	"fmt"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/pathwalk/pathwalk"
	"github.com/pathwalk/pathwalk/internal/ratelimit"
	"github.com/pkg/errors"
)

type ValidationError struct {
	Problems []string
}

func (v *ValidationError) Add(format string, args ...any) {
	v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s)", len(v.Problems))
}

func (c *Config) Validate() error {
	v := &ValidationError{}

	if c.ConfigVersion != 1 {
		v.Add("configVersion must be 1")
	}

	if !c.Style.Valid() {
		v.Add("style must be unix|windows|auto")
	}

	if err := validateListen(c.Server.Listen); err != nil {
		v.Add("server.listen invalid: %v", err)
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" {
			v.Add("server.tls.certFile required when tls.enabled is true")
		} else if err := requireFile(c.resolvePath(c.Server.TLS.CertFile)); err != nil {
			v.Add("server.tls.certFile invalid: %v", err)
		}
		if c.Server.TLS.KeyFile == "" {
			v.Add("server.tls.keyFile required when tls.enabled is true")
		} else if err := requireFile(c.resolvePath(c.Server.TLS.KeyFile)); err != nil {
			v.Add("server.tls.keyFile invalid: %v", err)
		}
	}

	limits := c.Server.Limits
	if limits.MaxBodyBytes <= 0 {
		v.Add("server.limits.maxBodyBytes must be > 0")
	}
	if limits.MaxPathBytes <= 0 {
		v.Add("server.limits.maxPathBytes must be > 0")
	}
	if limits.MaxPaths <= 0 {
		v.Add("server.limits.maxPaths must be > 0")
	}
	if limits.MaxCapacity <= 0 {
		v.Add("server.limits.maxCapacity must be > 0")
	}
	if limits.Timeout <= 0 {
		v.Add("server.limits.timeout must be > 0")
	}

	if c.RateLimit.Enabled {
		if !ratelimit.KeyType(c.RateLimit.Key).Valid() {
			v.Add("rateLimit.key must be ip|ip_op")
		}
		if c.RateLimit.RPS <= 0 {
			v.Add("rateLimit.rps must be > 0")
		}
		if c.RateLimit.Burst <= 0 {
			v.Add("rateLimit.burst must be > 0")
		}
		if c.RateLimit.StatusCode < 400 || c.RateLimit.StatusCode > 599 {
			v.Add("rateLimit.statusCode must be a 4xx or 5xx code")
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		v.Add("logging.level must be debug|info|warn|error")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		v.Add("logging.format must be json|console")
	}
	if c.Logging.OpLog != "" {
		if err := ensureWritable(c.resolvePath(c.Logging.OpLog)); err != nil {
			v.Add("logging.opLog invalid: %v", err)
		}
	}

	if c.Metrics.Enabled {
		if err := validateListen(c.Metrics.Listen); err != nil {
			v.Add("metrics.listen invalid: %v", err)
		} else if c.Metrics.Listen == c.Server.Listen {
			v.Add("metrics.listen must differ from server.listen")
		}
	}

	if c.Shell.HistoryLimit < 0 {
		v.Add("shell.historyLimit must be >= 0")
	}

	if len(v.Problems) > 0 {
		sort.Strings(v.Problems)
		return v
	}
	return nil
}

func validateListen(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("address is required")
	}
	if _, err := net.ResolveTCPAddr("tcp", addr); err != nil {
		return err
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.Errorf("%s is a directory", path)
	}
	return nil
}

// ensureWritable checks that a file can be created at path. Missing parent
// directories are fine as long as the closest existing one is writable.
func ensureWritable(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.Errorf("%s is a directory", path)
	}

	host := pathwalk.GetStyle()
	dir := host.Normalize(host.Dirname(path))
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return errors.Errorf("%s is not a directory", dir)
			}
			break
		}
		if !os.IsNotExist(err) {
			return err
		}
		parent := host.Normalize(host.Dirname(dir))
		if parent == dir || parent == "" {
			return err
		}
		dir = parent
	}

	file, err := os.CreateTemp(dir, "pathwalk-validate-*")
	if err != nil {
		return err
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
