package config

import (
	"strings"
	"time"

	"github.com/pathwalk/pathwalk"
)

type Config struct {
	ConfigVersion int             `yaml:"configVersion"`
	Style         StyleMode       `yaml:"style"`
	Server        ServerConfig    `yaml:"server"`
	RateLimit     RateLimitConfig `yaml:"rateLimit"`
	Logging       LoggingConfig   `yaml:"logging"`
	Metrics       MetricsConfig   `yaml:"metrics"`
	Shell         ShellConfig     `yaml:"shell"`

	baseDir string `yaml:"-"`
}

type ServerConfig struct {
	Listen string    `yaml:"listen"`
	TLS    TLSConfig `yaml:"tls"`
	Limits Limits    `yaml:"limits"`
}

type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"certFile"`
	KeyFile  string `yaml:"keyFile"`
}

type Limits struct {
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
	MaxPathBytes int           `yaml:"maxPathBytes"`
	MaxPaths     int           `yaml:"maxPaths"`
	MaxCapacity  int           `yaml:"maxCapacity"`
	Timeout      time.Duration `yaml:"timeout"`
}

type RateLimitConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Key        string  `yaml:"key"`
	RPS        float64 `yaml:"rps"`
	Burst      int     `yaml:"burst"`
	StatusCode int     `yaml:"statusCode"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	OpLog  string `yaml:"opLog"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

type ShellConfig struct {
	HistoryFile  string `yaml:"historyFile"`
	HistoryLimit int    `yaml:"historyLimit"`
	Prompt       string `yaml:"prompt"`
}

// StyleMode is a configured style. Besides the two path styles it may be
// "auto", which guesses the style from the inputs of each operation.
type StyleMode string

const (
	StyleUnix    StyleMode = "unix"
	StyleWindows StyleMode = "windows"
	StyleAuto    StyleMode = "auto"
)

func (m StyleMode) Valid() bool {
	switch StyleMode(strings.ToLower(string(m))) {
	case StyleUnix, StyleWindows, StyleAuto:
		return true
	}
	return false
}

// Resolve picks the style for one operation. In auto mode the first
// non-empty input decides; with no usable input the host style is used.
func (m StyleMode) Resolve(inputs ...string) pathwalk.Style {
	switch StyleMode(strings.ToLower(string(m))) {
	case StyleUnix:
		return pathwalk.StyleUnix
	case StyleWindows:
		return pathwalk.StyleWindows
	}
	for _, in := range inputs {
		if in != "" {
			return pathwalk.GuessStyle(in)
		}
	}
	return pathwalk.GetStyle()
}

// Default returns the configuration used when no file is given, and the
// base every loaded file is decoded onto.
func Default() *Config {
	return &Config{
		ConfigVersion: 1,
		Style:         StyleAuto,
		Server: ServerConfig{
			Listen: "127.0.0.1:8765",
			Limits: Limits{
				MaxBodyBytes: 1 << 20,
				MaxPathBytes: 4096,
				MaxPaths:     64,
				MaxCapacity:  1 << 16,
				Timeout:      5 * time.Second,
			},
		},
		RateLimit: RateLimitConfig{
			Key:        "ip",
			RPS:        50,
			Burst:      100,
			StatusCode: 429,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9765",
		},
		Shell: ShellConfig{
			HistoryLimit: 500,
			Prompt:       "pathwalk> ",
		},
	}
}

func (c *Config) BaseDir() string {
	return c.baseDir
}

func (c *Config) ResolvePath(path string) string {
	return c.resolvePath(path)
}
