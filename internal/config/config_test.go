package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pathwalk/pathwalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pathwalk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
configVersion: 1
style: windows
server:
  listen: 127.0.0.1:9000
  limits:
    timeout: 250ms
    maxPaths: 8
rateLimit:
  enabled: true
  key: ip_op
  rps: 2
  burst: 4
logging:
  opLog: logs/ops.jsonl
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, StyleWindows, cfg.Style)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.Limits.Timeout)
	assert.Equal(t, 8, cfg.Server.Limits.MaxPaths)
	assert.Equal(t, 4096, cfg.Server.Limits.MaxPathBytes, "unset keys keep defaults")
	assert.Equal(t, 429, cfg.RateLimit.StatusCode)
	assert.Equal(t, "pathwalk> ", cfg.Shell.Prompt)
}

func TestResolvePathUsesConfigDirectory(t *testing.T) {
	if pathwalk.GetStyle() != pathwalk.StyleUnix {
		t.Skip("host paths are not unix style")
	}
	path := writeConfig(t, "configVersion: 1\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, dir, cfg.BaseDir())
	assert.Equal(t, dir+"/logs/ops.jsonl", cfg.ResolvePath("logs/./ops.jsonl"))
	assert.Equal(t, filepath.Dir(dir)+"/x", cfg.ResolvePath("../x"))
	assert.Equal(t, "/etc/hosts", cfg.ResolvePath("/etc//hosts"))
	assert.Equal(t, "", cfg.ResolvePath(""))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "read config")

	_, err = Load(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidateCollectsSortedProblems(t *testing.T) {
	cfg := Default()
	cfg.ConfigVersion = 2
	cfg.Style = "mac"
	cfg.Server.Listen = ""
	cfg.Server.Limits.MaxPaths = 0
	cfg.Server.Limits.MaxCapacity = 0
	cfg.RateLimit = RateLimitConfig{Enabled: true, Key: "user", StatusCode: 200}
	cfg.Logging.Level = "trace"
	cfg.Shell.HistoryLimit = -1

	err := cfg.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"configVersion must be 1",
		"logging.level must be debug|info|warn|error",
		"rateLimit.burst must be > 0",
		"rateLimit.key must be ip|ip_op",
		"rateLimit.rps must be > 0",
		"rateLimit.statusCode must be a 4xx or 5xx code",
		"server.limits.maxCapacity must be > 0",
		"server.limits.maxPaths must be > 0",
		"server.listen invalid: address is required",
		"shell.historyLimit must be >= 0",
		"style must be unix|windows|auto",
	}, verr.Problems)
	assert.Equal(t, "11 validation error(s)", err.Error())
}

func TestValidateTLSAndMetrics(t *testing.T) {
	cfg := Default()
	cfg.baseDir = t.TempDir()
	cfg.Server.TLS = TLSConfig{Enabled: true, KeyFile: "missing.key"}
	cfg.Metrics = MetricsConfig{Enabled: true, Listen: cfg.Server.Listen}

	var verr *ValidationError
	require.True(t, errors.As(cfg.Validate(), &verr))
	require.Len(t, verr.Problems, 3)
	assert.Equal(t, "metrics.listen must differ from server.listen", verr.Problems[0])
	assert.Equal(t, "server.tls.certFile required when tls.enabled is true", verr.Problems[1])
	assert.True(t, strings.HasPrefix(verr.Problems[2], "server.tls.keyFile invalid:"))
}

func TestValidateOpLogLocation(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.baseDir = dir
	cfg.Logging.OpLog = "a/b/c/ops.jsonl"
	assert.NoError(t, cfg.Validate(), "missing parents are created on open")

	cfg.Logging.OpLog = "."
	assert.Error(t, cfg.Validate(), "a directory is not a log file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), nil, 0o600))
	cfg.Logging.OpLog = "file/ops.jsonl"
	assert.Error(t, cfg.Validate())
}

func TestStyleModeResolve(t *testing.T) {
	assert.Equal(t, pathwalk.StyleUnix, StyleUnix.Resolve(`C:\x`))
	assert.Equal(t, pathwalk.StyleWindows, StyleMode("Windows").Resolve("/x"))
	assert.Equal(t, pathwalk.StyleWindows, StyleAuto.Resolve("", `C:\x`, "/y"))
	assert.Equal(t, pathwalk.StyleUnix, StyleAuto.Resolve("/y", `C:\x`))
	assert.Equal(t, pathwalk.GetStyle(), StyleAuto.Resolve())

	assert.True(t, StyleMode("AUTO").Valid())
	assert.False(t, StyleMode("").Valid())
}
