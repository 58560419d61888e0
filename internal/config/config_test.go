package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worldgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
world:
  seed: 99
  rules_path: rules.yaml
metrics:
  addr: ":9000"
telemetry:
  enabled: true
  service_name: gen
  sample_ratio: 0.25
logging:
  level: debug
  dir: logs
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(99), cfg.World.GetSeed())
	assert.Equal(t, "rules.yaml", cfg.World.RulesPath)
	assert.Equal(t, ":9000", cfg.Metrics.GetAddr())
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "gen", cfg.Telemetry.GetServiceName())
	assert.Equal(t, 0.25, cfg.Telemetry.GetSampleRatio())
	assert.Equal(t, "debug", cfg.Logging.GetLevel())
	assert.Equal(t, "logs", cfg.Logging.Dir)
}

func TestLoad_ProjectConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "worldgen.yaml"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1234), cfg.World.GetSeed())
	assert.Equal(t, "configs/rules.yaml", cfg.World.RulesPath)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_ZeroSeedIsExplicit(t *testing.T) {
	t.Setenv("WORLDGEN_SEED", "555")
	cfg, err := Load(writeConfig(t, "world:\n  seed: 0\n"))
	require.NoError(t, err)

	assert.Equal(t, uint64(0), cfg.World.GetSeed(), "Явный ноль в файле важнее env")
}

func TestLoad_EnvPath(t *testing.T) {
	t.Setenv("WORLDGEN_CONFIG", writeConfig(t, "world:\n  seed: 7\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.World.GetSeed())
}

func TestLoad_NoPath(t *testing.T) {
	t.Setenv("WORLDGEN_CONFIG", "")
	t.Setenv("WORLDGEN_SEED", "")
	t.Setenv("WORLDGEN_METRICS_ADDR", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed, cfg.World.GetSeed())
	assert.Equal(t, DefaultMetricsAddr, cfg.Metrics.GetAddr())
	assert.Equal(t, DefaultServiceName, cfg.Telemetry.GetServiceName())
	assert.Equal(t, DefaultSampleRatio, cfg.Telemetry.GetSampleRatio())
	assert.Equal(t, DefaultLogLevel, cfg.Logging.GetLevel())
}

func TestLoad_EnvFallbacks(t *testing.T) {
	t.Setenv("WORLDGEN_SEED", "4242")
	t.Setenv("WORLDGEN_METRICS_ADDR", "127.0.0.1:9999")

	cfg := Default()
	assert.Equal(t, uint64(4242), cfg.World.GetSeed())
	assert.Equal(t, "127.0.0.1:9999", cfg.Metrics.GetAddr())

	t.Setenv("WORLDGEN_SEED", "не число")
	assert.Equal(t, DefaultSeed, cfg.World.GetSeed())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world: [\n"))
	assert.Error(t, err)
}

func TestTelemetryConfig_SampleRatioClamped(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{{-1, 0}, {0, 0}, {0.5, 0.5}, {3, 1}} {
		in := tc.in
		cfg := TelemetryConfig{SampleRatio: &in}
		assert.Equal(t, tc.want, cfg.GetSampleRatio(), "sample_ratio=%v", tc.in)
	}
}
