package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
worker:
  name: printer
  poll_interval: 50ms
  shutdown_timeout: 1m
queue:
  url: redis://example:6380
  heartbeat_interval: 15s
signals:
  endpoints:
    - localhost:2379
  namespace: fleet
  dial_timeout: 2s
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "worker.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "printer", cfg.Worker.GetName())
	assert.Equal(t, 50*time.Millisecond, cfg.Worker.GetPollInterval())
	assert.Equal(t, time.Minute, cfg.Worker.GetShutdownTimeout())
	assert.Equal(t, "redis://example:6380", cfg.Queue.GetURL())
	assert.Equal(t, 15*time.Second, cfg.Queue.GetHeartbeatInterval())
	assert.Equal(t, []string{"localhost:2379"}, cfg.Signals.Endpoints)
	assert.Equal(t, "fleet", cfg.Signals.GetNamespace())
	assert.Equal(t, 2*time.Second, cfg.Signals.GetDialTimeout())
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "worker.yml", sampleYAML)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "printer", cfg.Worker.GetName())
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker.yaml")
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "worker.yaml", "worker: [not a mapping")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoadFromDirWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "worker.yaml", sampleYAML)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := LoadFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, "printer", cfg.Worker.GetName())
}

func TestDefaultsOnNilSections(t *testing.T) {
	var cfg Config

	assert.Equal(t, "worker", cfg.Worker.GetName())
	assert.Equal(t, 10*time.Millisecond, cfg.Worker.GetPollInterval())
	assert.Equal(t, 30*time.Second, cfg.Worker.GetShutdownTimeout())
	assert.Equal(t, "redis://localhost:6379", cfg.Queue.GetURL())
	assert.Equal(t, "", cfg.Queue.GetName())
	assert.Equal(t, 10*time.Second, cfg.Queue.GetHeartbeatInterval())
	assert.Equal(t, "workersz", cfg.Signals.GetNamespace())
	assert.Equal(t, 5*time.Second, cfg.Signals.GetDialTimeout())
	assert.Equal(t, []string{"localhost:2379"}, cfg.Signals.GetEndpoints())
}

func TestInvalidDurationsFallBack(t *testing.T) {
	w := &WorkerConfig{PollInterval: "soon", ShutdownTimeout: "eventually"}
	assert.Equal(t, 10*time.Millisecond, w.GetPollInterval())
	assert.Equal(t, 30*time.Second, w.GetShutdownTimeout())
}
