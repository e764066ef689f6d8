// Package config provides loading and parsing of worker.yaml
// configuration files. Worker configurations define loop timing, queue
// connectivity, and distributed signal settings for embedders that prefer
// file-driven setup over code-driven options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a worker.yaml configuration file.
type Config struct {
	// Worker holds loop-level settings.
	Worker *WorkerConfig `yaml:"worker,omitempty"`

	// Queue holds Redis item-feed settings.
	Queue *QueueConfig `yaml:"queue,omitempty"`

	// Signals holds etcd-backed distributed signal settings.
	Signals *SignalsConfig `yaml:"signals,omitempty"`
}

// WorkerConfig defines loop-level settings.
type WorkerConfig struct {
	// Name is the worker's name, used in logs, telemetry, and queue keys.
	// Default: "worker".
	Name string `yaml:"name,omitempty"`

	// PollInterval is the bounded sleep between loop iterations.
	// Format: Go duration string (e.g., "10ms").
	// Default: 10ms
	PollInterval string `yaml:"poll_interval,omitempty"`

	// ShutdownTimeout is the time a supervisor should wait in Join for
	// graceful termination.
	// Format: Go duration string (e.g., "30s", "1m")
	// Default: 30s
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty"`
}

// GetName returns the configured name or the default value.
func (w *WorkerConfig) GetName() string {
	if w == nil || w.Name == "" {
		return "worker"
	}
	return w.Name
}

// GetPollInterval parses the poll interval string and returns a duration.
// Returns the default value if not set or invalid.
func (w *WorkerConfig) GetPollInterval() time.Duration {
	if w == nil || w.PollInterval == "" {
		return 10 * time.Millisecond
	}
	d, err := time.ParseDuration(w.PollInterval)
	if err != nil {
		return 10 * time.Millisecond
	}
	return d
}

// GetShutdownTimeout parses the shutdown timeout string and returns a
// duration. Returns the default value if not set or invalid.
func (w *WorkerConfig) GetShutdownTimeout() time.Duration {
	if w == nil || w.ShutdownTimeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(w.ShutdownTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// QueueConfig defines Redis item-feed settings.
type QueueConfig struct {
	// URL is the Redis connection string.
	// Default: "redis://localhost:6379"
	URL string `yaml:"url,omitempty"`

	// Name overrides the queue key. When empty, the key is derived from
	// the worker name.
	Name string `yaml:"name,omitempty"`

	// HeartbeatInterval is the interval between worker heartbeats.
	// Format: Go duration string (e.g., "10s")
	// Default: 10s
	HeartbeatInterval string `yaml:"heartbeat_interval,omitempty"`
}

// GetName returns the queue key override, or the empty string when the
// key should be derived from the worker name.
func (q *QueueConfig) GetName() string {
	if q == nil {
		return ""
	}
	return q.Name
}

// GetURL returns the Redis URL or the default value.
func (q *QueueConfig) GetURL() string {
	if q == nil || q.URL == "" {
		return "redis://localhost:6379"
	}
	return q.URL
}

// GetHeartbeatInterval parses the heartbeat interval string and returns a
// duration. Returns the default value if not set or invalid.
func (q *QueueConfig) GetHeartbeatInterval() time.Duration {
	if q == nil || q.HeartbeatInterval == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(q.HeartbeatInterval)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// SignalsConfig defines etcd-backed distributed signal settings.
type SignalsConfig struct {
	// Endpoints is the list of etcd endpoints.
	Endpoints []string `yaml:"endpoints,omitempty"`

	// Namespace is the key prefix for signal keys.
	// Default: "workersz"
	Namespace string `yaml:"namespace,omitempty"`

	// DialTimeout is the maximum time to wait for connection establishment.
	// Format: Go duration string (e.g., "5s")
	// Default: 5s
	DialTimeout string `yaml:"dial_timeout,omitempty"`
}

// GetEndpoints returns the endpoint list or the default value.
func (s *SignalsConfig) GetEndpoints() []string {
	if s == nil || len(s.Endpoints) == 0 {
		return []string{"localhost:2379"}
	}
	return s.Endpoints
}

// GetNamespace returns the namespace or the default value.
func (s *SignalsConfig) GetNamespace() string {
	if s == nil || s.Namespace == "" {
		return "workersz"
	}
	return s.Namespace
}

// GetDialTimeout parses the dial timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (s *SignalsConfig) GetDialTimeout() time.Duration {
	if s == nil || s.DialTimeout == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(s.DialTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// Load reads and parses a worker.yaml file from the given path. If the
// path is a directory, it looks for worker.yaml or worker.yml in that
// directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var configPath string
	if info.IsDir() {
		// Try worker.yaml first, then worker.yml
		yamlPath := filepath.Join(path, "worker.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "worker.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no worker.yaml or worker.yml found in %s", path)
			}
		}
	} else {
		configPath = path
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadFromDir searches for worker.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		// Move to parent directory
		parent := filepath.Dir(absDir)
		if parent == absDir {
			// Reached root
			return nil, fmt.Errorf("no worker.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// LoadFromCurrentDir loads worker.yaml from the current working directory.
func LoadFromCurrentDir() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromDir(cwd)
}
