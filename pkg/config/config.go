// Package config holds the daemon's startup configuration.
//
// Values come from Default, then an optional YAML file via Load, then any
// command-line flag the user set explicitly. The configuration is fixed once
// the daemon starts serving.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/xetdata/docker-volume-xetfs/pkg/mount"
	"github.com/xetdata/docker-volume-xetfs/pkg/volume"
)

// Transport kinds
const (
	TransportTCP  = "tcp"
	TransportUnix = "unix"
)

// Defaults
const (
	DefaultStateStorage = "/tmp/state"
	DefaultPort         = 7280
	DefaultSocketPath   = "/run/docker/plugins/xethub.sock"
)

// Config is the complete daemon configuration
type Config struct {
	MountRoot    string       `yaml:"mountRoot"`
	StateStorage string       `yaml:"stateStorage"`
	Transport    Transport    `yaml:"transport"`
	MetricsAddr  string       `yaml:"metricsAddr,omitempty"`
	Log          Log          `yaml:"log"`
	Mounter      mount.Config `yaml:"mounter"`
}

// Transport selects where the plugin API listens
type Transport struct {
	Kind        string `yaml:"kind"`
	Port        int    `yaml:"port,omitempty"`
	SocketPath  string `yaml:"socketPath,omitempty"`
	SocketGroup int    `yaml:"socketGroup,omitempty"`
}

// Log configures the global logger
type Log struct {
	Level string `yaml:"level,omitempty"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		MountRoot:    volume.DefaultMountRoot,
		StateStorage: DefaultStateStorage,
		Transport: Transport{
			Kind:       TransportTCP,
			Port:       DefaultPort,
			SocketPath: DefaultSocketPath,
		},
		Log: Log{JSON: true},
		Mounter: mount.Config{
			MountBinary:   mount.DefaultMountBinary,
			UnmountBinary: mount.DefaultUnmountBinary,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	if c.MountRoot == "" {
		return errors.New("mount root is required")
	}
	if !filepath.IsAbs(c.MountRoot) {
		return fmt.Errorf("mount root must be an absolute path: %s", c.MountRoot)
	}
	if c.StateStorage == "" {
		return errors.New("state storage path is required")
	}

	switch c.Transport.Kind {
	case TransportTCP:
		if c.Transport.Port < 1 || c.Transport.Port > 65535 {
			return fmt.Errorf("invalid port: %d", c.Transport.Port)
		}
	case TransportUnix:
		if c.Transport.SocketPath == "" {
			return errors.New("socket path is required for unix transport")
		}
		if c.Transport.SocketGroup < 0 {
			return fmt.Errorf("invalid socket group: %d", c.Transport.SocketGroup)
		}
	default:
		return fmt.Errorf("unknown transport %q (want tcp or unix)", c.Transport.Kind)
	}

	if c.Mounter.MountBinary == "" || c.Mounter.UnmountBinary == "" {
		return errors.New("mount and unmount binaries are required")
	}
	return nil
}

// ListenAddr returns the TCP listen address for the configured port
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Transport.Port)
}
