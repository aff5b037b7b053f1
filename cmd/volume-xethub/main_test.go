package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xetdata/docker-volume-xetfs/pkg/config"
)

// execute runs the CLI with args and returns the config the daemon would
// have started with
func execute(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	var got *config.Config
	cmd := newRootCmd(func(_ *cobra.Command, cfg *config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return got, err
}

func TestTCPDefaults(t *testing.T) {
	cfg, err := execute(t, "tcp")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, config.TransportTCP, cfg.Transport.Kind)
	assert.Equal(t, 7280, cfg.Transport.Port)
	assert.Equal(t, "/data", cfg.MountRoot)
	assert.Equal(t, "/tmp/state", cfg.StateStorage)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestTCPFlags(t *testing.T) {
	cfg, err := execute(t,
		"-m", "/mnt/xet",
		"-s", "/var/lib/xet",
		"--log-level", "debug",
		"--log-json=false",
		"--metrics-addr", ":9090",
		"--mount-binary", "/opt/git-xet",
		"tcp", "-p", "9000",
	)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/xet", cfg.MountRoot)
	assert.Equal(t, "/var/lib/xet", cfg.StateStorage)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "/opt/git-xet", cfg.Mounter.MountBinary)
	assert.Equal(t, "umount", cfg.Mounter.UnmountBinary)
	assert.Equal(t, 9000, cfg.Transport.Port)
}

func TestUnixFlags(t *testing.T) {
	cfg, err := execute(t, "unix", "--socket-path", "/tmp/xet.sock", "--socket-group", "999")
	require.NoError(t, err)

	assert.Equal(t, config.TransportUnix, cfg.Transport.Kind)
	assert.Equal(t, "/tmp/xet.sock", cfg.Transport.SocketPath)
	assert.Equal(t, 999, cfg.Transport.SocketGroup)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "mountRoot: /from/file\nstateStorage: /file/state\ntransport:\n  port: 8000\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := execute(t, "--config", path, "tcp")
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.MountRoot)
	assert.Equal(t, 8000, cfg.Transport.Port)

	cfg, err = execute(t, "--config", path, "-m", "/from/flag", "tcp", "--port", "8001")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.MountRoot)
	assert.Equal(t, "/file/state", cfg.StateStorage)
	assert.Equal(t, 8001, cfg.Transport.Port)
}

func TestInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "relative mount root", args: []string{"-m", "data", "tcp"}},
		{name: "port out of range", args: []string{"tcp", "-p", "0"}},
		{name: "empty socket path", args: []string{"unix", "--socket-path", ""}},
		{name: "missing config file", args: []string{"--config", "/nonexistent/config.yaml", "tcp"}},
		{name: "unexpected argument", args: []string{"tcp", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := execute(t, tt.args...)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(func(*cobra.Command, *config.Config) error { return nil })
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "volume-xethub version "+Version)
	assert.Contains(t, out.String(), "Commit: "+Commit)
}
