package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xetdata/docker-volume-xetfs/pkg/config"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := newRootCmd(serve).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runFunc starts the daemon with a fully resolved configuration
type runFunc func(cmd *cobra.Command, cfg *config.Config) error

func newRootCmd(run runFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "volume-xethub",
		Short: "Docker volume plugin for XetHub repositories",
		Long: `volume-xethub serves the Docker volume plugin protocol and mounts
XetHub repositories into containers with git-xet.

Volumes are created with driver options:
  repo      repository URL (required)
  commit    branch or commit to mount (required)
  username  XetHub user name
  pat       XetHub personal access token
  write     mount read-write (true/false)
  watch     refresh interval for read-only mounts, e.g. 5m`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"volume-xethub version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	flags := rootCmd.PersistentFlags()
	flags.StringP("mount-root", "m", config.Default().MountRoot, "Directory volumes are mounted under")
	flags.StringP("state-storage", "s", config.DefaultStateStorage, "Directory reserved for plugin state")
	flags.String("config", "", "YAML configuration file")
	flags.String("log-level", "", "Log level (debug, info, warn, error); defaults to $XET_VOLUME_LOG or info")
	flags.Bool("log-json", true, "Log in JSON format")
	flags.String("metrics-addr", "", "Address for the admin server (/health, /ready, /metrics); disabled when empty")
	flags.String("mount-binary", config.Default().Mounter.MountBinary, "Mount tool to invoke")
	flags.String("unmount-binary", config.Default().Mounter.UnmountBinary, "Unmount tool to invoke")

	rootCmd.AddCommand(newTCPCmd(run))
	rootCmd.AddCommand(newUnixCmd(run))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newTCPCmd(run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tcp",
		Short: "Serve the plugin API on a TCP port",
		Long: `Serve the plugin API on a TCP port on all interfaces.

Examples:
  volume-xethub tcp --port 7280
  volume-xethub -m /mnt/xet tcp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, config.TransportTCP)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}
	cmd.Flags().IntP("port", "p", config.DefaultPort, "TCP port to listen on")
	return cmd
}

func newUnixCmd(run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unix",
		Short: "Serve the plugin API on a Unix socket",
		Long: `Serve the plugin API on a Unix socket. Docker discovers plugins
whose sockets live in /run/docker/plugins.

Examples:
  volume-xethub unix
  volume-xethub unix --socket-path /run/docker/plugins/xethub.sock --socket-group 999`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, config.TransportUnix)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}
	cmd.Flags().String("socket-path", config.DefaultSocketPath, "Unix socket path")
	cmd.Flags().Int("socket-group", 0, "Group id owning the socket")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "volume-xethub version %s\nCommit: %s\nBuilt: %s\n",
				Version, Commit, BuildTime)
		},
	}
}

// resolveConfig loads the config file, applies explicitly set flags over it
// and validates the result
func resolveConfig(cmd *cobra.Command, transport string) (*config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.Transport.Kind = transport

	if flags.Changed("mount-root") {
		cfg.MountRoot, _ = flags.GetString("mount-root")
	}
	if flags.Changed("state-storage") {
		cfg.StateStorage, _ = flags.GetString("state-storage")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON, _ = flags.GetBool("log-json")
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("mount-binary") {
		cfg.Mounter.MountBinary, _ = flags.GetString("mount-binary")
	}
	if flags.Changed("unmount-binary") {
		cfg.Mounter.UnmountBinary, _ = flags.GetString("unmount-binary")
	}

	switch transport {
	case config.TransportTCP:
		if flags.Changed("port") {
			cfg.Transport.Port, _ = flags.GetInt("port")
		}
	case config.TransportUnix:
		if flags.Changed("socket-path") {
			cfg.Transport.SocketPath, _ = flags.GetString("socket-path")
		}
		if flags.Changed("socket-group") {
			cfg.Transport.SocketGroup, _ = flags.GetInt("socket-group")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
