package mount

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/moby/sys/mountinfo"
	"github.com/rs/zerolog"

	"github.com/xetdata/docker-volume-xetfs/pkg/errdefs"
	"github.com/xetdata/docker-volume-xetfs/pkg/log"
	"github.com/xetdata/docker-volume-xetfs/pkg/types"
)

const (
	// DefaultMountBinary is the XetHub git extension that performs mounts
	DefaultMountBinary = "git-xet"

	// DefaultUnmountBinary is the host unmount facility
	DefaultUnmountBinary = "umount"

	// Environment variables git-xet reads credentials from
	EnvUserName  = "XET_USER_NAME"
	EnvUserToken = "XET_USER_TOKEN"
)

// Mounter handles the external mount and unmount invocations
type Mounter interface {
	// Mount mounts v.Repo at v.Commit onto v.MountPath
	Mount(ctx context.Context, v *types.Volume) error

	// Unmount unmounts the target path
	Unmount(ctx context.Context, target string) error
}

// Config selects the binaries the mounter invokes
type Config struct {
	MountBinary   string `yaml:"mountBinary"`
	UnmountBinary string `yaml:"unmountBinary"`
}

// mounter implements Mounter interface using system commands
type mounter struct {
	cfg          Config
	execCommand  func(ctx context.Context, name string, args ...string) *exec.Cmd
	isMountPoint func(path string) (bool, error)
	logger       zerolog.Logger
}

// NewMounter creates a new mounter. Empty binary names fall back to the
// defaults.
func NewMounter(cfg Config) Mounter {
	if cfg.MountBinary == "" {
		cfg.MountBinary = DefaultMountBinary
	}
	if cfg.UnmountBinary == "" {
		cfg.UnmountBinary = DefaultUnmountBinary
	}
	return &mounter{
		cfg:          cfg,
		execCommand:  exec.CommandContext,
		isMountPoint: mountinfo.Mounted,
		logger:       log.WithComponent("mount"),
	}
}

// MountArgs returns the arguments passed to the mount binary for v:
//
//	mount -r <commit> <repo> <mount_path> [-w] [--watch <interval>]
func MountArgs(v *types.Volume) []string {
	args := []string{"mount", "-r", v.Commit, v.Repo, v.MountPath}
	if v.Writeable {
		args = append(args, "-w")
	}
	if v.Watching() {
		args = append(args, "--watch", v.Watch)
	}
	return args
}

// credentialEnv returns the environment entries carrying v's credentials,
// or nil when the pair is incomplete.
func credentialEnv(v *types.Volume) []string {
	if !v.HasCredentials() {
		return nil
	}
	return []string{
		EnvUserName + "=" + v.Username,
		EnvUserToken + "=" + v.PAT,
	}
}

// Mount runs the mount binary for v and waits for it to exit
func (m *mounter) Mount(ctx context.Context, v *types.Volume) error {
	args := MountArgs(v)
	logger := m.logger.With().Str("path", v.MountPath).Logger()
	logger.Debug().
		Str("cmd", m.cfg.MountBinary).
		Strs("args", args).
		Bool("credentials", v.HasCredentials()).
		Msg("Running mount command")

	cmd := m.execCommand(ctx, m.cfg.MountBinary, args...)
	if env := credentialEnv(v); env != nil {
		// Credentials go in the environment, never in argv
		cmd.Env = append(cmd.Environ(), env...)
	}

	stdout, stderr, err := m.run(cmd)
	logger.Debug().Str("stdout", stdout).Str("stderr", stderr).Msg("mount output")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errdefs.MountFailed(diagnostic(stdout, stderr, err))
		}
		return errdefs.IO(err)
	}

	logger.Info().Str("repo", v.Repo).Str("commit", v.Commit).Msg("Mounted")
	return nil
}

// Unmount runs the unmount binary against target. The mount table is
// consulted first for diagnostics only; umount always runs.
func (m *mounter) Unmount(ctx context.Context, target string) error {
	logger := m.logger.With().Str("path", target).Logger()

	if mounted, err := m.isMountPoint(target); err != nil {
		logger.Debug().Err(err).Msg("Could not check mount table")
	} else if !mounted {
		logger.Debug().Msg("Path is not a mount point")
	}

	cmd := m.execCommand(ctx, m.cfg.UnmountBinary, target)
	stdout, stderr, err := m.run(cmd)
	logger.Debug().Str("stdout", stdout).Str("stderr", stderr).Msg("umount output")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errdefs.UnmountFailed(diagnostic(stdout, stderr, err))
		}
		return errdefs.IO(err)
	}

	logger.Info().Msg("Unmounted")
	return nil
}

func (m *mounter) run(cmd *exec.Cmd) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// diagnostic picks the most useful text to hand back on failure
func diagnostic(stdout, stderr string, err error) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(stdout); s != "" {
		return s
	}
	return err.Error()
}
