package errdefs

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersWrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
		kind     string
	}{
		{
			name:     "invalid options",
			err:      InvalidOptions("%q option not set", "repo"),
			sentinel: ErrInvalidOptions,
			message:  `invalid options: "repo" option not set`,
			kind:     "invalid_options",
		},
		{
			name:     "unrecognized option",
			err:      UnrecognizedOption("Colour"),
			sentinel: ErrUnrecognizedOption,
			message:  "unrecognized option: Colour",
			kind:     "unrecognized_option",
		},
		{
			name:     "not found",
			err:      NotFound("v1"),
			sentinel: ErrNotFound,
			message:  "volume not found: v1",
			kind:     "not_found",
		},
		{
			name:     "io",
			err:      IO(os.ErrPermission),
			sentinel: ErrIO,
			message:  "io failure: permission denied",
			kind:     "io",
		},
		{
			name:     "mount failed",
			err:      MountFailed("error: repo not found\n  hint: check the url\n"),
			sentinel: ErrMountFailed,
			message:  "mount failed: error: repo not found hint: check the url",
			kind:     "mount_failed",
		},
		{
			name:     "unmount failed",
			err:      UnmountFailed("umount: /data/v1: not mounted."),
			sentinel: ErrUnmountFailed,
			message:  "unmount failed: umount: /data/v1: not mounted.",
			kind:     "unmount_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, tt.kind, Kind(tt.err))
		})
	}
}

func TestIOPreservesCause(t *testing.T) {
	err := IO(os.ErrExist)
	assert.True(t, errors.Is(err, os.ErrExist))
	assert.True(t, errors.Is(err, ErrIO))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ok", Kind(nil))
	assert.Equal(t, "unknown", Kind(errors.New("boom")))
}
