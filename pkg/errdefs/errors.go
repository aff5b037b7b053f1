// Package errdefs defines the error categories the volume plugin reports.
//
// Every category is a sentinel. Call sites wrap the sentinel with detail via
// the helpers below, and callers classify with errors.Is. The wire protocol
// carries only Error() text, so messages are kept to a single line.
package errdefs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidOptions is returned when create options fail validation
	ErrInvalidOptions = errors.New("invalid options")

	// ErrUnrecognizedOption is returned for an option key outside the known set
	ErrUnrecognizedOption = errors.New("unrecognized option")

	// ErrNotFound is returned when a volume name is not registered
	ErrNotFound = errors.New("volume not found")

	// ErrIO is returned for directory or process spawn failures
	ErrIO = errors.New("io failure")

	// ErrMountFailed is returned when the mount tool exits non-zero
	ErrMountFailed = errors.New("mount failed")

	// ErrUnmountFailed is returned when umount exits non-zero. The driver
	// logs it and never reports it to the runtime.
	ErrUnmountFailed = errors.New("unmount failed")
)

// InvalidOptions wraps ErrInvalidOptions with a formatted detail
func InvalidOptions(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}

// UnrecognizedOption wraps ErrUnrecognizedOption naming the offending key
func UnrecognizedOption(key string) error {
	return fmt.Errorf("%w: %s", ErrUnrecognizedOption, key)
}

// NotFound wraps ErrNotFound naming the volume
func NotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// IO wraps ErrIO around an underlying OS error
func IO(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// MountFailed wraps ErrMountFailed with the tool's diagnostic output,
// flattened to one line.
func MountFailed(diagnostic string) error {
	return fmt.Errorf("%w: %s", ErrMountFailed, singleLine(diagnostic))
}

// UnmountFailed wraps ErrUnmountFailed with umount's diagnostic output
func UnmountFailed(diagnostic string) error {
	return fmt.Errorf("%w: %s", ErrUnmountFailed, singleLine(diagnostic))
}

// Kind returns a short, stable label for err, used as a metrics label
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidOptions):
		return "invalid_options"
	case errors.Is(err, ErrUnrecognizedOption):
		return "unrecognized_option"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrMountFailed):
		return "mount_failed"
	case errors.Is(err, ErrUnmountFailed):
		return "unmount_failed"
	default:
		return "unknown"
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
