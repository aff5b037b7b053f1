package volume

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xetdata/docker-volume-xetfs/pkg/errdefs"
	"github.com/xetdata/docker-volume-xetfs/pkg/types"
)

// Option names accepted by create (matched case-insensitively)
const (
	OptionRepo     = "repo"
	OptionCommit   = "commit"
	OptionUsername = "username"
	OptionPAT      = "pat"
	OptionWrite    = "write"
	OptionWatch    = "watch"
)

// optionSetter applies one option value to a volume record
type optionSetter func(v *types.Volume, value string)

var optionSetters = map[string]optionSetter{
	OptionRepo:     func(v *types.Volume, value string) { v.Repo = value },
	OptionCommit:   func(v *types.Volume, value string) { v.Commit = value },
	OptionUsername: func(v *types.Volume, value string) { v.Username = value },
	OptionPAT:      func(v *types.Volume, value string) { v.PAT = value },
	OptionWrite:    setWriteable,
	OptionWatch:    setWatch,
}

func setWatch(v *types.Volume, value string) {
	v.Watch = strings.ToLower(value)
	v.WatchSet = true
}

// Any value ParseBool rejects leaves the volume read-only.
func setWriteable(v *types.Volume, value string) {
	w, err := strconv.ParseBool(strings.ToLower(value))
	v.Writeable = err == nil && w
}

// ParseOptions builds a volume record from create options and validates it.
// It has no side effects; MountPath and CreatedAt are left for the caller.
func ParseOptions(opts map[string]string) (*types.Volume, error) {
	v := &types.Volume{}

	// Sorted so the first unrecognized key reported is stable
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		set, ok := optionSetters[strings.ToLower(key)]
		if !ok {
			return nil, errdefs.UnrecognizedOption(key)
		}
		set(v, opts[key])
	}

	if err := Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate runs the consistency checks every registered volume satisfies
func Validate(v *types.Volume) error {
	if v.Repo == "" {
		return errdefs.InvalidOptions("%q option not set", OptionRepo)
	}
	if v.Commit == "" {
		return errdefs.InvalidOptions("%q option not set", OptionCommit)
	}
	if v.Writeable && v.Watching() {
		return errdefs.InvalidOptions("writable and watch are incompatible options")
	}
	if v.Watching() {
		if _, err := ParseWatchInterval(v.Watch); err != nil {
			return errdefs.InvalidOptions("interval provided for watch: %s is invalid", v.Watch)
		}
	}
	return nil
}

// RedactOptions returns a copy of opts that is safe to log
func RedactOptions(opts map[string]string) map[string]string {
	out := make(map[string]string, len(opts))
	for k, val := range opts {
		if strings.EqualFold(k, OptionPAT) {
			out[k] = "<redacted>"
			continue
		}
		out[k] = val
	}
	return out
}
