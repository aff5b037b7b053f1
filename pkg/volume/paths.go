package volume

import "path/filepath"

const (
	// DefaultMountRoot is the directory volumes are mounted under
	DefaultMountRoot = "/data"
)

// MountPath returns the host path for a volume name under root. It does not
// consult the registry or the filesystem. name is trusted to be a single
// path component; the runtime's volume name rules exclude "/" and "..".
func MountPath(root, name string) string {
	return filepath.Join(root, name)
}
