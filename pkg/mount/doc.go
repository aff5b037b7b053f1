// Package mount runs the external programs that attach and detach XetHub
// volumes on the host.
//
// Mounting shells out to `git-xet mount`; unmounting shells out to the host
// `umount`. Both calls block until the process exits. The package keeps no
// state and never retries: a failed mount is returned to the caller at once.
//
// # Logging
//
//   - Info: operation outcomes ("Mounted", "Unmounted")
//   - Debug: command arguments (never credentials), captured stdout/stderr,
//     mount table probes
package mount
