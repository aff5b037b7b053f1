/*
Package types defines the data structures shared by the XetHub volume plugin.

The central type is Volume, the record kept for every named volume the
container runtime has created through the plugin. A Volume carries the
repository and revision to mount, optional XetHub credentials, the mount
mode (read-only, read-write or read-only with a watch interval) and the host
path the volume is mounted at.

# Invariants

A Volume that has passed option validation always satisfies:

  - Repo and Commit are non-empty
  - Writeable and Watch are never both set
  - Watch, when set, parses as a duration
  - MountPath is assigned once, at create, and never changes

Volumes are values. The registry hands out copies (see Volume.Copy) so a
caller holding a record never observes a concurrent mutation.

# Credentials

Username and PAT are only forwarded to the mount tool when both are set
(see Volume.HasCredentials). PAT must never be written to logs.
*/
package types
