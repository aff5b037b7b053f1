package types

import (
	"time"
)

// Volume describes one named XetHub volume and where it lives on the host
type Volume struct {
	Repo      string // Repository URL or identifier
	Commit    string // Branch, tag or commit to mount
	Username  string // XetHub user (optional)
	PAT       string // Personal access token (optional, never logged)
	Writeable bool   // Mount read-write
	Watch     string // Poll interval for upstream changes
	WatchSet  bool   // watch option was supplied, even if empty
	MountPath string // Host mount path, fixed at create
	CreatedAt time.Time
}

// HasCredentials reports whether both halves of the credential pair are set
func (v *Volume) HasCredentials() bool {
	return v.Username != "" && v.PAT != ""
}

// Watching reports whether the volume tracks upstream changes. A watch
// option supplied with an empty value still counts.
func (v *Volume) Watching() bool {
	return v.WatchSet || v.Watch != ""
}

// Copy returns a shallow copy that callers may keep without sharing state
// with the registry.
func (v *Volume) Copy() *Volume {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ScopeLocal is the capabilities scope: volumes live on one host only
const ScopeLocal = "local"
