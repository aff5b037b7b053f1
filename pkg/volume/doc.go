/*
Package volume turns the options a container runtime passes on create into
a validated types.Volume.

# Options

Docker forwards the -o/--opt pairs given to `docker volume create` verbatim.
The plugin recognizes exactly six keys, matched case-insensitively:

	repo      repository URL or identifier (required)
	commit    branch, tag or commit to mount (required)
	username  XetHub user name
	pat       XetHub personal access token
	write     mount read-write; parsed as a boolean, false when unparseable
	watch     poll interval for upstream changes, e.g. "30s" or "1h 30m"

Any other key fails with errdefs.ErrUnrecognizedOption. Once all options are
applied a consistency pass rejects a record missing repo or commit, one that
sets both write and watch, and one whose watch value is not a valid interval.
These fail with errdefs.ErrInvalidOptions.

Example:

	docker volume create -d xethub \
		-o repo=https://xethub.com/org/data \
		-o commit=main \
		-o watch=5m \
		training-data

# Mount paths

Every volume mounts at MountPath(root, name). The path is a pure function of
the configured mount root and the volume name; it does not depend on whether
the volume exists.
*/
package volume
