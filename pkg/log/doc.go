/*
Package log provides structured logging for the volume plugin using zerolog.

A single global Logger is configured once at startup with Init. The plugin
runs under the container runtime, which collects stdout, so the default is
one JSON object per line:

	{"level":"info","component":"driver","volume":"v1","mount_id":"3f2c…","time":"2026-10-19T09:12:44Z","caller":"driver.go:112","message":"Mounting volume"}

Console output (--log-json=false) is meant for running the daemon by hand.

# Levels

debug, info (default), warn and error. The level comes from the --log-level
flag or the config file; when neither sets it, the XET_VOLUME_LOG
environment variable is consulted.

# Child loggers

	logger := log.WithComponent("mount")
	logger.Info().Str("path", p).Msg("Unmounting")

	vlog := log.WithVolume("driver", name)

Credentials are never logged. Option maps pass through volume.RedactOptions
before they reach a log line.
*/
package log
