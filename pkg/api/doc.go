/*
Package api exposes the volume driver over the Docker volume plugin protocol
and serves the optional admin endpoints.

# Architecture

	┌──────────── Docker Engine ────────────┐
	│  POST /VolumeDriver.* (JSON)          │
	└───────────────────┬───────────────────┘
	                    │ TCP :7280 or /run/docker/plugins/xethub.sock
	┌───────────────────▼───────────────────┐
	│  Server (go-plugins-helpers handler)  │
	│    └─ instrumented driver             │
	│         └─ driver.Driver              │
	│              ├─ storage.Store         │
	│              └─ mount.Mounter         │
	└───────────────────────────────────────┘

	┌──────────── HealthServer ─────────────┐
	│  GET /health   liveness + version     │
	│  GET /ready    plugin bound, root ok  │
	│  GET /live     process alive          │
	│  GET /metrics  Prometheus             │
	└───────────────────────────────────────┘

# Plugin Server

The protocol codec, the /Plugin.Activate handshake and the {"Err": "..."}
error envelope come from github.com/docker/go-plugins-helpers/volume. The
server only owns the listener:

	srv := api.NewServer(driver.NewDriver(root, store, mounter))
	if err := srv.ListenUnix("/run/docker/plugins/xethub.sock", 0); err != nil {
		return err
	}
	go srv.Serve()
	defer srv.Stop()

Each request is handled on its own goroutine. Stop closes the listener and
does not wait for in-flight mounts.

# Admin Server

HealthServer is disabled unless an address is configured. Readiness turns
green once the plugin listener is bound and the mount root is a directory.
*/
package api
