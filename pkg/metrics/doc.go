/*
Package metrics provides Prometheus metrics and health reporting for the
volume plugin.

All metrics are registered with the default Prometheus registry at package
init and exposed by Handler on the admin listener (--metrics-addr).

# Metrics

	xetvolume_volumes                           gauge      registered volumes
	xetvolume_requests_total{method,status}     counter    plugin calls; status is "ok" or an error kind
	xetvolume_request_duration_seconds{method}  histogram  plugin call latency
	xetvolume_mounts_total{result}              counter    git-xet invocations
	xetvolume_unmounts_total{result}            counter    umount invocations
	xetvolume_mount_duration_seconds            histogram  time blocked in git-xet
	xetvolume_component_healthy{component}      gauge      1 while a health component is healthy

Error kinds come from errdefs.Kind, so a dashboard can separate bad options
from mount tool failures even though the runtime only ever sees the Err
string.

# Timer

	timer := metrics.NewTimer()
	err := mounter.Mount(ctx, vol)
	timer.ObserveDuration(metrics.MountDuration)

# Health

Components register their state with RegisterComponent or UpdateComponent;
the plugin server reports "plugin" and the health monitor reports
"mount_root" and "mount_tool". GetReadiness requires the critical components
(plugin and mount_root) to be registered and healthy. mount_tool only shows
up in GetHealth.
*/
package metrics
