/*
Package health probes the plugin's host dependencies.

Two checkers are provided: ExecChecker runs a command and is healthy on exit
code 0, DirChecker is healthy while a path exists and is a directory. The
daemon uses them to watch the mount tool and the mount root:

	m := health.NewMonitor(health.DefaultConfig(), metrics.UpdateComponent)
	m.Add(metrics.ComponentMountTool, health.NewExecChecker([]string{"git-xet", "--version"}))
	m.Add(metrics.ComponentMountRoot, health.NewDirChecker("/data"))
	go m.Run(ctx)

# Retries

A dependency starts healthy and turns unhealthy only after Config.Retries
consecutive failures. One success makes it healthy again. Every run is
reported; status changes are also logged.
*/
package health
