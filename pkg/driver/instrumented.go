package driver

import (
	dvolume "github.com/docker/go-plugins-helpers/volume"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xetdata/docker-volume-xetfs/pkg/errdefs"
	"github.com/xetdata/docker-volume-xetfs/pkg/log"
	"github.com/xetdata/docker-volume-xetfs/pkg/metrics"
)

// instrumented wraps a driver with request metrics and an access log line
// per call, each tagged with a fresh request id.
type instrumented struct {
	next   dvolume.Driver
	logger zerolog.Logger
}

// Instrument returns next wrapped with metrics and request logging
func Instrument(next dvolume.Driver) dvolume.Driver {
	return &instrumented{
		next:   next,
		logger: log.WithComponent("plugin"),
	}
}

func (i *instrumented) observe(method, name string, timer *metrics.Timer, err error) {
	status := errdefs.Kind(err)
	timer.ObserveDurationVec(metrics.RequestDuration, method)
	metrics.RequestsTotal.WithLabelValues(method, status).Inc()

	ev := i.logger.Debug()
	if err != nil {
		ev = i.logger.Warn().Err(err)
	}
	ev.Str("req_id", uuid.NewString()).
		Str("method", method).
		Str("volume", name).
		Str("status", status).
		Dur("duration", timer.Duration()).
		Msg("Handled plugin request")
}

func (i *instrumented) Create(req *dvolume.CreateRequest) error {
	timer := metrics.NewTimer()
	err := i.next.Create(req)
	i.observe("Create", req.Name, timer, err)
	return err
}

func (i *instrumented) Remove(req *dvolume.RemoveRequest) error {
	timer := metrics.NewTimer()
	err := i.next.Remove(req)
	i.observe("Remove", req.Name, timer, err)
	return err
}

func (i *instrumented) Mount(req *dvolume.MountRequest) (*dvolume.MountResponse, error) {
	timer := metrics.NewTimer()
	resp, err := i.next.Mount(req)
	i.observe("Mount", req.Name, timer, err)
	return resp, err
}

func (i *instrumented) Unmount(req *dvolume.UnmountRequest) error {
	timer := metrics.NewTimer()
	err := i.next.Unmount(req)
	i.observe("Unmount", req.Name, timer, err)
	return err
}

func (i *instrumented) Path(req *dvolume.PathRequest) (*dvolume.PathResponse, error) {
	timer := metrics.NewTimer()
	resp, err := i.next.Path(req)
	i.observe("Path", req.Name, timer, err)
	return resp, err
}

func (i *instrumented) Get(req *dvolume.GetRequest) (*dvolume.GetResponse, error) {
	timer := metrics.NewTimer()
	resp, err := i.next.Get(req)
	i.observe("Get", req.Name, timer, err)
	return resp, err
}

func (i *instrumented) List() (*dvolume.ListResponse, error) {
	timer := metrics.NewTimer()
	resp, err := i.next.List()
	i.observe("List", "", timer, err)
	return resp, err
}

func (i *instrumented) Capabilities() *dvolume.CapabilitiesResponse {
	timer := metrics.NewTimer()
	resp := i.next.Capabilities()
	i.observe("Capabilities", "", timer, nil)
	return resp
}
