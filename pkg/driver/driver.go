package driver

import (
	"context"
	"errors"
	"os"
	"sort"
	"time"

	dvolume "github.com/docker/go-plugins-helpers/volume"
	"github.com/rs/zerolog"

	"github.com/xetdata/docker-volume-xetfs/pkg/errdefs"
	"github.com/xetdata/docker-volume-xetfs/pkg/log"
	"github.com/xetdata/docker-volume-xetfs/pkg/metrics"
	"github.com/xetdata/docker-volume-xetfs/pkg/mount"
	"github.com/xetdata/docker-volume-xetfs/pkg/storage"
	"github.com/xetdata/docker-volume-xetfs/pkg/types"
	"github.com/xetdata/docker-volume-xetfs/pkg/volume"
)

// DriverName is the name the plugin registers under with Docker
const DriverName = "xethub"

const component = "driver"

// Driver implements the Docker volume plugin protocol for XetHub volumes
type Driver struct {
	mountRoot string
	store     storage.Store
	mounter   mount.Mounter
	logger    zerolog.Logger
	now       func() time.Time
}

var _ dvolume.Driver = (*Driver)(nil)

// NewDriver creates a driver mounting volumes under mountRoot
func NewDriver(mountRoot string, store storage.Store, mounter mount.Mounter) *Driver {
	return &Driver{
		mountRoot: mountRoot,
		store:     store,
		mounter:   mounter,
		logger:    log.WithComponent(component),
		now:       time.Now,
	}
}

func (d *Driver) mountPath(name string) string {
	return volume.MountPath(d.mountRoot, name)
}

// Create validates the options, prepares the mount directory and registers
// the volume. Nothing is registered unless every step succeeds.
func (d *Driver) Create(req *dvolume.CreateRequest) error {
	logger := log.WithVolume(component, req.Name)
	logger.Info().
		Interface("options", volume.RedactOptions(req.Options)).
		Msg("Creating volume")

	vol, err := volume.ParseOptions(req.Options)
	if err != nil {
		logger.Warn().Err(err).Msg("Rejected volume options")
		return err
	}

	vol.MountPath = d.mountPath(req.Name)
	vol.CreatedAt = d.now().UTC()

	if _, err := os.Stat(vol.MountPath); err == nil {
		logger.Warn().Str("path", vol.MountPath).Msg("Mount path already exists")
	} else if err := os.MkdirAll(vol.MountPath, 0755); err != nil {
		logger.Error().Err(err).Str("path", vol.MountPath).Msg("Failed to create mount path")
		return errdefs.IO(err)
	}

	d.store.Insert(req.Name, vol)
	metrics.VolumesTotal.Set(float64(d.store.Len()))

	logger.Info().Str("path", vol.MountPath).Msg("Created volume")
	return nil
}

// Remove forgets the volume. It does not unmount; the runtime unmounts
// before it removes.
func (d *Driver) Remove(req *dvolume.RemoveRequest) error {
	logger := log.WithVolume(component, req.Name)
	logger.Info().Msg("Removing volume")

	if err := d.store.Remove(req.Name); err != nil {
		logger.Warn().Err(err).Msg("Remove failed")
		return err
	}
	metrics.VolumesTotal.Set(float64(d.store.Len()))
	return nil
}

// Mount runs the mount tool for a registered volume and returns its
// mountpoint. The registry is only locked for the lookup, so slow mounts
// never block other requests.
func (d *Driver) Mount(req *dvolume.MountRequest) (*dvolume.MountResponse, error) {
	logger := log.WithVolume(component, req.Name).With().Str("mount_id", req.ID).Logger()
	logger.Info().Msg("Mounting volume")

	vol, err := d.store.Get(req.Name)
	if err != nil {
		logger.Warn().Err(err).Msg("Mount of unknown volume")
		return nil, err
	}

	logger.Info().Str("path", vol.MountPath).Msg("Invoking mount tool")

	// Runs to completion even if the caller goes away
	timer := metrics.NewTimer()
	err = d.mounter.Mount(context.Background(), vol)
	timer.ObserveDuration(metrics.MountDuration)
	metrics.MountsTotal.WithLabelValues(errdefs.Kind(err)).Inc()
	if err != nil {
		logger.Error().Err(err).Msg("Mount failed")
		return nil, err
	}

	logger.Info().Str("path", vol.MountPath).Msg("Mounted volume")
	return &dvolume.MountResponse{Mountpoint: vol.MountPath}, nil
}

// Unmount runs umount for a registered volume. Unmount is best effort: a
// non-zero exit from umount is logged and not returned. Failing to start
// umount at all is still reported.
func (d *Driver) Unmount(req *dvolume.UnmountRequest) error {
	logger := log.WithVolume(component, req.Name).With().Str("mount_id", req.ID).Logger()
	logger.Info().Msg("Unmounting volume")

	vol, err := d.store.Get(req.Name)
	if err != nil {
		logger.Warn().Err(err).Msg("Unmount of unknown volume")
		return err
	}

	err = d.mounter.Unmount(context.Background(), vol.MountPath)
	metrics.UnmountsTotal.WithLabelValues(errdefs.Kind(err)).Inc()
	if errors.Is(err, errdefs.ErrIO) {
		logger.Error().Err(err).Msg("Could not run umount")
		return err
	}
	if err != nil {
		// The mount may be orphaned; the runtime is not told.
		logger.Warn().Err(err).Str("path", vol.MountPath).Msg("Unmount failed, ignoring")
		return nil
	}

	logger.Info().Str("path", vol.MountPath).Msg("Unmounted volume")
	return nil
}

// Path returns where a volume with this name is or would be mounted
func (d *Driver) Path(req *dvolume.PathRequest) (*dvolume.PathResponse, error) {
	d.logger.Debug().Str("volume", req.Name).Msg("Getting path")
	return &dvolume.PathResponse{Mountpoint: d.mountPath(req.Name)}, nil
}

// Get returns the volume, or a nil Volume when the name is not registered
func (d *Driver) Get(req *dvolume.GetRequest) (*dvolume.GetResponse, error) {
	d.logger.Debug().Str("volume", req.Name).Msg("Getting volume")

	vol, err := d.store.Get(req.Name)
	if errors.Is(err, errdefs.ErrNotFound) {
		return &dvolume.GetResponse{Volume: nil}, nil
	}
	if err != nil {
		return nil, err
	}
	return &dvolume.GetResponse{Volume: toProtocol(req.Name, vol)}, nil
}

// List returns every registered volume ordered by name
func (d *Driver) List() (*dvolume.ListResponse, error) {
	d.logger.Debug().Msg("Listing volumes")

	all := d.store.List()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	vols := make([]*dvolume.Volume, 0, len(names))
	for _, name := range names {
		vols = append(vols, toProtocol(name, all[name]))
	}
	return &dvolume.ListResponse{Volumes: vols}, nil
}

// Capabilities reports local scope: volumes are never shared across hosts
func (d *Driver) Capabilities() *dvolume.CapabilitiesResponse {
	return &dvolume.CapabilitiesResponse{
		Capabilities: dvolume.Capability{Scope: types.ScopeLocal},
	}
}

func toProtocol(name string, v *types.Volume) *dvolume.Volume {
	pv := &dvolume.Volume{
		Name:       name,
		Mountpoint: v.MountPath,
		Status:     map[string]interface{}{},
	}
	if !v.CreatedAt.IsZero() {
		pv.CreatedAt = v.CreatedAt.Format(time.RFC3339)
	}
	return pv
}
