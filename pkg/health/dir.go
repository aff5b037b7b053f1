package health

import (
	"context"
	"fmt"
	"os"
	"time"
)

// DirChecker reports healthy while Path exists and is a directory
type DirChecker struct {
	Path string
}

// NewDirChecker creates a new directory health checker
func NewDirChecker(path string) *DirChecker {
	return &DirChecker{Path: path}
}

// Check stats the directory
func (d *DirChecker) Check(ctx context.Context) Result {
	start := time.Now()

	info, err := os.Stat(d.Path)
	switch {
	case err != nil:
		return Result{
			Healthy:   false,
			Message:   err.Error(),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	case !info.IsDir():
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("%s is not a directory", d.Path),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	return Result{
		Healthy:   true,
		Message:   d.Path,
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// Type returns the health check type
func (d *DirChecker) Type() CheckType {
	return CheckTypeDir
}
