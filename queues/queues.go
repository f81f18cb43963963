// Package queues picks queue families for the graphics and present roles and
// plans the queues a logical device must create for them.
package queues

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
)

// Role is a bit set of queue roles.
type Role int

const (
	RoleGraphics Role = 1 << iota
	RolePresent
)

func (r Role) String() string {
	var names []string
	if r&RoleGraphics != 0 {
		names = append(names, "graphics")
	}
	if r&RolePresent != 0 {
		names = append(names, "present")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

type QueueResolutionError struct {
	Missing Role
}

func (e *QueueResolutionError) Error() string {
	return "can not find queue family for " + e.Missing.String()
}

// PresentTarget answers whether a queue family can present to a surface.
type PresentTarget interface {
	SupportsPresent(family int) (bool, error)
}

// SurfaceTarget binds a surface to the adapter being evaluated.
func SurfaceTarget(surface driver.Surface, adapter driver.PhysicalAdapter) PresentTarget {
	return surfaceTarget{surface: surface, adapter: adapter}
}

type surfaceTarget struct {
	surface driver.Surface
	adapter driver.PhysicalAdapter
}

func (t surfaceTarget) SupportsPresent(family int) (bool, error) {
	return t.surface.SupportsPresent(t.adapter, family)
}

// Assignment holds the family index chosen for each role. The two may be
// the same family.
type Assignment struct {
	GraphicsFamily int
	PresentFamily  int
}

func (a Assignment) Shared() bool {
	return a.GraphicsFamily == a.PresentFamily
}

// SharingMode returns how presentation images are shared between the two
// families, and the family list the host must be given for that mode.
func (a Assignment) SharingMode() (driver.SharingMode, []int) {
	if a.Shared() {
		return driver.SharingModeExclusive, nil
	}
	return driver.SharingModeConcurrent, []int{a.GraphicsFamily, a.PresentFamily}
}

// Resolve scans families twice: once for the lowest graphics-capable index
// and once for the lowest index that can present to target.
func Resolve(families []driver.QueueFamilyProperties, target PresentTarget) (Assignment, error) {
	graphicsFamily := -1
	for idx, family := range families {
		if family.Flags&driver.QueueGraphics != 0 {
			graphicsFamily = idx
			break
		}
	}

	presentFamily := -1
	for idx := range families {
		supported, err := target.SupportsPresent(idx)
		if err != nil {
			return Assignment{}, errors.Wrapf(err, "query present support for queue family %d", idx)
		}
		if supported {
			presentFamily = idx
			break
		}
	}

	var missing Role
	if graphicsFamily < 0 {
		missing |= RoleGraphics
	}
	if presentFamily < 0 {
		missing |= RolePresent
	}
	if missing != 0 {
		return Assignment{}, &QueueResolutionError{Missing: missing}
	}

	return Assignment{GraphicsFamily: graphicsFamily, PresentFamily: presentFamily}, nil
}
