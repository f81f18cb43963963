// Package surface derives the presentation contract an adapter offers for a
// surface and checks it against the one format and present mode we want.
package surface

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
)

type Kind int

const (
	KindFormat Kind = iota
	KindPresentMode
)

func (k Kind) String() string {
	if k == KindPresentMode {
		return "present mode"
	}
	return "format"
}

type SurfaceNegotiationError struct {
	Kind Kind
	Want string
}

func (e *SurfaceNegotiationError) Error() string {
	return fmt.Sprintf("no suitable %s: %s not supported", e.Kind, e.Want)
}

// Desired is the exact format, color space and present mode a presentation
// chain must use. There is no fallback.
type Desired struct {
	Format      driver.Format
	ColorSpace  driver.ColorSpace
	PresentMode driver.PresentMode
}

func DefaultDesired() Desired {
	return Desired{
		Format:      driver.FormatB8G8R8A8SRGB,
		ColorSpace:  driver.ColorSpaceSRGBNonlinear,
		PresentMode: driver.PresentModeFIFO,
	}
}

// Contract is what an adapter and surface agreed on.
type Contract struct {
	MinImageCount int
	// MaxImageCount of 0 means no upper bound.
	MaxImageCount int

	MinExtent     driver.Extent2D
	MaxExtent     driver.Extent2D
	CurrentExtent driver.Extent2D

	CurrentTransform driver.SurfaceTransform

	Format      driver.Format
	ColorSpace  driver.ColorSpace
	PresentMode driver.PresentMode
}

func DeriveContract(adapter driver.PhysicalAdapter, surface driver.Surface, want Desired) (Contract, error) {
	capabilities, err := surface.Capabilities(adapter)
	if err != nil {
		return Contract{}, errors.Wrap(err, "query surface capabilities")
	}

	formats, err := surface.Formats(adapter)
	if err != nil {
		return Contract{}, errors.Wrap(err, "query surface formats")
	}

	if !hasFormat(formats, want.Format, want.ColorSpace) {
		return Contract{}, &SurfaceNegotiationError{
			Kind: KindFormat,
			Want: fmt.Sprintf("%s/%s", want.Format, want.ColorSpace),
		}
	}

	presentModes, err := surface.PresentModes(adapter)
	if err != nil {
		return Contract{}, errors.Wrap(err, "query surface present modes")
	}

	if !hasPresentMode(presentModes, want.PresentMode) {
		return Contract{}, &SurfaceNegotiationError{
			Kind: KindPresentMode,
			Want: want.PresentMode.String(),
		}
	}

	return Contract{
		MinImageCount:    capabilities.MinImageCount,
		MaxImageCount:    capabilities.MaxImageCount,
		MinExtent:        capabilities.MinImageExtent,
		MaxExtent:        capabilities.MaxImageExtent,
		CurrentExtent:    capabilities.CurrentExtent,
		CurrentTransform: capabilities.CurrentTransform,
		Format:           want.Format,
		ColorSpace:       want.ColorSpace,
		PresentMode:      want.PresentMode,
	}, nil
}

func hasFormat(formats []driver.SurfaceFormat, format driver.Format, colorSpace driver.ColorSpace) bool {
	for _, candidate := range formats {
		if candidate.Format == format && candidate.ColorSpace == colorSpace {
			return true
		}
	}
	return false
}

func hasPresentMode(modes []driver.PresentMode, mode driver.PresentMode) bool {
	for _, candidate := range modes {
		if candidate == mode {
			return true
		}
	}
	return false
}

// ImageCount asks for one image more than the minimum so the renderer never
// waits on the driver, without going over the maximum.
func (c Contract) ImageCount() int {
	imageCount := c.MinImageCount + 1
	if c.MaxImageCount > 0 && c.MaxImageCount < imageCount {
		imageCount = c.MaxImageCount
	}
	return imageCount
}

// Extent returns the current extent when the surface defines one, otherwise
// the framebuffer size clamped to the supported range.
func (c Contract) Extent(framebufferWidth, framebufferHeight int) driver.Extent2D {
	if !c.CurrentExtent.IsUndefined() {
		return c.CurrentExtent
	}

	return driver.Extent2D{
		Width:  clamp(framebufferWidth, c.MinExtent.Width, c.MaxExtent.Width),
		Height: clamp(framebufferHeight, c.MinExtent.Height, c.MaxExtent.Height),
	}
}

func clamp(value, low, high int) int {
	if value < low {
		value = low
	}
	if value > high {
		value = high
	}
	return value
}
