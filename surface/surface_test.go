package surface

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/bootstrap/internal/drivertest"
)

func TestDeriveContract(t *testing.T) {
	adapter := drivertest.NewAdapter("gpu")
	adapter.Capabilities.CurrentTransform = 1

	contract, err := DeriveContract(adapter, &drivertest.Surface{}, DefaultDesired())
	require.NoError(t, err)

	assert.Equal(t, 2, contract.MinImageCount)
	assert.Equal(t, 8, contract.MaxImageCount)
	assert.Equal(t, driver.Extent2D{Width: 1, Height: 1}, contract.MinExtent)
	assert.Equal(t, driver.Extent2D{Width: 4096, Height: 4096}, contract.MaxExtent)
	assert.Equal(t, driver.Extent2D{Width: 800, Height: 600}, contract.CurrentExtent)
	assert.Equal(t, driver.SurfaceTransform(1), contract.CurrentTransform)
	assert.Equal(t, driver.FormatB8G8R8A8SRGB, contract.Format)
	assert.Equal(t, driver.ColorSpaceSRGBNonlinear, contract.ColorSpace)
	assert.Equal(t, driver.PresentModeFIFO, contract.PresentMode)
}

func TestDeriveContractRequiresExactFormatPair(t *testing.T) {
	adapter := drivertest.NewAdapter("gpu")
	adapter.Formats = []driver.SurfaceFormat{
		{Format: driver.FormatB8G8R8A8SRGB, ColorSpace: driver.ColorSpaceExtendedSRGBLinear},
		{Format: driver.FormatR8G8B8A8SRGB, ColorSpace: driver.ColorSpaceSRGBNonlinear},
	}

	_, err := DeriveContract(adapter, &drivertest.Surface{}, DefaultDesired())

	var negotiation *SurfaceNegotiationError
	require.True(t, errors.As(err, &negotiation))
	assert.Equal(t, KindFormat, negotiation.Kind)
	assert.Equal(t, "no suitable format: B8G8R8A8_SRGB/SRGB_NONLINEAR not supported", err.Error())
}

func TestDeriveContractRequiresExactPresentMode(t *testing.T) {
	adapter := drivertest.NewAdapter("gpu")
	adapter.PresentModes = []driver.PresentMode{driver.PresentModeMailbox, driver.PresentModeImmediate}

	_, err := DeriveContract(adapter, &drivertest.Surface{}, DefaultDesired())

	var negotiation *SurfaceNegotiationError
	require.True(t, errors.As(err, &negotiation))
	assert.Equal(t, KindPresentMode, negotiation.Kind)
}

func TestDeriveContractEmptyLists(t *testing.T) {
	adapter := drivertest.NewAdapter("gpu")
	adapter.Formats = nil

	_, err := DeriveContract(adapter, &drivertest.Surface{}, DefaultDesired())

	var negotiation *SurfaceNegotiationError
	require.True(t, errors.As(err, &negotiation))
	assert.Equal(t, KindFormat, negotiation.Kind)
}

func TestDeriveContractHostFailure(t *testing.T) {
	adapter := drivertest.NewAdapter("gpu")
	adapter.CapabilitiesErr = errors.New("surface lost")

	_, err := DeriveContract(adapter, &drivertest.Surface{}, DefaultDesired())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query surface capabilities")

	var negotiation *SurfaceNegotiationError
	assert.False(t, errors.As(err, &negotiation))
}

func TestImageCount(t *testing.T) {
	testCases := []struct {
		name     string
		min, max int
		expected int
	}{
		{name: "unbounded", min: 2, max: 0, expected: 3},
		{name: "room above minimum", min: 2, max: 8, expected: 3},
		{name: "clamped to maximum", min: 3, max: 3, expected: 3},
		{name: "single image", min: 1, max: 1, expected: 1},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			contract := Contract{MinImageCount: testCase.min, MaxImageCount: testCase.max}
			assert.Equal(t, testCase.expected, contract.ImageCount())
		})
	}
}

func TestExtentUsesCurrentExtentWhenDefined(t *testing.T) {
	contract := Contract{
		CurrentExtent: driver.Extent2D{Width: 1280, Height: 720},
		MinExtent:     driver.Extent2D{Width: 1, Height: 1},
		MaxExtent:     driver.Extent2D{Width: 4096, Height: 4096},
	}
	assert.Equal(t, driver.Extent2D{Width: 1280, Height: 720}, contract.Extent(1920, 1080))
}

func TestExtentClampsFramebuffer(t *testing.T) {
	contract := Contract{
		CurrentExtent: driver.UndefinedExtent,
		MinExtent:     driver.Extent2D{Width: 1, Height: 1},
		MaxExtent:     driver.Extent2D{Width: 4096, Height: 4096},
	}

	assert.Equal(t, driver.Extent2D{Width: 1920, Height: 1080}, contract.Extent(1920, 1080))
	assert.Equal(t, driver.Extent2D{Width: 4096, Height: 1}, contract.Extent(5000, 0))
}
