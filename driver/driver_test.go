package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureFlags(t *testing.T) {
	have := FeatureGeometryShader | FeatureSamplerAnisotropy
	want := FeatureGeometryShader | FeatureWideLines | FeatureDepthClamp

	assert.False(t, have.Has(want))
	assert.True(t, have.Has(FeatureGeometryShader))
	assert.True(t, have.Has(0))
	assert.Equal(t, FeatureWideLines|FeatureDepthClamp, have.Missing(want))
	assert.Equal(t, "depth_clamp|wide_lines", have.Missing(want).String())
	assert.Equal(t, "none", FeatureFlags(0).String())
}

func TestParseNames(t *testing.T) {
	adapterType, err := ParseAdapterType("Discrete")
	require.NoError(t, err)
	assert.Equal(t, AdapterTypeDiscrete, adapterType)

	feature, err := ParseFeature("geometry_shader")
	require.NoError(t, err)
	assert.Equal(t, FeatureGeometryShader, feature)

	format, err := ParseFormat("b8g8r8a8_srgb")
	require.NoError(t, err)
	assert.Equal(t, FormatB8G8R8A8SRGB, format)

	colorSpace, err := ParseColorSpace("SRGB_NONLINEAR")
	require.NoError(t, err)
	assert.Equal(t, ColorSpaceSRGBNonlinear, colorSpace)

	presentMode, err := ParsePresentMode("fifo")
	require.NoError(t, err)
	assert.Equal(t, PresentModeFIFO, presentMode)

	_, err = ParsePresentMode("adaptive")
	assert.Error(t, err)
}

func TestResult(t *testing.T) {
	assert.Equal(t, "ERROR_EXTENSION_NOT_PRESENT", ErrorExtensionNotPresent.String())
	assert.Equal(t, "RESULT(-13)", Result(-13).String())
	assert.True(t, ErrorDeviceLost.Failed())
	assert.False(t, Success.Failed())
}

func TestExtent(t *testing.T) {
	assert.True(t, UndefinedExtent.IsUndefined())
	assert.False(t, Extent2D{Width: 800, Height: 600}.IsUndefined())
}

func TestQueueCreateInfoCount(t *testing.T) {
	info := QueueCreateInfo{FamilyIndex: 1, Priorities: []float32{1, 1}}
	assert.Equal(t, 2, info.Count())
}
