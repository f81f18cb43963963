package capability

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiateReturnsRequiredOnly(t *testing.T) {
	accepted, err := Negotiate(Extension, []string{"presentation"}, []string{"presentation", "diagnostics"})
	require.NoError(t, err)
	assert.Equal(t, []string{"presentation"}, accepted)
}

func TestNegotiateEmptyRequirement(t *testing.T) {
	accepted, err := Negotiate(Layer, nil, []string{"VK_LAYER_KHRONOS_validation"})
	require.NoError(t, err)
	assert.Empty(t, accepted)
}

func TestNegotiateReportsEveryMissingName(t *testing.T) {
	_, err := Negotiate(Extension,
		[]string{"VK_KHR_surface", "VK_KHR_xcb_surface", "VK_EXT_debug_utils", "VK_KHR_xcb_surface"},
		[]string{"VK_KHR_surface"})
	require.Error(t, err)

	var missing *MissingCapabilityError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, Extension, missing.Kind)
	assert.Equal(t, []string{"VK_KHR_xcb_surface", "VK_EXT_debug_utils"}, missing.Names)
	assert.Equal(t, "extension requested VK_KHR_xcb_surface,VK_EXT_debug_utils, but not available", err.Error())
}

func TestNegotiateIsCaseSensitive(t *testing.T) {
	_, err := Negotiate(Layer, []string{"VK_LAYER_KHRONOS_validation"}, []string{"vk_layer_khronos_validation"})

	var missing *MissingCapabilityError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, Layer, missing.Kind)
	assert.Equal(t, []string{"VK_LAYER_KHRONOS_validation"}, missing.Names)
}

func TestNegotiateSubsetProperty(t *testing.T) {
	universe := []string{"a", "b", "c", "d"}

	// every (required, available) pair drawn from the power set of universe
	for requiredMask := 0; requiredMask < 1<<len(universe); requiredMask++ {
		for availableMask := 0; availableMask < 1<<len(universe); availableMask++ {
			required := subset(universe, requiredMask)
			available := subset(universe, availableMask)
			expectedMissing := subset(universe, requiredMask&^availableMask)

			accepted, err := Negotiate(Extension, required, available)
			if len(expectedMissing) == 0 {
				require.NoError(t, err)
				assert.Equal(t, len(required), len(accepted))
				continue
			}

			var missing *MissingCapabilityError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, expectedMissing, missing.Names)
			assert.Nil(t, accepted)
		}
	}
}

func TestNegotiateDoesNotAliasInput(t *testing.T) {
	required := []string{"VK_KHR_swapchain"}
	accepted, err := Negotiate(Extension, required, required)
	require.NoError(t, err)

	accepted[0] = "changed"
	assert.Equal(t, "VK_KHR_swapchain", required[0])
}

func TestOptional(t *testing.T) {
	enabled := Optional(
		[]string{"VK_KHR_portability_enumeration", "VK_KHR_get_physical_device_properties2"},
		[]string{"VK_KHR_surface", "VK_KHR_get_physical_device_properties2"})
	assert.Equal(t, []string{"VK_KHR_get_physical_device_properties2"}, enabled)

	assert.Empty(t, Optional([]string{"VK_KHR_portability_subset"}, nil))
}

func subset(universe []string, mask int) []string {
	var names []string
	for i, name := range universe {
		if mask&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return names
}
