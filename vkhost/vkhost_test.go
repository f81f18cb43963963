package vkhost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vkngwrapper/bootstrap/diagnostics"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/bootstrap/surface"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

func TestEnabledFeatures(t *testing.T) {
	features := enabledFeatures(driver.FeatureGeometryShader | driver.FeatureWideLines)
	assert.True(t, features.GeometryShader)
	assert.True(t, features.WideLines)
	assert.False(t, features.SamplerAnisotropy)
	assert.False(t, features.TessellationShader)
}

func TestMessengerOptions(t *testing.T) {
	var got []string
	options := messengerOptions(driver.MessengerCreateInfo{
		Severities: diagnostics.SeverityFlags(diagnostics.SeverityWarning) | diagnostics.SeverityFlags(diagnostics.SeverityError),
		Categories: diagnostics.AllCategories,
		Handler: func(severity diagnostics.Severity, category diagnostics.Category, message string) bool {
			got = append(got, severity.String()+" "+category.String()+" "+message)
			return false
		},
	})

	assert.Equal(t, ext_debug_utils.SeverityWarning|ext_debug_utils.SeverityError, options.MessageSeverity)
	assert.Equal(t, ext_debug_utils.TypeGeneral|ext_debug_utils.TypeValidation|ext_debug_utils.TypePerformance, options.MessageType)

	abort := options.UserCallback(ext_debug_utils.TypeValidation, ext_debug_utils.SeverityError, &ext_debug_utils.DebugUtilsMessengerCallbackData{Message: "bad handle"})
	assert.False(t, abort)
	assert.Equal(t, []string{"ERROR VALIDATION bad handle"}, got)
}

func TestNamesAreSorted(t *testing.T) {
	assert.Equal(t, []string{"VK_EXT_debug_utils", "VK_KHR_surface"}, names(map[string]int{
		"VK_KHR_surface":     1,
		"VK_EXT_debug_utils": 2,
	}))
}

func TestExtentOfUndefined(t *testing.T) {
	// as the host hands it over: 0xFFFFFFFF widened to int
	allOnes := uint32(math.MaxUint32)
	undefined := core1_0.Extent2D{Width: int(allOnes), Height: int(allOnes)}

	extent := extentOf(undefined)
	assert.True(t, extent.IsUndefined())
	assert.Equal(t, driver.UndefinedExtent, extent)

	contract := surface.Contract{
		CurrentExtent: extent,
		MinExtent:     extentOf(core1_0.Extent2D{Width: 1, Height: 1}),
		MaxExtent:     extentOf(core1_0.Extent2D{Width: 4096, Height: 4096}),
	}
	assert.Equal(t, driver.Extent2D{Width: 1920, Height: 1080}, contract.Extent(1920, 1080))
}

func TestExtentOfDefined(t *testing.T) {
	assert.Equal(t, driver.Extent2D{Width: 800, Height: 600}, extentOf(core1_0.Extent2D{Width: 800, Height: 600}))
}

func TestInstanceCreateInfo(t *testing.T) {
	options := instanceCreateInfo(driver.InstanceCreateInfo{
		ApplicationName:      "Hello Triangle",
		EnabledExtensions:    []string{"VK_KHR_surface", "VK_KHR_portability_enumeration"},
		EnumeratePortability: true,
	})
	assert.Equal(t, "Hello Triangle", options.ApplicationName)
	assert.Equal(t, core1_0.InstanceCreateFlags(0x00000001), options.Flags&instanceCreateEnumeratePortability)
	assert.Equal(t, []string{"VK_KHR_surface", "VK_KHR_portability_enumeration"}, options.EnabledExtensionNames)
	assert.Nil(t, options.Next)

	plain := instanceCreateInfo(driver.InstanceCreateInfo{ApplicationName: "Hello Triangle"})
	assert.Zero(t, plain.Flags&instanceCreateEnumeratePortability)
}
