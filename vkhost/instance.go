package vkhost

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/diagnostics"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

type Instance struct {
	instance core1_0.Instance
}

func (i *Instance) EnumerateAdapters() ([]driver.PhysicalAdapter, error) {
	physicalDevices, _, err := i.instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	adapters := make([]driver.PhysicalAdapter, 0, len(physicalDevices))
	for _, device := range physicalDevices {
		adapters = append(adapters, &PhysicalAdapter{device: device})
	}
	return adapters, nil
}

// DiagnosticsEntryPoints resolves the debug utils functions. They are only
// present when the instance was created with VK_EXT_debug_utils enabled.
func (i *Instance) DiagnosticsEntryPoints() driver.DiagnosticsEntryPoints {
	entryPoints := &debugEntryPoints{instance: i.instance}

	debugLoader := ext_debug_utils.CreateExtensionFromInstance(i.instance)
	if debugLoader != nil {
		entryPoints.extension = debugLoader
	}
	return entryPoints
}

func (i *Instance) Destroy() {
	i.instance.Destroy(nil)
}

type debugEntryPoints struct {
	instance  core1_0.Instance
	extension ext_debug_utils.Extension
}

func (e *debugEntryPoints) CreateMessenger() (driver.CreateMessengerFunc, bool) {
	if e.extension == nil {
		return nil, false
	}

	return func(info driver.MessengerCreateInfo) (driver.Messenger, driver.Result, error) {
		messenger, result, err := e.extension.CreateDebugUtilsMessenger(e.instance, nil, messengerOptions(info))
		if err != nil {
			return nil, driver.Result(result), err
		}
		return messenger, driver.Success, nil
	}, true
}

func (e *debugEntryPoints) DestroyMessenger() (driver.DestroyMessengerFunc, bool) {
	if e.extension == nil {
		return nil, false
	}

	return func(messenger driver.Messenger) {
		if debugMessenger, ok := messenger.(ext_debug_utils.DebugUtilsMessenger); ok {
			debugMessenger.Destroy(nil)
		}
	}, true
}

func severityOf(flags ext_debug_utils.DebugUtilsMessageSeverityFlags) diagnostics.Severity {
	return diagnostics.Severity(flags)
}

func categoryOf(flags ext_debug_utils.DebugUtilsMessageTypeFlags) diagnostics.Category {
	return diagnostics.Category(flags)
}

type PhysicalAdapter struct {
	device core1_0.PhysicalDevice
}

func (a *PhysicalAdapter) Properties() (driver.AdapterProperties, error) {
	properties, err := a.device.Properties()
	if err != nil {
		return driver.AdapterProperties{}, err
	}
	if properties == nil {
		return driver.AdapterProperties{}, errors.New("no physical device properties")
	}

	return driver.AdapterProperties{
		Type:              adapterTypes[properties.DriverType],
		Name:              properties.DriverName,
		VendorID:          properties.VendorID,
		DeviceID:          properties.DeviceID,
		PipelineCacheUUID: properties.PipelineCacheUUID,
	}, nil
}

var adapterTypes = map[core1_0.PhysicalDeviceType]driver.AdapterType{
	core1_0.PhysicalDeviceTypeOther:         driver.AdapterTypeOther,
	core1_0.PhysicalDeviceTypeIntegratedGPU: driver.AdapterTypeIntegrated,
	core1_0.PhysicalDeviceTypeDiscreteGPU:   driver.AdapterTypeDiscrete,
	core1_0.PhysicalDeviceTypeVirtualGPU:    driver.AdapterTypeVirtual,
	core1_0.PhysicalDeviceTypeCPU:           driver.AdapterTypeCPU,
}

func (a *PhysicalAdapter) Features() driver.FeatureFlags {
	features := a.device.Features()
	if features == nil {
		return 0
	}

	var flags driver.FeatureFlags
	set := func(enabled bool, flag driver.FeatureFlags) {
		if enabled {
			flags |= flag
		}
	}
	set(features.GeometryShader, driver.FeatureGeometryShader)
	set(features.TessellationShader, driver.FeatureTessellationShader)
	set(features.SamplerAnisotropy, driver.FeatureSamplerAnisotropy)
	set(features.MultiDrawIndirect, driver.FeatureMultiDrawIndirect)
	set(features.FillModeNonSolid, driver.FeatureFillModeNonSolid)
	set(features.WideLines, driver.FeatureWideLines)
	set(features.DepthClamp, driver.FeatureDepthClamp)
	set(features.ShaderFloat64, driver.FeatureShaderFloat64)
	set(features.IndependentBlend, driver.FeatureIndependentBlend)
	set(features.SampleRateShading, driver.FeatureSampleRateShading)
	return flags
}

func enabledFeatures(flags driver.FeatureFlags) *core1_0.PhysicalDeviceFeatures {
	return &core1_0.PhysicalDeviceFeatures{
		GeometryShader:     flags.Has(driver.FeatureGeometryShader),
		TessellationShader: flags.Has(driver.FeatureTessellationShader),
		SamplerAnisotropy:  flags.Has(driver.FeatureSamplerAnisotropy),
		MultiDrawIndirect:  flags.Has(driver.FeatureMultiDrawIndirect),
		FillModeNonSolid:   flags.Has(driver.FeatureFillModeNonSolid),
		WideLines:          flags.Has(driver.FeatureWideLines),
		DepthClamp:         flags.Has(driver.FeatureDepthClamp),
		ShaderFloat64:      flags.Has(driver.FeatureShaderFloat64),
		IndependentBlend:   flags.Has(driver.FeatureIndependentBlend),
		SampleRateShading:  flags.Has(driver.FeatureSampleRateShading),
	}
}

func (a *PhysicalAdapter) AvailableExtensions() ([]string, error) {
	extensions, _, err := a.device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, err
	}
	return names(extensions), nil
}

func (a *PhysicalAdapter) QueueFamilies() []driver.QueueFamilyProperties {
	queueFamilies := a.device.QueueFamilyProperties()

	families := make([]driver.QueueFamilyProperties, 0, len(queueFamilies))
	for _, queueFamily := range queueFamilies {
		families = append(families, driver.QueueFamilyProperties{
			Flags:      driver.QueueFlags(queueFamily.QueueFlags),
			QueueCount: queueFamily.QueueCount,
		})
	}
	return families
}

func (a *PhysicalAdapter) CreateDevice(info driver.DeviceCreateInfo) (driver.Device, driver.Result, error) {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	for _, queue := range info.Queues {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queue.FamilyIndex,
			QueuePriorities:  queue.Priorities,
		})
	}

	device, result, err := a.device.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledFeatures:       enabledFeatures(info.EnabledFeatures),
		EnabledExtensionNames: info.EnabledExtensions,
	})
	if err != nil {
		return nil, driver.Result(result), err
	}

	return &Device{device: device}, driver.Success, nil
}
