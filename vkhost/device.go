package vkhost

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

type Surface struct {
	surface khr_surface.Surface
}

func physicalDevice(adapter driver.PhysicalAdapter) (core1_0.PhysicalDevice, error) {
	vkAdapter, ok := adapter.(*PhysicalAdapter)
	if !ok {
		return nil, errors.Newf("unsupported physical device %T", adapter)
	}
	return vkAdapter.device, nil
}

func (s *Surface) SupportsPresent(adapter driver.PhysicalAdapter, family int) (bool, error) {
	device, err := physicalDevice(adapter)
	if err != nil {
		return false, err
	}

	supported, _, err := s.surface.PhysicalDeviceSurfaceSupport(device, family)
	return supported, err
}

func (s *Surface) Capabilities(adapter driver.PhysicalAdapter) (driver.SurfaceCapabilities, error) {
	device, err := physicalDevice(adapter)
	if err != nil {
		return driver.SurfaceCapabilities{}, err
	}

	capabilities, _, err := s.surface.PhysicalDeviceSurfaceCapabilities(device)
	if err != nil {
		return driver.SurfaceCapabilities{}, err
	}

	return driver.SurfaceCapabilities{
		MinImageCount:    capabilities.MinImageCount,
		MaxImageCount:    capabilities.MaxImageCount,
		CurrentExtent:    extentOf(capabilities.CurrentExtent),
		MinImageExtent:   extentOf(capabilities.MinImageExtent),
		MaxImageExtent:   extentOf(capabilities.MaxImageExtent),
		CurrentTransform: driver.SurfaceTransform(capabilities.CurrentTransform),
	}, nil
}

// extentOf converts a host extent. The host reports "decided by the
// swapchain" as 0xFFFFFFFF, which arrives as MaxUint32 on 64-bit ints and -1
// on 32-bit ones.
func extentOf(extent core1_0.Extent2D) driver.Extent2D {
	if uint32(extent.Width) == math.MaxUint32 || uint32(extent.Height) == math.MaxUint32 {
		return driver.UndefinedExtent
	}
	return driver.Extent2D{Width: extent.Width, Height: extent.Height}
}

func (s *Surface) Formats(adapter driver.PhysicalAdapter) ([]driver.SurfaceFormat, error) {
	device, err := physicalDevice(adapter)
	if err != nil {
		return nil, err
	}

	surfaceFormats, _, err := s.surface.PhysicalDeviceSurfaceFormats(device)
	if err != nil {
		return nil, err
	}

	formats := make([]driver.SurfaceFormat, 0, len(surfaceFormats))
	for _, format := range surfaceFormats {
		formats = append(formats, driver.SurfaceFormat{
			Format:     driver.Format(format.Format),
			ColorSpace: driver.ColorSpace(format.ColorSpace),
		})
	}
	return formats, nil
}

func (s *Surface) PresentModes(adapter driver.PhysicalAdapter) ([]driver.PresentMode, error) {
	device, err := physicalDevice(adapter)
	if err != nil {
		return nil, err
	}

	presentModes, _, err := s.surface.PhysicalDeviceSurfacePresentModes(device)
	if err != nil {
		return nil, err
	}

	modes := make([]driver.PresentMode, 0, len(presentModes))
	for _, mode := range presentModes {
		modes = append(modes, driver.PresentMode(mode))
	}
	return modes, nil
}

func (s *Surface) Destroy() {
	s.surface.Destroy(nil)
}

type Device struct {
	device core1_0.Device
}

func (d *Device) Queue(family, index int) driver.Queue {
	return d.device.GetQueue(family, index)
}

func (d *Device) CreateSwapchain(info driver.SwapchainCreateInfo) (driver.Swapchain, driver.Result, error) {
	surface, ok := info.Surface.(*Surface)
	if !ok {
		return nil, driver.ErrorInitializationFailed, errors.Newf("unsupported surface %T", info.Surface)
	}

	sharingMode := core1_0.SharingModeExclusive
	if info.SharingMode == driver.SharingModeConcurrent {
		sharingMode = core1_0.SharingModeConcurrent
	}

	swapchainExtension := khr_swapchain.CreateExtensionFromDevice(d.device)
	swapchain, result, err := swapchainExtension.CreateSwapchain(d.device, nil, khr_swapchain.SwapchainCreateInfo{
		Surface: surface.surface,

		MinImageCount:    info.MinImageCount,
		ImageFormat:      core1_0.Format(info.Format),
		ImageColorSpace:  khr_surface.ColorSpace(info.ColorSpace),
		ImageExtent:      core1_0.Extent2D{Width: info.Extent.Width, Height: info.Extent.Height},
		ImageArrayLayers: info.ImageArrayLayers,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: info.QueueFamilyIndices,

		PreTransform:   khr_surface.SurfaceTransformFlags(info.PreTransform),
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentMode(info.PresentMode),
		Clipped:        info.Clipped,
	})
	if err != nil {
		return nil, driver.Result(result), err
	}

	return &Swapchain{swapchain: swapchain}, driver.Success, nil
}

func (d *Device) Destroy() {
	d.device.Destroy(nil)
}

type Swapchain struct {
	swapchain khr_swapchain.Swapchain
}

func (s *Swapchain) Images() ([]driver.Image, driver.Result, error) {
	swapchainImages, result, err := s.swapchain.SwapchainImages()
	if err != nil {
		return nil, driver.Result(result), err
	}

	images := make([]driver.Image, 0, len(swapchainImages))
	for _, image := range swapchainImages {
		images = append(images, image)
	}
	return images, driver.Success, nil
}

func (s *Swapchain) Destroy() {
	s.swapchain.Destroy(nil)
}
