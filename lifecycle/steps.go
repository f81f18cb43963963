package lifecycle

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/capability"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/bootstrap/queues"
	"github.com/vkngwrapper/bootstrap/selection"
	"github.com/vkngwrapper/bootstrap/surface"
)

func (c *Controller) openWindow(ctx *Context) error {
	window, err := c.platform.OpenWindow(ctx.width, ctx.height, ctx.title)
	if err != nil {
		return &InitializationError{cause: err}
	}

	ctx.Window = window
	return nil
}

func (c *Controller) closeWindow(ctx *Context) {
	if ctx.Window != nil {
		ctx.Window.Destroy()
		ctx.Window = nil
	}
}

func (c *Controller) logNames(header string, names []string) {
	c.logger.Printf("%s:", header)
	for _, name := range names {
		c.logger.Printf("\t%s", name)
	}
}

func (c *Controller) createInstance(ctx *Context) error {
	loader, err := ctx.Window.Loader()
	if err != nil {
		return &InitializationError{cause: errors.Wrap(err, "load vulkan entry point")}
	}

	availableExtensions, err := loader.AvailableExtensions()
	if err != nil {
		return errors.Wrap(err, "enumerate instance extensions")
	}
	c.logNames("available extensions", availableExtensions)

	required := append([]string(nil), ctx.Window.RequiredInstanceExtensions()...)
	if c.config.DiagnosticsEnabled {
		required = append(required, DebugUtilsExtension)
	}

	extensions, err := capability.Negotiate(capability.Extension, required, availableExtensions)
	if err != nil {
		return errors.Wrap(err, "instance")
	}

	portability := capability.Optional([]string{PortabilityEnumerationExtension}, availableExtensions)
	extensions = append(extensions, portability...)

	var layers []string
	if c.config.DiagnosticsEnabled {
		availableLayers, err := loader.AvailableLayers()
		if err != nil {
			return errors.Wrap(err, "enumerate instance layers")
		}
		c.logNames("available layers", availableLayers)

		layers, err = capability.Negotiate(capability.Layer, c.config.ValidationLayers, availableLayers)
		if err != nil {
			return errors.Wrap(err, "instance")
		}
	}

	info := driver.InstanceCreateInfo{
		ApplicationName:      c.config.ApplicationName,
		EnabledExtensions:    extensions,
		EnabledLayers:        layers,
		EnumeratePortability: len(portability) > 0,
	}
	if c.config.DiagnosticsEnabled {
		messengerInfo := c.messengerCreateInfo()
		info.Messenger = &messengerInfo
	}

	instance, result, err := loader.CreateInstance(info)
	if err != nil {
		return &ProvisioningError{Stage: StageInstance, Code: result, cause: err}
	}
	ctx.Instance = instance

	if !c.config.DiagnosticsEnabled {
		return nil
	}

	if err := c.createMessenger(ctx, *info.Messenger); err != nil {
		c.destroyInstance(ctx)
		return err
	}
	return nil
}

func (c *Controller) messengerCreateInfo() driver.MessengerCreateInfo {
	return driver.MessengerCreateInfo{
		Severities: c.config.Diagnostics.Severities(),
		Categories: c.config.Diagnostics.Categories,
		Handler:    c.handler,
	}
}

func (c *Controller) createMessenger(ctx *Context, info driver.MessengerCreateInfo) error {
	c.entryPoints = ctx.Instance.DiagnosticsEntryPoints()
	if c.entryPoints == nil {
		return &ProvisioningError{
			Stage: StageDiagnostics,
			Code:  driver.ErrorExtensionNotPresent,
			cause: errors.New("debug utils entry points not loaded"),
		}
	}

	create, ok := c.entryPoints.CreateMessenger()
	if !ok {
		return &ProvisioningError{
			Stage: StageDiagnostics,
			Code:  driver.ErrorExtensionNotPresent,
			cause: errors.New("vkCreateDebugUtilsMessengerEXT not loaded"),
		}
	}

	messenger, result, err := create(info)
	if err != nil {
		return &ProvisioningError{Stage: StageDiagnostics, Code: result, cause: err}
	}

	ctx.Messenger = messenger
	return nil
}

func (c *Controller) destroyInstance(ctx *Context) {
	if ctx.Messenger != nil {
		if c.entryPoints != nil {
			if destroy, ok := c.entryPoints.DestroyMessenger(); ok {
				destroy(ctx.Messenger)
			} else {
				c.logger.Printf("vkDestroyDebugUtilsMessengerEXT not loaded, messenger released with the instance")
			}
		}
		ctx.Messenger = nil
	}
	c.entryPoints = nil

	if ctx.Instance != nil {
		ctx.Instance.Destroy()
		ctx.Instance = nil
	}
}

func (c *Controller) createSurface(ctx *Context) error {
	target, result, err := ctx.Window.CreateSurface(ctx.Instance)
	if err != nil {
		return &ProvisioningError{Stage: StageSurface, Code: result, cause: err}
	}

	ctx.Surface = target
	return nil
}

func (c *Controller) destroySurface(ctx *Context) {
	if ctx.Surface != nil {
		ctx.Surface.Destroy()
		ctx.Surface = nil
	}
}

func (c *Controller) pickPhysicalDevice(ctx *Context) error {
	adapters, err := selection.Enumerate(ctx.Instance, c.logger)
	if err != nil {
		return err
	}

	selected, err := selection.Select(adapters, ctx.Surface, c.config.Criteria, c.logger)
	if err != nil {
		return err
	}

	ctx.Selected = selected
	return nil
}

func (c *Controller) forgetPhysicalDevice(ctx *Context) {
	ctx.Selected = selection.Result{}
}

func (c *Controller) createLogicalDevice(ctx *Context) error {
	adapter := ctx.Selected.Adapter.Handle
	assignment := ctx.Selected.Queues

	queueInfos, ordinals := queues.Plan(assignment, ctx.Selected.Families)

	extensions := append([]string(nil), ctx.Selected.Extensions...)
	extensions = append(extensions, capability.Optional([]string{PortabilitySubsetExtension}, ctx.Selected.AvailableExtensions)...)

	device, result, err := adapter.CreateDevice(driver.DeviceCreateInfo{
		Queues:            queueInfos,
		EnabledExtensions: extensions,
		EnabledFeatures:   c.config.Criteria.RequiredFeatures,
	})
	if err != nil {
		return &ProvisioningError{Stage: StageDevice, Code: result, cause: err}
	}

	ctx.Device = device
	ctx.GraphicsQueue = device.Queue(assignment.GraphicsFamily, ordinals.Graphics)
	ctx.PresentQueue = device.Queue(assignment.PresentFamily, ordinals.Present)
	return nil
}

func (c *Controller) destroyLogicalDevice(ctx *Context) {
	ctx.GraphicsQueue = nil
	ctx.PresentQueue = nil

	if ctx.Device != nil {
		ctx.Device.Destroy()
		ctx.Device = nil
	}
}

// SwapchainCreateInfo fills in the presentation chain parameters for a
// negotiated surface contract and queue assignment.
func SwapchainCreateInfo(target driver.Surface, contract surface.Contract, assignment queues.Assignment, framebufferWidth, framebufferHeight int) driver.SwapchainCreateInfo {
	sharingMode, familyIndices := assignment.SharingMode()

	return driver.SwapchainCreateInfo{
		Surface:            target,
		MinImageCount:      contract.ImageCount(),
		Format:             contract.Format,
		ColorSpace:         contract.ColorSpace,
		Extent:             contract.Extent(framebufferWidth, framebufferHeight),
		ImageArrayLayers:   1,
		SharingMode:        sharingMode,
		QueueFamilyIndices: familyIndices,
		PreTransform:       contract.CurrentTransform,
		PresentMode:        contract.PresentMode,
		Clipped:            true,
	}
}

func (c *Controller) createSwapchain(ctx *Context) error {
	width, height := ctx.Window.FramebufferSize()
	info := SwapchainCreateInfo(ctx.Surface, ctx.Selected.Contract, ctx.Selected.Queues, width, height)

	swapchain, result, err := ctx.Device.CreateSwapchain(info)
	if err != nil {
		return &ProvisioningError{Stage: StagePresentationChain, Code: result, cause: err}
	}

	images, result, err := swapchain.Images()
	if err != nil {
		swapchain.Destroy()
		return &ProvisioningError{Stage: StagePresentationChain, Code: result, cause: errors.Wrap(err, "get swapchain images")}
	}

	ctx.Swapchain = swapchain
	ctx.Images = images
	ctx.Extent = info.Extent
	ctx.ImageCount = len(images)
	ctx.SharingMode = info.SharingMode
	ctx.QueueFamilyIndices = info.QueueFamilyIndices

	c.logger.Printf("swapchain images: %d, extent: %dx%d", ctx.ImageCount, ctx.Extent.Width, ctx.Extent.Height)
	return nil
}

func (c *Controller) destroySwapchain(ctx *Context) {
	ctx.Images = nil
	ctx.ImageCount = 0
	ctx.Extent = driver.Extent2D{}
	ctx.SharingMode = driver.SharingModeExclusive
	ctx.QueueFamilyIndices = nil

	if ctx.Swapchain != nil {
		ctx.Swapchain.Destroy()
		ctx.Swapchain = nil
	}
}
