// Package driver is the boundary between the negotiation logic and the host
// graphics driver. Everything the rest of the module knows about windows,
// instances, adapters, surfaces and devices goes through these interfaces.
package driver

import "github.com/vkngwrapper/bootstrap/diagnostics"

// Platform is the window-system collaborator.
type Platform interface {
	OpenWindow(width, height int, title string) (Window, error)
}

type Window interface {
	// Loader returns the host entry point bound to this window system.
	Loader() (Loader, error)
	RequiredInstanceExtensions() []string
	FramebufferSize() (width, height int)
	CreateSurface(instance Instance) (Surface, Result, error)
	Destroy()
}

type Loader interface {
	AvailableExtensions() ([]string, error)
	AvailableLayers() ([]string, error)
	CreateInstance(info InstanceCreateInfo) (Instance, Result, error)
}

type InstanceCreateInfo struct {
	ApplicationName      string
	EnabledExtensions    []string
	EnabledLayers        []string
	EnumeratePortability bool

	// Messenger, when set, receives messages emitted while the instance itself
	// is being created or destroyed.
	Messenger *MessengerCreateInfo
}

type MessengerCreateInfo struct {
	Severities diagnostics.SeverityFlags
	Categories diagnostics.CategoryFlags
	Handler    diagnostics.Handler
}

type Instance interface {
	EnumerateAdapters() ([]PhysicalAdapter, error)
	// DiagnosticsEntryPoints is resolved once, when the instance is created.
	DiagnosticsEntryPoints() DiagnosticsEntryPoints
	Destroy()
}

// Messenger is an opaque diagnostics channel handle.
type Messenger any

type CreateMessengerFunc func(info MessengerCreateInfo) (Messenger, Result, error)
type DestroyMessengerFunc func(messenger Messenger)

// DiagnosticsEntryPoints exposes the optional diagnostics functions of an
// instance. Either may be absent when the extension is not active.
type DiagnosticsEntryPoints interface {
	CreateMessenger() (CreateMessengerFunc, bool)
	DestroyMessenger() (DestroyMessengerFunc, bool)
}

type PhysicalAdapter interface {
	Properties() (AdapterProperties, error)
	Features() FeatureFlags
	AvailableExtensions() ([]string, error)
	QueueFamilies() []QueueFamilyProperties
	CreateDevice(info DeviceCreateInfo) (Device, Result, error)
}

// QueueCreateInfo requests len(Priorities) queues from one family.
type QueueCreateInfo struct {
	FamilyIndex int
	Priorities  []float32
}

func (i QueueCreateInfo) Count() int {
	return len(i.Priorities)
}

type DeviceCreateInfo struct {
	Queues            []QueueCreateInfo
	EnabledExtensions []string
	EnabledFeatures   FeatureFlags
}

type Surface interface {
	SupportsPresent(adapter PhysicalAdapter, family int) (bool, error)
	Capabilities(adapter PhysicalAdapter) (SurfaceCapabilities, error)
	Formats(adapter PhysicalAdapter) ([]SurfaceFormat, error)
	PresentModes(adapter PhysicalAdapter) ([]PresentMode, error)
	Destroy()
}

// Queue is an opaque command submission queue handle.
type Queue any

// Image is an opaque presentation image handle.
type Image any

type Device interface {
	Queue(family, index int) Queue
	CreateSwapchain(info SwapchainCreateInfo) (Swapchain, Result, error)
	Destroy()
}

type SwapchainCreateInfo struct {
	Surface Surface

	MinImageCount    int
	Format           Format
	ColorSpace       ColorSpace
	Extent           Extent2D
	ImageArrayLayers int

	SharingMode        SharingMode
	QueueFamilyIndices []int

	PreTransform SurfaceTransform
	PresentMode  PresentMode
	Clipped      bool
}

type Swapchain interface {
	Images() ([]Image, Result, error)
	Destroy()
}
