// Package vkhost implements the driver interfaces on top of vkngwrapper and
// SDL2.
package vkhost

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2"
)

// Platform opens SDL windows with Vulkan support. SDL must be driven from the
// thread that called OpenWindow.
type Platform struct{}

func (Platform) OpenWindow(width, height int, title string) (driver.Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "init sdl video")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "create window")
	}

	return &Window{window: window}, nil
}

type Window struct {
	window *sdl.Window
}

// SDL exposes the native window, e.g. for an event loop.
func (w *Window) SDL() *sdl.Window {
	return w.window
}

func (w *Window) Loader() (driver.Loader, error) {
	loader, err := core.CreateLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return nil, err
	}
	return &Loader{loader: loader}, nil
}

func (w *Window) RequiredInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *Window) FramebufferSize() (int, int) {
	width, height := w.window.VulkanGetDrawableSize()
	return int(width), int(height)
}

func (w *Window) CreateSurface(instance driver.Instance) (driver.Surface, driver.Result, error) {
	vkInstance, ok := instance.(*Instance)
	if !ok {
		return nil, driver.ErrorInitializationFailed, errors.Newf("unsupported instance %T", instance)
	}

	surfaceLoader := khr_surface.CreateExtensionFromInstance(vkInstance.instance)
	surface, err := vkng_sdl2.CreateSurface(vkInstance.instance, surfaceLoader, w.window)
	if err != nil {
		return nil, driver.ErrorInitializationFailed, err
	}

	return &Surface{surface: surface}, driver.Success, nil
}

func (w *Window) Destroy() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}

type Loader struct {
	loader core.Loader
}

func (l *Loader) AvailableExtensions() ([]string, error) {
	extensions, _, err := l.loader.AvailableExtensions()
	if err != nil {
		return nil, err
	}
	return names(extensions), nil
}

func (l *Loader) AvailableLayers() ([]string, error) {
	layers, _, err := l.loader.AvailableLayers()
	if err != nil {
		return nil, err
	}
	return names(layers), nil
}

// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
const instanceCreateEnumeratePortability core1_0.InstanceCreateFlags = 0x00000001

func (l *Loader) CreateInstance(info driver.InstanceCreateInfo) (driver.Instance, driver.Result, error) {
	instance, result, err := l.loader.CreateInstance(nil, instanceCreateInfo(info))
	if err != nil {
		return nil, driver.Result(result), err
	}

	return &Instance{instance: instance}, driver.Success, nil
}

func instanceCreateInfo(info driver.InstanceCreateInfo) core1_0.InstanceCreateInfo {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:       info.ApplicationName,
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            "No Engine",
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_2,
		EnabledExtensionNames: info.EnabledExtensions,
		EnabledLayerNames:     info.EnabledLayers,
	}

	if info.EnumeratePortability {
		instanceOptions.Flags |= instanceCreateEnumeratePortability
	}

	if info.Messenger != nil {
		instanceOptions.Next = messengerOptions(*info.Messenger)
	}

	return instanceOptions
}

func messengerOptions(info driver.MessengerCreateInfo) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	handler := info.Handler
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.DebugUtilsMessageSeverityFlags(info.Severities),
		MessageType:     ext_debug_utils.DebugUtilsMessageTypeFlags(info.Categories),
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			return handler(severityOf(severity), categoryOf(msgType), data.Message)
		},
	}
}

func names[T any](set map[string]T) []string {
	list := make([]string, 0, len(set))
	for name := range set {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
