// Package lifecycle provisions a rendering context in dependency order and
// tears it down again in reverse.
package lifecycle

import (
	"io"
	"log"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"
	"github.com/vkngwrapper/bootstrap/diagnostics"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/bootstrap/selection"
)

const (
	DebugUtilsExtension             = "VK_EXT_debug_utils"
	PortabilityEnumerationExtension = "VK_KHR_portability_enumeration"
	PortabilitySubsetExtension      = "VK_KHR_portability_subset"
	KhronosValidationLayer          = "VK_LAYER_KHRONOS_validation"
	defaultApplicationName          = "Hello Triangle"
)

type Config struct {
	ApplicationName string

	// DiagnosticsEnabled turns on the validation layers, the debug messenger
	// and verbose logging.
	DiagnosticsEnabled bool
	Diagnostics        diagnostics.Options
	ValidationLayers   []string

	Criteria selection.Criteria

	// Handler receives debug messages. When nil, messages go to Logger through
	// diagnostics.LogHandler.
	Handler diagnostics.Handler
	Logger  *log.Logger
}

func DefaultConfig() Config {
	return Config{
		ApplicationName:  defaultApplicationName,
		Diagnostics:      diagnostics.DefaultOptions(),
		ValidationLayers: []string{KhronosValidationLayer},
		Criteria:         selection.DefaultCriteria(),
	}
}

// Context is everything the controller provisioned. It is owned by exactly one
// Controller and is only valid until that controller is closed.
type Context struct {
	ID uuid.UUID

	Window    driver.Window
	Instance  driver.Instance
	Messenger driver.Messenger
	Surface   driver.Surface

	Selected selection.Result

	Device        driver.Device
	GraphicsQueue driver.Queue
	PresentQueue  driver.Queue

	Swapchain          driver.Swapchain
	Images             []driver.Image
	Extent             driver.Extent2D
	ImageCount         int
	SharingMode        driver.SharingMode
	QueueFamilyIndices []int

	width, height int
	title         string
}

type checkpoint struct {
	state   State
	acquire func(ctx *Context) error
	release func(ctx *Context)
}

type Controller struct {
	platform driver.Platform
	config   Config
	logger   *log.Logger
	handler  diagnostics.Handler

	state   State
	context *Context

	entryPoints driver.DiagnosticsEntryPoints
	checkpoints []checkpoint
}

func NewController(platform driver.Platform, cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	handler := cfg.Handler
	if handler == nil {
		handler = diagnostics.LogHandler(logger, cfg.Diagnostics)
	}

	verbose := logger
	if !cfg.DiagnosticsEnabled {
		verbose = log.New(io.Discard, "", 0)
	}

	c := &Controller{
		platform: platform,
		config:   cfg,
		logger:   verbose,
		handler:  handler,
	}
	c.checkpoints = []checkpoint{
		{state: WindowOpen, acquire: c.openWindow, release: c.closeWindow},
		{state: InstanceReady, acquire: c.createInstance, release: c.destroyInstance},
		{state: SurfaceReady, acquire: c.createSurface, release: c.destroySurface},
		{state: AdapterChosen, acquire: c.pickPhysicalDevice, release: c.forgetPhysicalDevice},
		{state: DeviceReady, acquire: c.createLogicalDevice, release: c.destroyLogicalDevice},
		{state: PresentationChainReady, acquire: c.createSwapchain, release: c.destroySwapchain},
	}
	return c
}

// Open is NewController followed by Controller.Open.
func Open(platform driver.Platform, cfg Config, width, height int, title string) (*Controller, *Context, error) {
	controller := NewController(platform, cfg)
	ctx, err := controller.Open(width, height, title)
	if err != nil {
		return nil, nil, err
	}
	return controller, ctx, nil
}

func (c *Controller) State() State {
	return c.state
}

// Context returns the provisioned context, or nil when the controller is not
// open.
func (c *Controller) Context() *Context {
	if c.state == Uninit {
		return nil
	}
	return c.context
}

// Open walks every checkpoint in order. If one fails, everything already
// acquired is released before the error is returned.
func (c *Controller) Open(width, height int, title string) (*Context, error) {
	if c.state != Uninit {
		return nil, errors.Newf("context already open (%s)", c.state)
	}

	ctx := &Context{
		ID:     uuid.New(),
		width:  width,
		height: height,
		title:  title,
	}
	c.context = ctx

	total := hrtime.Now()
	for _, step := range c.checkpoints {
		start := hrtime.Now()
		if err := step.acquire(ctx); err != nil {
			c.logger.Printf("%s failed after %s: %v", step.state, hrtime.Since(start), err)
			c.Close()
			return nil, err
		}
		c.state = step.state
		c.logger.Printf("%s in %s", step.state, hrtime.Since(start))
	}

	c.logger.Printf("context %s ready in %s", ctx.ID, hrtime.Since(total))
	return ctx, nil
}

// Close releases every reached checkpoint, newest first. Calling it again is a
// no-op.
func (c *Controller) Close() {
	if c.context == nil {
		return
	}

	for i := len(c.checkpoints) - 1; i >= 0; i-- {
		step := c.checkpoints[i]
		if step.state > c.state {
			continue
		}
		step.release(c.context)
		c.state = step.state - 1
	}

	c.state = Uninit
	c.context = nil
}
