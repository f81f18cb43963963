// Package drivertest is an in-memory host driver. Every create and destroy is
// written to a shared Journal so tests can check ordering.
package drivertest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vkngwrapper/bootstrap/diagnostics"
	"github.com/vkngwrapper/bootstrap/driver"
)

type Journal struct {
	entries []string
}

func (j *Journal) Record(format string, args ...any) {
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *Journal) Entries() []string {
	return append([]string(nil), j.entries...)
}

// WithPrefix returns the entries that start with prefix, in order.
func (j *Journal) WithPrefix(prefix string) []string {
	var matched []string
	for _, entry := range j.entries {
		if strings.HasPrefix(entry, prefix) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func (j *Journal) Reset() {
	j.entries = nil
}

// Host bundles a fully working fake host. Tests break individual pieces by
// setting the error fields.
type Host struct {
	Journal     *Journal
	Platform    *Platform
	Window      *Window
	Loader      *Loader
	Instance    *Instance
	EntryPoints *EntryPoints
	Surface     *Surface
}

func NewHost(adapters ...*Adapter) *Host {
	journal := &Journal{}
	for _, adapter := range adapters {
		adapter.attach(journal)
	}

	entryPoints := &EntryPoints{Journal: journal}
	instance := &Instance{Journal: journal, Adapters: adapters, EntryPoints: entryPoints}
	loader := &Loader{
		Journal:    journal,
		Extensions: []string{"VK_KHR_surface", "VK_KHR_xlib_surface", "VK_EXT_debug_utils"},
		Layers:     []string{"VK_LAYER_KHRONOS_validation"},
		Instance:   instance,
	}
	surface := &Surface{Journal: journal}
	window := &Window{
		Journal:    journal,
		HostLoader: loader,
		Extensions: []string{"VK_KHR_surface", "VK_KHR_xlib_surface"},
		Width:      800,
		Height:     600,
		Surface:    surface,
	}

	return &Host{
		Journal:     journal,
		Platform:    &Platform{Journal: journal, Window: window},
		Window:      window,
		Loader:      loader,
		Instance:    instance,
		EntryPoints: entryPoints,
		Surface:     surface,
	}
}

type Platform struct {
	Journal *Journal
	Window  *Window
	OpenErr error
}

func (p *Platform) OpenWindow(width, height int, title string) (driver.Window, error) {
	if p.OpenErr != nil {
		return nil, p.OpenErr
	}
	p.Journal.Record("create window %dx%d %s", width, height, title)
	p.Window.Title = title
	return p.Window, nil
}

type Window struct {
	Journal *Journal
	Title   string

	HostLoader *Loader
	LoaderErr  error

	Extensions    []string
	Width, Height int

	Surface       *Surface
	SurfaceErr    error
	SurfaceResult driver.Result

	Destroyed int
}

func (w *Window) Loader() (driver.Loader, error) {
	if w.LoaderErr != nil {
		return nil, w.LoaderErr
	}
	return w.HostLoader, nil
}

func (w *Window) RequiredInstanceExtensions() []string {
	return w.Extensions
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Width, w.Height
}

func (w *Window) CreateSurface(instance driver.Instance) (driver.Surface, driver.Result, error) {
	if w.SurfaceErr != nil {
		return nil, w.SurfaceResult, w.SurfaceErr
	}
	w.Journal.Record("create surface")
	return w.Surface, driver.Success, nil
}

func (w *Window) Destroy() {
	w.Destroyed++
	w.Journal.Record("destroy window")
}

type Loader struct {
	Journal *Journal

	Extensions    []string
	ExtensionsErr error
	Layers        []string
	LayersErr     error

	Instance     *Instance
	CreateErr    error
	CreateResult driver.Result
	Created      *driver.InstanceCreateInfo
}

func (l *Loader) AvailableExtensions() ([]string, error) {
	return l.Extensions, l.ExtensionsErr
}

func (l *Loader) AvailableLayers() ([]string, error) {
	return l.Layers, l.LayersErr
}

func (l *Loader) CreateInstance(info driver.InstanceCreateInfo) (driver.Instance, driver.Result, error) {
	if l.CreateErr != nil {
		return nil, l.CreateResult, l.CreateErr
	}
	l.Created = &info
	l.Journal.Record("create instance")
	return l.Instance, driver.Success, nil
}

type Instance struct {
	Journal      *Journal
	Adapters     []*Adapter
	EnumerateErr error
	EntryPoints  *EntryPoints
	Destroyed    int
}

func (i *Instance) EnumerateAdapters() ([]driver.PhysicalAdapter, error) {
	if i.EnumerateErr != nil {
		return nil, i.EnumerateErr
	}
	adapters := make([]driver.PhysicalAdapter, 0, len(i.Adapters))
	for _, adapter := range i.Adapters {
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}

func (i *Instance) DiagnosticsEntryPoints() driver.DiagnosticsEntryPoints {
	return i.EntryPoints
}

func (i *Instance) Destroy() {
	i.Destroyed++
	i.Journal.Record("destroy instance")
}

// Messenger is the handle EntryPoints hands out.
type Messenger struct {
	Info driver.MessengerCreateInfo
}

// Emit delivers a message the way the host would, through the handler the
// messenger was created with.
func (m *Messenger) Emit(severity diagnostics.Severity, category diagnostics.Category, message string) bool {
	if !m.Info.Severities.Contains(severity) || !m.Info.Categories.Contains(category) {
		return false
	}
	return m.Info.Handler(severity, category, message)
}

type EntryPoints struct {
	Journal *Journal

	NoCreate     bool
	NoDestroy    bool
	CreateErr    error
	CreateResult driver.Result

	Messengers []*Messenger
	Destroyed  int
}

func (e *EntryPoints) CreateMessenger() (driver.CreateMessengerFunc, bool) {
	if e.NoCreate {
		return nil, false
	}
	return func(info driver.MessengerCreateInfo) (driver.Messenger, driver.Result, error) {
		if e.CreateErr != nil {
			return nil, e.CreateResult, e.CreateErr
		}
		messenger := &Messenger{Info: info}
		e.Messengers = append(e.Messengers, messenger)
		e.Journal.Record("create messenger")
		return messenger, driver.Success, nil
	}, true
}

func (e *EntryPoints) DestroyMessenger() (driver.DestroyMessengerFunc, bool) {
	if e.NoDestroy {
		return nil, false
	}
	return func(messenger driver.Messenger) {
		e.Destroyed++
		e.Journal.Record("destroy messenger")
	}, true
}

type Surface struct {
	Journal *Journal
	// QueryErr fails every adapter query.
	QueryErr  error
	Destroyed int
}

func (s *Surface) SupportsPresent(adapter driver.PhysicalAdapter, family int) (bool, error) {
	if s.QueryErr != nil {
		return false, s.QueryErr
	}
	fake := adapter.(*Adapter)
	fake.Queries++
	return fake.Present[family], nil
}

func (s *Surface) Capabilities(adapter driver.PhysicalAdapter) (driver.SurfaceCapabilities, error) {
	if s.QueryErr != nil {
		return driver.SurfaceCapabilities{}, s.QueryErr
	}
	fake := adapter.(*Adapter)
	fake.Queries++
	return fake.Capabilities, fake.CapabilitiesErr
}

func (s *Surface) Formats(adapter driver.PhysicalAdapter) ([]driver.SurfaceFormat, error) {
	if s.QueryErr != nil {
		return nil, s.QueryErr
	}
	fake := adapter.(*Adapter)
	fake.Queries++
	return fake.Formats, nil
}

func (s *Surface) PresentModes(adapter driver.PhysicalAdapter) ([]driver.PresentMode, error) {
	if s.QueryErr != nil {
		return nil, s.QueryErr
	}
	fake := adapter.(*Adapter)
	fake.Queries++
	return fake.PresentModes, nil
}

func (s *Surface) Destroy() {
	s.Destroyed++
	s.Journal.Record("destroy surface")
}

// Adapter carries both the physical device answers and the surface answers
// for that device.
type Adapter struct {
	Journal *Journal

	Props    driver.AdapterProperties
	PropsErr error
	Feature  driver.FeatureFlags

	Extensions    []string
	ExtensionsErr error
	Families      []driver.QueueFamilyProperties

	Present         map[int]bool
	Capabilities    driver.SurfaceCapabilities
	CapabilitiesErr error
	Formats         []driver.SurfaceFormat
	PresentModes    []driver.PresentMode

	Device       *Device
	CreateErr    error
	CreateResult driver.Result
	Created      *driver.DeviceCreateInfo

	// Queries counts every question asked about this adapter.
	Queries int
	// FamilyQueries counts QueueFamilies calls alone.
	FamilyQueries int
}

// NewAdapter returns a discrete adapter that passes the default criteria with
// a single graphics+present family.
func NewAdapter(name string) *Adapter {
	return &Adapter{
		Props: driver.AdapterProperties{
			Type:              driver.AdapterTypeDiscrete,
			Name:              name,
			VendorID:          0x10de,
			DeviceID:          0x2204,
			PipelineCacheUUID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		},
		Feature:    driver.FeatureGeometryShader | driver.FeatureSamplerAnisotropy,
		Extensions: []string{"VK_KHR_swapchain"},
		Families: []driver.QueueFamilyProperties{
			{Flags: driver.QueueGraphics | driver.QueueCompute | driver.QueueTransfer, QueueCount: 16},
		},
		Present: map[int]bool{0: true},
		Capabilities: driver.SurfaceCapabilities{
			MinImageCount:  2,
			MaxImageCount:  8,
			CurrentExtent:  driver.Extent2D{Width: 800, Height: 600},
			MinImageExtent: driver.Extent2D{Width: 1, Height: 1},
			MaxImageExtent: driver.Extent2D{Width: 4096, Height: 4096},
		},
		Formats: []driver.SurfaceFormat{
			{Format: driver.FormatB8G8R8A8Unorm, ColorSpace: driver.ColorSpaceSRGBNonlinear},
			{Format: driver.FormatB8G8R8A8SRGB, ColorSpace: driver.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []driver.PresentMode{driver.PresentModeFIFO, driver.PresentModeMailbox},
		Device:       &Device{},
	}
}

func (a *Adapter) attach(journal *Journal) {
	a.Journal = journal
	if a.Device != nil {
		a.Device.Journal = journal
		if a.Device.Swapchain == nil {
			a.Device.Swapchain = &Swapchain{ImageHandles: []driver.Image{Image{Index: 0}, Image{Index: 1}, Image{Index: 2}}}
		}
		a.Device.Swapchain.Journal = journal
	}
}

func (a *Adapter) Properties() (driver.AdapterProperties, error) {
	a.Queries++
	return a.Props, a.PropsErr
}

func (a *Adapter) Features() driver.FeatureFlags {
	a.Queries++
	return a.Feature
}

func (a *Adapter) AvailableExtensions() ([]string, error) {
	a.Queries++
	return a.Extensions, a.ExtensionsErr
}

func (a *Adapter) QueueFamilies() []driver.QueueFamilyProperties {
	a.Queries++
	a.FamilyQueries++
	return a.Families
}

func (a *Adapter) CreateDevice(info driver.DeviceCreateInfo) (driver.Device, driver.Result, error) {
	if a.CreateErr != nil {
		return nil, a.CreateResult, a.CreateErr
	}
	a.Created = &info
	a.Journal.Record("create device %s", a.Props.Name)
	return a.Device, driver.Success, nil
}

// Queue identifies which queue a role was given.
type Queue struct {
	Family int
	Index  int
}

type Image struct {
	Index int
}

type Device struct {
	Journal *Journal

	Swapchain    *Swapchain
	CreateErr    error
	CreateResult driver.Result
	Created      *driver.SwapchainCreateInfo

	Destroyed int
}

func (d *Device) Queue(family, index int) driver.Queue {
	return Queue{Family: family, Index: index}
}

func (d *Device) CreateSwapchain(info driver.SwapchainCreateInfo) (driver.Swapchain, driver.Result, error) {
	if d.CreateErr != nil {
		return nil, d.CreateResult, d.CreateErr
	}
	d.Created = &info
	d.Journal.Record("create swapchain")
	return d.Swapchain, driver.Success, nil
}

func (d *Device) Destroy() {
	d.Destroyed++
	d.Journal.Record("destroy device")
}

type Swapchain struct {
	Journal *Journal

	ImageHandles []driver.Image
	ImagesErr    error
	ImagesResult driver.Result

	Destroyed int
}

func (s *Swapchain) Images() ([]driver.Image, driver.Result, error) {
	if s.ImagesErr != nil {
		return nil, s.ImagesResult, s.ImagesErr
	}
	return s.ImageHandles, driver.Success, nil
}

func (s *Swapchain) Destroy() {
	s.Destroyed++
	s.Journal.Record("destroy swapchain")
}
