package driver

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// AdapterType values follow the host's physical device type enumeration.
type AdapterType int

const (
	AdapterTypeOther AdapterType = iota
	AdapterTypeIntegrated
	AdapterTypeDiscrete
	AdapterTypeVirtual
	AdapterTypeCPU
)

var adapterTypeNames = map[AdapterType]string{
	AdapterTypeOther:      "other",
	AdapterTypeIntegrated: "integrated",
	AdapterTypeDiscrete:   "discrete",
	AdapterTypeVirtual:    "virtual",
	AdapterTypeCPU:        "cpu",
}

func (t AdapterType) String() string {
	name, ok := adapterTypeNames[t]
	if !ok {
		return "unknown"
	}
	return name
}

func ParseAdapterType(name string) (AdapterType, error) {
	for adapterType, typeName := range adapterTypeNames {
		if strings.EqualFold(typeName, name) {
			return adapterType, nil
		}
	}
	return 0, errors.Newf("unknown adapter type %q", name)
}

// FeatureFlags is the subset of physical device features this module can
// require. Each bit stands for one boolean feature.
type FeatureFlags uint64

const (
	FeatureGeometryShader FeatureFlags = 1 << iota
	FeatureTessellationShader
	FeatureSamplerAnisotropy
	FeatureMultiDrawIndirect
	FeatureFillModeNonSolid
	FeatureWideLines
	FeatureDepthClamp
	FeatureShaderFloat64
	FeatureIndependentBlend
	FeatureSampleRateShading
)

var featureNames = map[FeatureFlags]string{
	FeatureGeometryShader:     "geometry_shader",
	FeatureTessellationShader: "tessellation_shader",
	FeatureSamplerAnisotropy:  "sampler_anisotropy",
	FeatureMultiDrawIndirect:  "multi_draw_indirect",
	FeatureFillModeNonSolid:   "fill_mode_non_solid",
	FeatureWideLines:          "wide_lines",
	FeatureDepthClamp:         "depth_clamp",
	FeatureShaderFloat64:      "shader_float64",
	FeatureIndependentBlend:   "independent_blend",
	FeatureSampleRateShading:  "sample_rate_shading",
}

// Has reports whether every bit in required is set.
func (f FeatureFlags) Has(required FeatureFlags) bool {
	return f&required == required
}

// Missing returns the required bits that are not set.
func (f FeatureFlags) Missing(required FeatureFlags) FeatureFlags {
	return required &^ f
}

func (f FeatureFlags) String() string {
	if f == 0 {
		return "none"
	}

	var names []string
	for flag, name := range featureNames {
		if f&flag != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func ParseFeature(name string) (FeatureFlags, error) {
	for flag, featureName := range featureNames {
		if strings.EqualFold(featureName, name) {
			return flag, nil
		}
	}
	return 0, errors.Newf("unknown device feature %q", name)
}

// QueueFlags values match the host's queue capability bits.
type QueueFlags uint32

const (
	QueueGraphics      QueueFlags = 0x00000001
	QueueCompute       QueueFlags = 0x00000002
	QueueTransfer      QueueFlags = 0x00000004
	QueueSparseBinding QueueFlags = 0x00000008
)

type QueueFamilyProperties struct {
	Flags      QueueFlags
	QueueCount int
}

// AdapterProperties is what the host reports about a physical device.
type AdapterProperties struct {
	Type              AdapterType
	Name              string
	VendorID          uint32
	DeviceID          uint32
	PipelineCacheUUID uuid.UUID
}

type Extent2D struct {
	Width  int
	Height int
}

// UndefinedExtent is reported as a surface's current extent when the
// presentation chain decides the size.
var UndefinedExtent = Extent2D{Width: -1, Height: -1}

func (e Extent2D) IsUndefined() bool {
	return e.Width == -1
}

// Format values follow the host's image format enumeration.
type Format int

const (
	FormatUndefined         Format = 0
	FormatR8G8B8A8Unorm     Format = 37
	FormatR8G8B8A8SRGB      Format = 43
	FormatB8G8R8A8Unorm     Format = 44
	FormatB8G8R8A8SRGB      Format = 50
	FormatA2B10G10R10Unorm  Format = 64
	FormatR16G16B16A16Float Format = 97
)

var formatNames = map[Format]string{
	FormatUndefined:         "UNDEFINED",
	FormatR8G8B8A8Unorm:     "R8G8B8A8_UNORM",
	FormatR8G8B8A8SRGB:      "R8G8B8A8_SRGB",
	FormatB8G8R8A8Unorm:     "B8G8R8A8_UNORM",
	FormatB8G8R8A8SRGB:      "B8G8R8A8_SRGB",
	FormatA2B10G10R10Unorm:  "A2B10G10R10_UNORM_PACK32",
	FormatR16G16B16A16Float: "R16G16B16A16_SFLOAT",
}

func (f Format) String() string {
	name, ok := formatNames[f]
	if !ok {
		return "FORMAT(" + strconv.Itoa(int(f)) + ")"
	}
	return name
}

func ParseFormat(name string) (Format, error) {
	for format, formatName := range formatNames {
		if strings.EqualFold(formatName, name) {
			return format, nil
		}
	}
	return 0, errors.Newf("unknown surface format %q", name)
}

// ColorSpace values follow the host's color space enumeration.
type ColorSpace int

const (
	ColorSpaceSRGBNonlinear      ColorSpace = 0
	ColorSpaceExtendedSRGBLinear ColorSpace = 1000104002
	ColorSpaceHDR10ST2084        ColorSpace = 1000104008
)

var colorSpaceNames = map[ColorSpace]string{
	ColorSpaceSRGBNonlinear:      "SRGB_NONLINEAR",
	ColorSpaceExtendedSRGBLinear: "EXTENDED_SRGB_LINEAR",
	ColorSpaceHDR10ST2084:        "HDR10_ST2084",
}

func (c ColorSpace) String() string {
	name, ok := colorSpaceNames[c]
	if !ok {
		return "COLOR_SPACE(" + strconv.Itoa(int(c)) + ")"
	}
	return name
}

func ParseColorSpace(name string) (ColorSpace, error) {
	for colorSpace, colorSpaceName := range colorSpaceNames {
		if strings.EqualFold(colorSpaceName, name) {
			return colorSpace, nil
		}
	}
	return 0, errors.Newf("unknown color space %q", name)
}

type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// PresentMode values follow the host's present mode enumeration.
type PresentMode int

const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFIFO        PresentMode = 2
	PresentModeFIFORelaxed PresentMode = 3
)

var presentModeNames = map[PresentMode]string{
	PresentModeImmediate:   "immediate",
	PresentModeMailbox:     "mailbox",
	PresentModeFIFO:        "fifo",
	PresentModeFIFORelaxed: "fifo_relaxed",
}

func (m PresentMode) String() string {
	name, ok := presentModeNames[m]
	if !ok {
		return "present_mode(" + strconv.Itoa(int(m)) + ")"
	}
	return name
}

func ParsePresentMode(name string) (PresentMode, error) {
	for mode, modeName := range presentModeNames {
		if strings.EqualFold(modeName, name) {
			return mode, nil
		}
	}
	return 0, errors.Newf("unknown present mode %q", name)
}

// SurfaceTransform is carried from the surface capabilities into swapchain
// creation untouched.
type SurfaceTransform uint32

type SurfaceCapabilities struct {
	MinImageCount    int
	MaxImageCount    int
	CurrentExtent    Extent2D
	MinImageExtent   Extent2D
	MaxImageExtent   Extent2D
	CurrentTransform SurfaceTransform
}

type SharingMode int

const (
	SharingModeExclusive SharingMode = iota
	SharingModeConcurrent
)

func (m SharingMode) String() string {
	if m == SharingModeConcurrent {
		return "concurrent"
	}
	return "exclusive"
}
