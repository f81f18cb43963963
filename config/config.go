// Package config reads the settings file for a rendering context.
package config

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/vkngwrapper/bootstrap/diagnostics"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/bootstrap/lifecycle"
	"github.com/vkngwrapper/bootstrap/selection"
	"github.com/vkngwrapper/bootstrap/surface"
)

type Settings struct {
	ApplicationName    string `toml:"application_name"`
	DiagnosticsEnabled bool   `toml:"diagnostics_enabled"`

	Window      WindowSettings      `toml:"window"`
	Diagnostics DiagnosticsSettings `toml:"diagnostics"`
	Adapter     AdapterSettings     `toml:"adapter"`
	Surface     SurfaceSettings     `toml:"surface"`
}

type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type DiagnosticsSettings struct {
	MinimumSeverity  string   `toml:"minimum_severity"`
	Categories       []string `toml:"categories"`
	ValidationLayers []string `toml:"validation_layers"`
}

type AdapterSettings struct {
	Type       string   `toml:"type"`
	Features   []string `toml:"features"`
	Extensions []string `toml:"extensions"`
}

type SurfaceSettings struct {
	Format      string `toml:"format"`
	ColorSpace  string `toml:"color_space"`
	PresentMode string `toml:"present_mode"`
}

func Default() Settings {
	return Settings{
		ApplicationName: "Hello Triangle",
		Window: WindowSettings{
			Width:  800,
			Height: 600,
			Title:  "hello, vulkan!",
		},
		Diagnostics: DiagnosticsSettings{
			MinimumSeverity:  "verbose",
			Categories:       []string{"general", "validation", "performance"},
			ValidationLayers: []string{lifecycle.KhronosValidationLayer},
		},
		Adapter: AdapterSettings{
			Type:       "discrete",
			Features:   []string{"geometry_shader"},
			Extensions: []string{"VK_KHR_swapchain"},
		},
		Surface: SurfaceSettings{
			Format:      "B8G8R8A8_SRGB",
			ColorSpace:  "SRGB_NONLINEAR",
			PresentMode: "fifo",
		},
	}
}

// Load reads a TOML settings file on top of Default. Keys the file leaves out
// keep their default values; unknown keys are an error.
func Load(filename string) (Settings, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return Settings{}, errors.Wrap(err, "open settings")
	}
	defer fp.Close()

	settings, err := Read(bufio.NewReader(fp))
	if err != nil {
		return Settings{}, errors.Wrapf(err, "read settings %s", filename)
	}
	return settings, nil
}

func Read(reader io.Reader) (Settings, error) {
	settings := Default()

	decoder := toml.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Settings{}, errors.Newf("unknown settings: %s", strict.String())
		}
		return Settings{}, err
	}

	return settings, nil
}

// Lifecycle converts the settings into a controller configuration.
func (s Settings) Lifecycle(logger *log.Logger) (lifecycle.Config, error) {
	options, err := s.Diagnostics.options()
	if err != nil {
		return lifecycle.Config{}, err
	}

	criteria, err := s.criteria()
	if err != nil {
		return lifecycle.Config{}, err
	}

	cfg := lifecycle.DefaultConfig()
	if s.ApplicationName != "" {
		cfg.ApplicationName = s.ApplicationName
	}
	cfg.DiagnosticsEnabled = s.DiagnosticsEnabled
	cfg.Diagnostics = options
	cfg.ValidationLayers = append([]string(nil), s.Diagnostics.ValidationLayers...)
	cfg.Criteria = criteria
	cfg.Logger = logger
	return cfg, nil
}

func (d DiagnosticsSettings) options() (diagnostics.Options, error) {
	severity, err := diagnostics.ParseSeverity(d.MinimumSeverity)
	if err != nil {
		return diagnostics.Options{}, err
	}

	var categories diagnostics.CategoryFlags
	for _, name := range d.Categories {
		category, err := diagnostics.ParseCategory(name)
		if err != nil {
			return diagnostics.Options{}, err
		}
		categories |= diagnostics.CategoryFlags(category)
	}

	return diagnostics.Options{MinimumSeverity: severity, Categories: categories}, nil
}

func (s Settings) criteria() (selection.Criteria, error) {
	adapterType, err := driver.ParseAdapterType(s.Adapter.Type)
	if err != nil {
		return selection.Criteria{}, err
	}

	var features driver.FeatureFlags
	for _, name := range s.Adapter.Features {
		feature, err := driver.ParseFeature(name)
		if err != nil {
			return selection.Criteria{}, err
		}
		features |= feature
	}

	format, err := driver.ParseFormat(s.Surface.Format)
	if err != nil {
		return selection.Criteria{}, err
	}

	colorSpace, err := driver.ParseColorSpace(s.Surface.ColorSpace)
	if err != nil {
		return selection.Criteria{}, err
	}

	presentMode, err := driver.ParsePresentMode(s.Surface.PresentMode)
	if err != nil {
		return selection.Criteria{}, err
	}

	return selection.Criteria{
		Type:             adapterType,
		RequiredFeatures: features,
		DeviceExtensions: append([]string(nil), s.Adapter.Extensions...),
		Surface: surface.Desired{
			Format:      format,
			ColorSpace:  colorSpace,
			PresentMode: presentMode,
		},
	}, nil
}
