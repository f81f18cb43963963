// Package diagnostics describes the optional host-driver message channel: which
// messages it captures and the handler that receives them.
package diagnostics

import (
	"fmt"
	"log"
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity values match the host's message severity bits so they can be
// passed through without translation.
type Severity uint32

const (
	SeverityVerbose Severity = 0x00000001
	SeverityInfo    Severity = 0x00000010
	SeverityWarning Severity = 0x00000100
	SeverityError   Severity = 0x00001000
)

var severities = []Severity{SeverityVerbose, SeverityInfo, SeverityWarning, SeverityError}

var severityNames = map[Severity]string{
	SeverityVerbose: "VERBOSE",
	SeverityInfo:    "INFO",
	SeverityWarning: "WARNING",
	SeverityError:   "ERROR",
}

func (s Severity) String() string {
	name, ok := severityNames[s]
	if !ok {
		return "OTHER"
	}
	return name
}

// ParseSeverity accepts verbose, info, warning or error in any case.
func ParseSeverity(name string) (Severity, error) {
	for _, severity := range severities {
		if strings.EqualFold(severityNames[severity], name) {
			return severity, nil
		}
	}
	return 0, errors.Newf("unknown diagnostics severity %q", name)
}

// SeverityFlags is a set of severities.
type SeverityFlags uint32

func (f SeverityFlags) Contains(s Severity) bool {
	return uint32(f)&uint32(s) != 0
}

// Category values match the host's message type bits.
type Category uint32

const (
	CategoryGeneral     Category = 0x00000001
	CategoryValidation  Category = 0x00000002
	CategoryPerformance Category = 0x00000004
)

var categories = []Category{CategoryGeneral, CategoryValidation, CategoryPerformance}

var categoryNames = map[Category]string{
	CategoryGeneral:     "GENERAL",
	CategoryValidation:  "VALIDATION",
	CategoryPerformance: "PERFORMANCE",
}

func (c Category) String() string {
	name, ok := categoryNames[c]
	if !ok {
		return "OTHER"
	}
	return name
}

// ParseCategory accepts general, validation or performance in any case.
func ParseCategory(name string) (Category, error) {
	for _, category := range categories {
		if strings.EqualFold(categoryNames[category], name) {
			return category, nil
		}
	}
	return 0, errors.Newf("unknown diagnostics category %q", name)
}

// CategoryFlags is a set of categories.
type CategoryFlags uint32

const AllCategories = CategoryFlags(CategoryGeneral) | CategoryFlags(CategoryValidation) | CategoryFlags(CategoryPerformance)

func (f CategoryFlags) Contains(c Category) bool {
	return uint32(f)&uint32(c) != 0
}

func (f CategoryFlags) String() string {
	var names []string
	for _, category := range categories {
		if f.Contains(category) {
			names = append(names, category.String())
		}
	}
	return strings.Join(names, "|")
}

// Options configures what the channel captures.
type Options struct {
	MinimumSeverity Severity
	Categories      CategoryFlags
}

// DefaultOptions captures everything.
func DefaultOptions() Options {
	return Options{
		MinimumSeverity: SeverityVerbose,
		Categories:      AllCategories,
	}
}

// Severities returns the minimum severity and every severity above it.
func (o Options) Severities() SeverityFlags {
	var flags SeverityFlags
	for _, severity := range severities {
		if severity >= o.MinimumSeverity {
			flags |= SeverityFlags(severity)
		}
	}
	return flags
}

// Accepts reports whether a message would pass the channel filter.
func (o Options) Accepts(severity Severity, category Category) bool {
	return severity >= o.MinimumSeverity && o.Categories.Contains(category)
}

func (o Options) String() string {
	return fmt.Sprintf("severity>=%s categories=%s", o.MinimumSeverity, o.Categories)
}

// Handler receives one host message and returns whether the host call that
// produced it should be aborted.
type Handler func(severity Severity, category Category, message string) bool

// LogHandler writes accepted messages to logger and never asks the host to
// abort. It holds no state, so reentrant calls from the driver are safe.
func LogHandler(logger *log.Logger, opts Options) Handler {
	if logger == nil {
		logger = log.Default()
	}

	return func(severity Severity, category Category, message string) bool {
		if !opts.Accepts(severity, category) {
			return false
		}

		logger.Printf("validation layer: (%s,%s) %s", severity, category, message)
		return false
	}
}
