// Package capability checks named host capabilities (extensions and layers)
// against what the host reports as available.
package capability

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Extension Kind = iota
	Layer
)

func (k Kind) String() string {
	if k == Layer {
		return "layer"
	}
	return "extension"
}

// MissingCapabilityError lists every required name the host did not report.
type MissingCapabilityError struct {
	Kind  Kind
	Names []string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("%s requested %s, but not available", e.Kind, strings.Join(e.Names, ","))
}

// Negotiate accepts required only if every name in it appears in available.
// The returned slice is a copy of required; nothing beyond it is ever added.
func Negotiate(kind Kind, required, available []string) ([]string, error) {
	availableSet := make(map[string]struct{}, len(available))
	for _, name := range available {
		availableSet[name] = struct{}{}
	}

	var missing []string
	reported := make(map[string]struct{})
	for _, name := range required {
		if _, ok := availableSet[name]; ok {
			continue
		}
		if _, ok := reported[name]; ok {
			continue
		}
		reported[name] = struct{}{}
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		return nil, &MissingCapabilityError{Kind: kind, Names: missing}
	}

	accepted := make([]string, len(required))
	copy(accepted, required)
	return accepted, nil
}

// Optional returns the names in wanted that are available, in wanted order.
func Optional(wanted, available []string) []string {
	var enabled []string
	for _, name := range wanted {
		if contains(available, name) {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

func contains(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}
