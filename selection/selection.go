// Package selection picks the first adapter that satisfies every requirement.
package selection

import (
	"log"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/capability"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/bootstrap/queues"
	"github.com/vkngwrapper/bootstrap/surface"
)

var ErrNoSuitableAdapter = errors.New("can not find suitable physical device")

// Criteria is what every candidate adapter is checked against.
type Criteria struct {
	Type             driver.AdapterType
	RequiredFeatures driver.FeatureFlags
	DeviceExtensions []string
	Surface          surface.Desired
}

func DefaultCriteria() Criteria {
	return Criteria{
		Type:             driver.AdapterTypeDiscrete,
		RequiredFeatures: driver.FeatureGeometryShader,
		DeviceExtensions: []string{"VK_KHR_swapchain"},
		Surface:          surface.DefaultDesired(),
	}
}

// Result is the chosen adapter together with the facts derived for it.
type Result struct {
	Adapter  Adapter
	Queues   queues.Assignment
	Contract surface.Contract

	// Families is the queue family list the assignment was resolved against.
	Families []driver.QueueFamilyProperties

	// Extensions are the negotiated device extensions.
	Extensions []string
	// AvailableExtensions is everything the adapter reported.
	AvailableExtensions []string
}

type Rejection struct {
	Adapter Adapter
	Reason  error
}

// Select walks adapters in the order given and returns the first one that
// passes every check. A failing candidate is recorded and skipped.
func Select(adapters []Adapter, target driver.Surface, criteria Criteria, logger *log.Logger) (Result, error) {
	logger = orDiscard(logger)

	var rejections []Rejection
	for _, adapter := range adapters {
		result, err := evaluate(adapter, target, criteria, logger)
		if err != nil {
			logger.Printf("rejected %s: %v", adapter, err)
			rejections = append(rejections, Rejection{Adapter: adapter, Reason: err})
			continue
		}

		logger.Printf("selected %s, queue family %d for graphics, %d for present",
			adapter, result.Queues.GraphicsFamily, result.Queues.PresentFamily)
		return result, nil
	}

	return Result{}, noSuitableAdapter(rejections)
}

// Evaluate runs the checks for one candidate, stopping at the first failure:
// type class, features, device extensions, queue families, surface contract.
func Evaluate(adapter Adapter, target driver.Surface, criteria Criteria) (Result, error) {
	return evaluate(adapter, target, criteria, orDiscard(nil))
}

func evaluate(adapter Adapter, target driver.Surface, criteria Criteria, logger *log.Logger) (Result, error) {
	if adapter.Type != criteria.Type {
		return Result{}, errors.Newf("device type %s, want %s", adapter.Type, criteria.Type)
	}

	if !adapter.Features.Has(criteria.RequiredFeatures) {
		return Result{}, errors.Newf("device not satisfied features %s", adapter.Features.Missing(criteria.RequiredFeatures))
	}

	available, err := adapter.Handle.AvailableExtensions()
	if err != nil {
		return Result{}, errors.Wrap(err, "enumerate device extensions")
	}

	logger.Printf("available device extensions of %s:", adapter)
	for _, name := range available {
		logger.Printf("\t%s", name)
	}

	extensions, err := capability.Negotiate(capability.Extension, criteria.DeviceExtensions, available)
	if err != nil {
		return Result{}, errors.Wrap(err, "device")
	}

	families := adapter.Handle.QueueFamilies()
	assignment, err := queues.Resolve(families, queues.SurfaceTarget(target, adapter.Handle))
	if err != nil {
		return Result{}, err
	}

	contract, err := surface.DeriveContract(adapter.Handle, target, criteria.Surface)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Adapter:             adapter,
		Queues:              assignment,
		Contract:            contract,
		Families:            families,
		Extensions:          extensions,
		AvailableExtensions: available,
	}, nil
}

func noSuitableAdapter(rejections []Rejection) error {
	if len(rejections) == 0 {
		return errors.WithDetail(ErrNoSuitableAdapter, "no physical devices enumerated")
	}

	err := ErrNoSuitableAdapter
	var names []string
	for _, rejection := range rejections {
		names = append(names, rejection.Adapter.Name)
		err = errors.WithDetailf(err, "%s: %v", rejection.Adapter, rejection.Reason)
	}

	return errors.Wrapf(err, "rejected %s", strings.Join(names, ", "))
}
