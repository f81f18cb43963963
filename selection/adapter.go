package selection

import (
	"fmt"
	"io"
	"log"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/vkngwrapper/bootstrap/driver"
)

// Adapter is a read-only snapshot of one enumerated physical device.
type Adapter struct {
	Handle driver.PhysicalAdapter

	Type              driver.AdapterType
	Name              string
	VendorID          uint32
	DeviceID          uint32
	PipelineCacheUUID uuid.UUID
	Features          driver.FeatureFlags
}

func (a Adapter) String() string {
	return fmt.Sprintf("%s (%s, %04x:%04x)", a.Name, a.Type, a.VendorID, a.DeviceID)
}

// Snapshot queries the properties and features of handle once.
func Snapshot(handle driver.PhysicalAdapter) (Adapter, error) {
	properties, err := handle.Properties()
	if err != nil {
		return Adapter{}, errors.Wrap(err, "query physical device properties")
	}

	return Adapter{
		Handle:            handle,
		Type:              properties.Type,
		Name:              properties.Name,
		VendorID:          properties.VendorID,
		DeviceID:          properties.DeviceID,
		PipelineCacheUUID: properties.PipelineCacheUUID,
		Features:          handle.Features(),
	}, nil
}

// Enumerate lists the instance's adapters in host order. An adapter that can
// not be described is left out rather than failing the enumeration.
func Enumerate(instance driver.Instance, logger *log.Logger) ([]Adapter, error) {
	logger = orDiscard(logger)

	handles, err := instance.EnumerateAdapters()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}

	adapters := make([]Adapter, 0, len(handles))
	for idx, handle := range handles {
		adapter, err := Snapshot(handle)
		if err != nil {
			logger.Printf("skipping physical device %d: %v", idx, err)
			continue
		}

		logger.Printf("physical device %d: %s cache %s features %s", idx, adapter, adapter.PipelineCacheUUID, adapter.Features)
		adapters = append(adapters, adapter)
	}

	return adapters, nil
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}
