package lifecycle

import (
	"fmt"

	"github.com/vkngwrapper/bootstrap/driver"
)

// InitializationError means the window system could not be brought up.
type InitializationError struct {
	cause error
}

func (e *InitializationError) Error() string {
	return "window system initialization failed: " + e.cause.Error()
}

func (e *InitializationError) Unwrap() error {
	return e.cause
}

type Stage string

const (
	StageInstance          Stage = "instance"
	StageDiagnostics       Stage = "debug messenger"
	StageSurface           Stage = "surface"
	StageDevice            Stage = "logical device"
	StagePresentationChain Stage = "swap chain"
)

// ProvisioningError means the host rejected the creation of a resource.
type ProvisioningError struct {
	Stage Stage
	Code  driver.Result
	cause error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("failed to create %s (%s): %v", e.Stage, e.Code, e.cause)
}

func (e *ProvisioningError) Unwrap() error {
	return e.cause
}
