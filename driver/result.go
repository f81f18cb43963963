package driver

import "strconv"

// Result is the host's status code for a call. Negative values are errors.
type Result int

const (
	Success                   Result = 0
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorTooManyObjects       Result = -10
	ErrorSurfaceLost          Result = -1000000000
	ErrorNativeWindowInUse    Result = -1000000001
)

var resultNames = map[Result]string{
	Success:                   "SUCCESS",
	ErrorOutOfHostMemory:      "ERROR_OUT_OF_HOST_MEMORY",
	ErrorOutOfDeviceMemory:    "ERROR_OUT_OF_DEVICE_MEMORY",
	ErrorInitializationFailed: "ERROR_INITIALIZATION_FAILED",
	ErrorDeviceLost:           "ERROR_DEVICE_LOST",
	ErrorLayerNotPresent:      "ERROR_LAYER_NOT_PRESENT",
	ErrorExtensionNotPresent:  "ERROR_EXTENSION_NOT_PRESENT",
	ErrorFeatureNotPresent:    "ERROR_FEATURE_NOT_PRESENT",
	ErrorIncompatibleDriver:   "ERROR_INCOMPATIBLE_DRIVER",
	ErrorTooManyObjects:       "ERROR_TOO_MANY_OBJECTS",
	ErrorSurfaceLost:          "ERROR_SURFACE_LOST_KHR",
	ErrorNativeWindowInUse:    "ERROR_NATIVE_WINDOW_IN_USE_KHR",
}

func (r Result) String() string {
	name, ok := resultNames[r]
	if !ok {
		return "RESULT(" + strconv.Itoa(int(r)) + ")"
	}
	return name
}

// Failed reports whether r is an error code. Positive codes are statuses.
func (r Result) Failed() bool {
	return r < 0
}
