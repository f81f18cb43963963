package lifecycle

// State is the last checkpoint the controller reached. Checkpoints are
// ordered; every resource of a lower state outlives those of a higher one.
type State int

const (
	Uninit State = iota
	WindowOpen
	InstanceReady
	SurfaceReady
	AdapterChosen
	DeviceReady
	PresentationChainReady
)

var stateNames = map[State]string{
	Uninit:                 "Uninit",
	WindowOpen:             "WindowOpen",
	InstanceReady:          "InstanceReady",
	SurfaceReady:           "SurfaceReady",
	AdapterChosen:          "AdapterChosen",
	DeviceReady:            "DeviceReady",
	PresentationChainReady: "PresentationChainReady",
}

func (s State) String() string {
	name, ok := stateNames[s]
	if !ok {
		return "Unknown"
	}
	return name
}
