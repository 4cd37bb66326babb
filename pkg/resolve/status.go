package resolve

// Status is the display state of a Result.
type Status uint8

// Available statuses.
const (
	StatusSupported   Status = iota // Valid and translatable.
	StatusUnsupported               // Valid but not translatable.
	StatusInvalid                   // Neither a number nor a known version.
)

// RGB text colors per Status.
const (
	ColorSupported   uint32 = 0xE0E0E0
	ColorUnsupported uint32 = 0xFFA500
	ColorInvalid     uint32 = 0xFF0000
)

// Color returns the RGB text color for s.
func (s Status) Color() uint32 {
	switch s {
	case StatusInvalid:
		return ColorInvalid
	case StatusUnsupported:
		return ColorUnsupported
	default:
		return ColorSupported
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "supported"
	}
}
