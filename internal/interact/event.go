package interact

import "fmt"

// Kind identifies an input event.
type Kind int

// Event kinds.
const (
	Press Kind = iota
	Move
	Release
	Enter
	Leave
	Scroll
	KeyDown
)

var kindNames = []string{"press", "move", "release", "enter", "leave", "scroll", "key"}

// String returns the script name of the kind.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a kind by its script name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("unknown event kind %q", s)
}

// UnmarshalText lets kinds be written by name in YAML and JSON.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalText writes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Button is a pointer button index as reported by browsers.
type Button int

// Pointer buttons.
const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// KeyEscape clears the measurement.
const KeyEscape = "Escape"

// Event is a single input event in viewport pixel coordinates.
// Move and Release may originate outside the viewport while a pan is active.
type Event struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Button Button  `json:"button,omitempty" yaml:"button,omitempty"`
	DeltaY float64 `json:"delta_y,omitempty" yaml:"delta_y,omitempty"`
	Key    string  `json:"key,omitempty" yaml:"key,omitempty"`
}
