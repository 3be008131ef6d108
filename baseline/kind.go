package baseline

import "fmt"

// Kind selects the interpolation used for the background curve.
type Kind int

// Interpolation kinds, in order of smoothness.
const (
	Linear Kind = iota
	Quadratic
	Cubic
)

// String returns the kind name as used in file headers.
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MinPoints returns the minimum number of anchor points the kind needs.
func (k Kind) MinPoints() int {
	switch k {
	case Quadratic:
		return 3
	case Cubic:
		return 4
	default:
		return 2
	}
}

// ParseKind parses a kind name. It accepts the names written by String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "quadratic":
		return Quadratic, nil
	case "cubic":
		return Cubic, nil
	default:
		return Linear, fmt.Errorf("baseline: unknown interpolation kind %q", s)
	}
}
