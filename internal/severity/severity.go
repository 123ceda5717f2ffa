// Package severity maps usage percentages onto three fixed bands.
package severity

// Band is the severity of a usage percentage.
type Band int

const (
	Normal Band = iota
	Warning
	Critical
)

// Band boundaries. Each band includes its upper bound.
const (
	NormalMax  = 50.0
	WarningMax = 75.0
)

// Classify returns the band for a 0-100 percentage.
func Classify(percent float64) Band {
	switch {
	case percent <= NormalMax:
		return Normal
	case percent <= WarningMax:
		return Warning
	default:
		return Critical
	}
}

// String returns a lowercase label for the band.
func (b Band) String() string {
	switch b {
	case Normal:
		return "normal"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}
