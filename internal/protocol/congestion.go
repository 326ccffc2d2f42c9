package protocol

import "strings"

// CongestionControlAlgorithm selects the congestion controller of a
// connection.
type CongestionControlAlgorithm uint8

const (
	// CongestionCubic selects the CUBIC controller.
	CongestionCubic CongestionControlAlgorithm = 1 + iota
	// CongestionReno selects the Reno controller.
	CongestionReno
)

func (a CongestionControlAlgorithm) String() string {
	switch a {
	case CongestionCubic:
		return "cubic"
	case CongestionReno:
		return "reno"
	default:
		return "unknown"
	}
}

// ParseCongestionControlAlgorithm parses the name of a congestion control
// algorithm, case-insensitively. The second return value is false if the
// name doesn't match any known algorithm.
func ParseCongestionControlAlgorithm(name string) (CongestionControlAlgorithm, bool) {
	switch strings.ToLower(name) {
	case "cubic":
		return CongestionCubic, true
	case "reno":
		return CongestionReno, true
	default:
		return 0, false
	}
}
