package qlog

type category uint8

const (
	categoryTransport category = iota
	categoryRecovery
)

func (c category) String() string {
	switch c {
	case categoryTransport:
		return "transport"
	case categoryRecovery:
		return "recovery"
	default:
		return "unknown category"
	}
}
