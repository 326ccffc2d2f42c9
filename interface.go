package relmux

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/wire"
	"github.com/relmux-go/relmux-go/logging"
)

type (
	// A StreamID identifies one virtual substream inside the multiplexer.
	StreamID = protocol.StreamID
	// A Seqno is a segment sequence number. The first segment sent on a
	// substream carries seqno 0.
	Seqno = protocol.Seqno
	// A ByteCount is used when counting bytes.
	ByteCount = protocol.ByteCount
	// A CongestionControlAlgorithm selects the congestion controller.
	CongestionControlAlgorithm = protocol.CongestionControlAlgorithm
	// A MessageKind distinguishes the message types exchanged on a
	// substream.
	MessageKind = wire.MessageKind
	// A Message is one framed segment, the unit exchanged between a Conn
	// and the multiplexer.
	Message = wire.Message
)

const (
	// CongestionCubic selects the CUBIC congestion controller.
	CongestionCubic = protocol.CongestionCubic
	// CongestionReno selects the Reno congestion controller.
	CongestionReno = protocol.CongestionReno
)

const (
	// KindData carries one payload segment.
	KindData = wire.KindData
	// KindDataAck acknowledges received segments.
	KindDataAck = wire.KindDataAck
	// KindReset aborts the substream.
	KindReset = wire.KindReset
)

// MaxSegmentSize is the maximum payload size of a data segment. Writes
// are fragmented into segments of at most this size.
const MaxSegmentSize = protocol.MaxSegmentSize

// ParseCongestionControlAlgorithm parses the name of a congestion control
// algorithm, case-insensitively.
func ParseCongestionControlAlgorithm(name string) (CongestionControlAlgorithm, bool) {
	return protocol.ParseCongestionControlAlgorithm(name)
}

// ParseMessage parses a single message from the beginning of b. It
// returns the message and the number of bytes consumed. The payload is
// copied, so the message stays valid after b is reused.
func ParseMessage(b []byte) (Message, int, error) {
	return wire.ParseMessage(b)
}

// Config contains the settings of one Conn. Zero values fall back to
// defaults.
type Config struct {
	// CongestionControl selects the congestion control algorithm.
	// Defaults to CUBIC.
	CongestionControl CongestionControlAlgorithm
	// InitialCongestionWindow is the initial congestion window, in
	// segments.
	InitialCongestionWindow int
	// MaxCongestionWindow caps the congestion window, in segments.
	MaxCongestionWindow int
	// MaxIdleTimeout is the longest stretch without any connection
	// activity before the connection is torn down.
	MaxIdleTimeout time.Duration
	// Tracer records connection events.
	Tracer *logging.ConnectionTracer
}
