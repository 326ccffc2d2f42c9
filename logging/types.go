package logging

import (
	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/utils"
)

type (
	// A StreamID identifies one virtual substream inside the multiplexer.
	StreamID = protocol.StreamID
	// A Seqno is a segment sequence number.
	Seqno = protocol.Seqno
	// A ByteCount is used when counting bytes.
	ByteCount = protocol.ByteCount
	// A CongestionControlAlgorithm selects the congestion controller.
	CongestionControlAlgorithm = protocol.CongestionControlAlgorithm
	// RTTStats provides round trip statistics.
	RTTStats = utils.RTTStats
)

// MaxSegmentSize is the maximum payload size of a data segment.
const MaxSegmentSize = protocol.MaxSegmentSize

// TimerType is the type of a connection timer.
type TimerType uint8

const (
	// TimerTypeAck is the delayed ack timer
	TimerTypeAck TimerType = iota
	// TimerTypeRTO is the retransmission timeout timer
	TimerTypeRTO
	// TimerTypePacing is the pacing timer for new segments
	TimerTypePacing
	// TimerTypeIdle is the idle timeout timer
	TimerTypeIdle
)

func (t TimerType) String() string {
	switch t {
	case TimerTypeAck:
		return "ack"
	case TimerTypeRTO:
		return "rto"
	case TimerTypePacing:
		return "pacing"
	case TimerTypeIdle:
		return "idle"
	default:
		panic("unknown timer type")
	}
}

// CongestionState is the state of the congestion controller.
type CongestionState uint8

const (
	// CongestionStateSlowStart is the slow start phase
	CongestionStateSlowStart CongestionState = iota
	// CongestionStateCongestionAvoidance is the congestion avoidance phase
	CongestionStateCongestionAvoidance
	// CongestionStateRecovery is entered when a loss shrinks the window
	CongestionStateRecovery
)

func (s CongestionState) String() string {
	switch s {
	case CongestionStateSlowStart:
		return "slow_start"
	case CongestionStateCongestionAvoidance:
		return "congestion_avoidance"
	case CongestionStateRecovery:
		return "recovery"
	default:
		panic("unknown congestion state")
	}
}
