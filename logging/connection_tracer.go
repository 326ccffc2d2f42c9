package logging

import (
	"time"
)

// A ConnectionTracer records events happening on a connection. Set the
// callbacks for the events to be recorded; callbacks left nil are skipped.
// All callbacks are called from the connection's run loop and must not
// block.
type ConnectionTracer struct {
	StartedConnection      func(id StreamID)
	ClosedConnection       func(err error)
	SentSegment            func(sn Seqno, size ByteCount, retransmission bool)
	ReceivedSegment        func(sn Seqno, size ByteCount, duplicate bool)
	SentAck                func(acked []Seqno, cumulative Seqno)
	ReceivedAck            func(acked []Seqno, cumulative Seqno)
	LostSegment            func(sn Seqno)
	UpdatedMetrics         func(rttStats *RTTStats, cwnd, inflight int)
	UpdatedCongestionState func(state CongestionState)
	SetTimer               func(tt TimerType, deadline time.Time)
	TimerExpired           func(tt TimerType)
	Debug                  func(name, msg string)
	// Close is called when the connection is closed, after the last event
	// was recorded.
	Close func()
}

// NewMultiplexedConnectionTracer creates a new connection tracer that
// multiplexes events to multiple tracers.
func NewMultiplexedConnectionTracer(tracers ...*ConnectionTracer) *ConnectionTracer {
	if len(tracers) == 0 {
		return nil
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &ConnectionTracer{
		StartedConnection: func(id StreamID) {
			for _, t := range tracers {
				if t.StartedConnection != nil {
					t.StartedConnection(id)
				}
			}
		},
		ClosedConnection: func(err error) {
			for _, t := range tracers {
				if t.ClosedConnection != nil {
					t.ClosedConnection(err)
				}
			}
		},
		SentSegment: func(sn Seqno, size ByteCount, retransmission bool) {
			for _, t := range tracers {
				if t.SentSegment != nil {
					t.SentSegment(sn, size, retransmission)
				}
			}
		},
		ReceivedSegment: func(sn Seqno, size ByteCount, duplicate bool) {
			for _, t := range tracers {
				if t.ReceivedSegment != nil {
					t.ReceivedSegment(sn, size, duplicate)
				}
			}
		},
		SentAck: func(acked []Seqno, cumulative Seqno) {
			for _, t := range tracers {
				if t.SentAck != nil {
					t.SentAck(acked, cumulative)
				}
			}
		},
		ReceivedAck: func(acked []Seqno, cumulative Seqno) {
			for _, t := range tracers {
				if t.ReceivedAck != nil {
					t.ReceivedAck(acked, cumulative)
				}
			}
		},
		LostSegment: func(sn Seqno) {
			for _, t := range tracers {
				if t.LostSegment != nil {
					t.LostSegment(sn)
				}
			}
		},
		UpdatedMetrics: func(rttStats *RTTStats, cwnd, inflight int) {
			for _, t := range tracers {
				if t.UpdatedMetrics != nil {
					t.UpdatedMetrics(rttStats, cwnd, inflight)
				}
			}
		},
		UpdatedCongestionState: func(state CongestionState) {
			for _, t := range tracers {
				if t.UpdatedCongestionState != nil {
					t.UpdatedCongestionState(state)
				}
			}
		},
		SetTimer: func(tt TimerType, deadline time.Time) {
			for _, t := range tracers {
				if t.SetTimer != nil {
					t.SetTimer(tt, deadline)
				}
			}
		},
		TimerExpired: func(tt TimerType) {
			for _, t := range tracers {
				if t.TimerExpired != nil {
					t.TimerExpired(tt)
				}
			}
		},
		Debug: func(name, msg string) {
			for _, t := range tracers {
				if t.Debug != nil {
					t.Debug(name, msg)
				}
			}
		},
		Close: func() {
			for _, t := range tracers {
				if t.Close != nil {
					t.Close()
				}
			}
		},
	}
}
