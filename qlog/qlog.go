// Package qlog provides a qlog tracer for reliable-delivery connections.
//
// The qlog events are serialized to JSON-SEQ (RFC 7464), one record per
// event, and can be inspected with any tool that understands the qlog
// 0.3 format.
package qlog

import (
	"io"
	"strconv"
	"time"

	"github.com/relmux-go/relmux-go/logging"
)

// NewConnectionTracer records events for a single connection and writes
// them to w. The writer is closed when the connection is closed.
func NewConnectionTracer(w io.WriteCloser, streamID logging.StreamID) *logging.ConnectionTracer {
	tr := &trace{
		VantagePoint: vantagePoint{Type: "transport"},
		CommonFields: commonFields{
			GroupID:       strconv.FormatUint(uint64(streamID), 10),
			ProtocolType:  "RELMUX",
			ReferenceTime: time.Now(),
		},
	}
	wr := newWriter(w, tr)
	go wr.Run()
	return &logging.ConnectionTracer{
		StartedConnection: func(id logging.StreamID) {
			wr.RecordEvent(time.Now(), eventConnectionStarted{StreamID: id})
		},
		ClosedConnection: func(err error) {
			wr.RecordEvent(time.Now(), eventConnectionClosed{e: err})
		},
		SentSegment: func(sn logging.Seqno, size logging.ByteCount, retransmission bool) {
			wr.RecordEvent(time.Now(), eventSegmentSent{
				Seqno:          sn,
				Length:         size,
				Retransmission: retransmission,
			})
		},
		ReceivedSegment: func(sn logging.Seqno, size logging.ByteCount, duplicate bool) {
			wr.RecordEvent(time.Now(), eventSegmentReceived{
				Seqno:     sn,
				Length:    size,
				Duplicate: duplicate,
			})
		},
		SentAck: func(acked []logging.Seqno, cumulative logging.Seqno) {
			wr.RecordEvent(time.Now(), eventAckSent{Acked: acked, Cumulative: cumulative})
		},
		ReceivedAck: func(acked []logging.Seqno, cumulative logging.Seqno) {
			wr.RecordEvent(time.Now(), eventAckReceived{Acked: acked, Cumulative: cumulative})
		},
		LostSegment: func(sn logging.Seqno) {
			wr.RecordEvent(time.Now(), eventSegmentLost{Seqno: sn})
		},
		UpdatedMetrics: func(rttStats *logging.RTTStats, cwnd, inflight int) {
			wr.RecordEvent(time.Now(), eventMetricsUpdated{
				MinRTT:           rttStats.MinRTT(),
				SmoothedRTT:      rttStats.SmoothedRTT(),
				LatestRTT:        rttStats.LatestRTT(),
				RTTVariance:      rttStats.MeanDeviation(),
				CongestionWindow: cwnd,
				SegmentsInFlight: inflight,
			})
		},
		UpdatedCongestionState: func(state logging.CongestionState) {
			wr.RecordEvent(time.Now(), eventCongestionStateUpdated{state: state})
		},
		SetTimer: func(tt logging.TimerType, deadline time.Time) {
			wr.RecordEvent(time.Now(), eventTimerSet{TimerType: tt, Delta: time.Until(deadline)})
		},
		TimerExpired: func(tt logging.TimerType) {
			wr.RecordEvent(time.Now(), eventTimerExpired{TimerType: tt})
		},
		Debug: func(name, msg string) {
			wr.RecordEvent(time.Now(), eventGeneric{name: name, msg: msg})
		},
		Close: func() { wr.Close() },
	}
}
