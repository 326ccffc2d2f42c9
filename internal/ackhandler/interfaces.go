package ackhandler

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/utils"
	"github.com/relmux-go/relmux-go/internal/wire"
)

// SentSegmentHandler tracks sent data segments until they are acked.
// A segment whose retransmission timeout expires is marked lost; it stays
// tracked (and counted in Unacked) until it is either retransmitted or
// acked.
type SentSegmentHandler interface {
	// SentSegment registers a newly sent segment. Seqnos must be used
	// sequentially.
	SentSegment(msg wire.Message, now time.Time)
	// MarkAcked removes the segment from the handler. It reports whether
	// the segment was tracked and not marked lost; the congestion
	// controller must only be credited when it returns true.
	MarkAcked(sn protocol.Seqno, now time.Time) bool
	// MarkAckedBelow removes all segments with a seqno below sn. No RTT
	// samples are taken.
	MarkAckedBelow(sn protocol.Seqno)
	// MarkLost marks the segment as lost, removing it from the
	// retransmission timer until Retransmit is called.
	MarkLost(sn protocol.Seqno)
	// Retransmit prepares the retransmission of a lost segment: the
	// retry counter is bumped and a new, backed-off timeout armed. It
	// reports false if the segment is no longer tracked.
	Retransmit(sn protocol.Seqno, now time.Time) (wire.Message, bool)
	// FirstRTO returns the segment with the earliest retransmission
	// deadline, if there is one.
	FirstRTO() (protocol.Seqno, time.Time, bool)
	// Inflight is the number of tracked segments not marked lost.
	Inflight() int
	// Unacked is the total number of tracked segments.
	Unacked() int
	// LostCount is the number of tracked segments marked lost.
	LostCount() int
}

// ReceivedSegmentHandler collects the acks owed for received data
// segments until they are flushed into a single DataAck.
type ReceivedSegmentHandler interface {
	// ReceivedSegment arms the delayed ack alarm if it isn't already
	// armed. It is called for every received data segment, duplicates
	// included.
	ReceivedSegment(now time.Time)
	// QueueAck queues a selective ack for a newly stored segment.
	QueueAck(sn protocol.Seqno)
	// ShouldForceAck reports whether a full ack batch is pending, in
	// which case an ack must be sent before any further segment is
	// processed.
	ShouldForceAck() bool
	// AckAlarm returns the delayed ack deadline, or the zero time if
	// no ack is owed.
	AckAlarm() time.Time
	// DequeueAcks returns the pending acks in ascending order and
	// disarms the alarm. The returned list may be empty: an ack
	// carrying only the cumulative seqno is still owed.
	DequeueAcks() []protocol.Seqno
}

// NewAckHandler creates a SentSegmentHandler and a ReceivedSegmentHandler
// sharing the connection's RTT statistics.
func NewAckHandler(rttStats *utils.RTTStats, logger utils.Logger) (SentSegmentHandler, ReceivedSegmentHandler) {
	return newSentSegmentHandler(rttStats, logger), newReceivedSegmentTracker()
}
