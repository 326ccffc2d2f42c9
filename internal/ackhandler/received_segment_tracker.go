package ackhandler

import (
	"slices"
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
)

type receivedSegmentTracker struct {
	pending map[protocol.Seqno]struct{}
	// ackAlarm is the delayed ack deadline. The zero time means no ack
	// is owed.
	ackAlarm time.Time
}

var _ ReceivedSegmentHandler = &receivedSegmentTracker{}

func newReceivedSegmentTracker() *receivedSegmentTracker {
	return &receivedSegmentTracker{pending: make(map[protocol.Seqno]struct{})}
}

func (t *receivedSegmentTracker) ReceivedSegment(now time.Time) {
	if t.ackAlarm.IsZero() {
		t.ackAlarm = now.Add(protocol.DelayedAckTime)
	}
}

func (t *receivedSegmentTracker) QueueAck(sn protocol.Seqno) {
	if len(t.pending) >= protocol.AckBatchSize {
		panic("ack queue overflow")
	}
	t.pending[sn] = struct{}{}
}

func (t *receivedSegmentTracker) ShouldForceAck() bool {
	return len(t.pending) >= protocol.AckBatchSize
}

func (t *receivedSegmentTracker) AckAlarm() time.Time { return t.ackAlarm }

func (t *receivedSegmentTracker) DequeueAcks() []protocol.Seqno {
	acks := make([]protocol.Seqno, 0, len(t.pending))
	for sn := range t.pending {
		acks = append(acks, sn)
	}
	slices.Sort(acks)
	clear(t.pending)
	t.ackAlarm = time.Time{}
	return acks
}
