package ackhandler

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/wire"
)

// A sentSegment is one tracked data segment.
type sentSegment struct {
	message  wire.Message
	sendTime time.Time // time of the most recent transmission
	retries  int
	lost     bool
	// rtoDeadline is the retransmission deadline. It is zero while the
	// segment is marked lost.
	rtoDeadline time.Time
}

// sentSegmentHistory stores sent segments, indexed by seqno. Seqnos are
// assigned sequentially, so the storage is a slice with the seqno of the
// first element as offset. Removed segments leave a nil slot until the
// start of the slice is cleaned up.
type sentSegmentHistory struct {
	segments    []*sentSegment
	numSegments int
}

func newSentSegmentHistory() *sentSegmentHistory {
	return &sentSegmentHistory{segments: make([]*sentSegment, 0, 32)}
}

func (h *sentSegmentHistory) Add(s *sentSegment) {
	if len(h.segments) > 0 {
		if expected := h.segments[0].message.Seqno + protocol.Seqno(len(h.segments)); s.message.Seqno != expected {
			panic("non-sequential seqno use")
		}
	}
	h.segments = append(h.segments, s)
	h.numSegments++
}

// Get returns the tracked segment, or nil.
func (h *sentSegmentHistory) Get(sn protocol.Seqno) *sentSegment {
	idx, ok := h.getIndex(sn)
	if !ok {
		return nil
	}
	return h.segments[idx]
}

// Remove removes the segment. It reports false if the segment is not
// tracked.
func (h *sentSegmentHistory) Remove(sn protocol.Seqno) bool {
	idx, ok := h.getIndex(sn)
	if !ok || h.segments[idx] == nil {
		return false
	}
	h.segments[idx] = nil
	h.numSegments--
	if idx == 0 {
		h.cleanupStart()
	}
	return true
}

// RemoveBelow removes all segments with a seqno below sn, calling cb for
// each removed segment.
func (h *sentSegmentHistory) RemoveBelow(sn protocol.Seqno, cb func(*sentSegment)) {
	if len(h.segments) == 0 {
		return
	}
	first := h.segments[0].message.Seqno
	if sn <= first {
		return
	}
	n := int(sn - first)
	if n > len(h.segments) {
		n = len(h.segments)
	}
	for i := 0; i < n; i++ {
		if s := h.segments[i]; s != nil {
			cb(s)
			h.segments[i] = nil
			h.numSegments--
		}
	}
	h.cleanupStart()
}

// Iterate iterates over all tracked segments, in seqno order, until cb
// returns false.
func (h *sentSegmentHistory) Iterate(cb func(*sentSegment) bool) {
	for _, s := range h.segments {
		if s == nil {
			continue
		}
		if !cb(s) {
			return
		}
	}
}

func (h *sentSegmentHistory) Len() int { return h.numSegments }

func (h *sentSegmentHistory) getIndex(sn protocol.Seqno) (int, bool) {
	if len(h.segments) == 0 {
		return 0, false
	}
	first := h.segments[0].message.Seqno
	if sn < first {
		return 0, false
	}
	idx := int(sn - first)
	if idx > len(h.segments)-1 {
		return 0, false
	}
	return idx, true
}

// cleanupStart drops all nil slots at the beginning of the slice.
func (h *sentSegmentHistory) cleanupStart() {
	for i, s := range h.segments {
		if s != nil {
			h.segments = h.segments[i:]
			return
		}
	}
	h.segments = h.segments[:0]
}
