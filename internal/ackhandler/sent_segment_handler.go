package ackhandler

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/utils"
	"github.com/relmux-go/relmux-go/internal/wire"
)

type sentSegmentHandler struct {
	history  *sentSegmentHistory
	rttStats *utils.RTTStats
	numLost  int

	logger utils.Logger
}

var _ SentSegmentHandler = &sentSegmentHandler{}

func newSentSegmentHandler(rttStats *utils.RTTStats, logger utils.Logger) *sentSegmentHandler {
	return &sentSegmentHandler{
		history:  newSentSegmentHistory(),
		rttStats: rttStats,
		logger:   logger,
	}
}

// rto returns the retransmission timeout after the given number of
// retries, backed off exponentially.
func (h *sentSegmentHandler) rto(retries int) time.Duration {
	backoff := retries
	if backoff > protocol.MaxRTOBackoff {
		backoff = protocol.MaxRTOBackoff
	}
	return h.rttStats.RTO() << backoff
}

func (h *sentSegmentHandler) SentSegment(msg wire.Message, now time.Time) {
	h.history.Add(&sentSegment{
		message:     msg,
		sendTime:    now,
		rtoDeadline: now.Add(h.rto(0)),
	})
}

func (h *sentSegmentHandler) MarkAcked(sn protocol.Seqno, now time.Time) bool {
	s := h.history.Get(sn)
	if s == nil {
		return false
	}
	if s.retries == 0 {
		// Karn's algorithm: never sample the RTT of a retransmitted
		// segment
		h.rttStats.UpdateRTT(now.Sub(s.sendTime))
		if h.logger.Debug() {
			h.logger.Debugf("\tupdated RTT: %s (σ: %s)", h.rttStats.SmoothedRTT(), h.rttStats.MeanDeviation())
		}
	}
	h.history.Remove(sn)
	if s.lost {
		h.numLost--
		return false
	}
	return true
}

func (h *sentSegmentHandler) MarkAckedBelow(sn protocol.Seqno) {
	h.history.RemoveBelow(sn, func(s *sentSegment) {
		if s.lost {
			h.numLost--
		}
	})
}

func (h *sentSegmentHandler) MarkLost(sn protocol.Seqno) {
	s := h.history.Get(sn)
	if s == nil || s.lost {
		return
	}
	s.lost = true
	s.rtoDeadline = time.Time{}
	h.numLost++
}

func (h *sentSegmentHandler) Retransmit(sn protocol.Seqno, now time.Time) (wire.Message, bool) {
	s := h.history.Get(sn)
	if s == nil {
		return wire.Message{}, false
	}
	if s.lost {
		s.lost = false
		h.numLost--
	}
	s.retries++
	s.sendTime = now
	s.rtoDeadline = now.Add(h.rto(s.retries))
	return s.message, true
}

func (h *sentSegmentHandler) FirstRTO() (protocol.Seqno, time.Time, bool) {
	var sn protocol.Seqno
	var deadline time.Time
	h.history.Iterate(func(s *sentSegment) bool {
		if s.lost {
			return true
		}
		if deadline.IsZero() || s.rtoDeadline.Before(deadline) {
			sn = s.message.Seqno
			deadline = s.rtoDeadline
		}
		return true
	})
	return sn, deadline, !deadline.IsZero()
}

func (h *sentSegmentHandler) Inflight() int { return h.history.Len() - h.numLost }

func (h *sentSegmentHandler) Unacked() int { return h.history.Len() }

func (h *sentSegmentHandler) LostCount() int { return h.numLost }
