package relmux

import (
	"github.com/relmux-go/relmux-go/internal/protocol"
)

// The reorderer buffers segments received out of order until the gaps
// before them are filled. It bounds the buffer by rejecting segments too
// far ahead of the lowest unseen seqno; the peer retransmits them later.
type reorderer struct {
	queued       map[protocol.Seqno][]byte
	lowestUnseen protocol.Seqno
}

func newReorderer() *reorderer {
	return &reorderer{queued: make(map[protocol.Seqno][]byte)}
}

// Insert reports whether the segment was newly stored. Segments already
// delivered or buffered, and segments more than the reorder window ahead,
// are dropped.
func (r *reorderer) Insert(sn protocol.Seqno, payload []byte) bool {
	if sn < r.lowestUnseen || sn > r.lowestUnseen+protocol.ReordererWindow {
		return false
	}
	if _, ok := r.queued[sn]; ok {
		return false
	}
	r.queued[sn] = payload
	return true
}

// Drain removes and returns the contiguous run of segments starting at
// the lowest unseen seqno, advancing it past them.
func (r *reorderer) Drain() [][]byte {
	var payloads [][]byte
	for {
		payload, ok := r.queued[r.lowestUnseen]
		if !ok {
			return payloads
		}
		delete(r.queued, r.lowestUnseen)
		payloads = append(payloads, payload)
		r.lowestUnseen++
	}
}

// LowestUnseen returns the lowest seqno not yet drained. Every segment
// below it has been delivered in order.
func (r *reorderer) LowestUnseen() protocol.Seqno {
	return r.lowestUnseen
}
