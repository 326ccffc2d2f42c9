package congestion

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
)

// The Pacer spaces out transmissions of new segments. After every sent
// segment the next permitted send time advances by the inverse of the
// pacing rate, without ever falling behind the current time.
type Pacer struct {
	nextSendTime time.Time
	getRate      func() float64
}

// NewPacer creates a new Pacer. getRate returns the pacing rate in
// segments per second; it is sampled once per sent segment, and rates
// below MinPacingRate are raised to it.
func NewPacer(getRate func() float64) *Pacer {
	return &Pacer{getRate: getRate}
}

// TimeUntilSend returns the earliest time the next segment may be sent.
// The zero time means a segment can be sent immediately.
func (p *Pacer) TimeUntilSend() time.Time {
	return p.nextSendTime
}

// SentSegment advances the pacing clock for a segment sent at sendTime.
func (p *Pacer) SentSegment(sendTime time.Time) {
	rate := p.getRate()
	if rate < protocol.MinPacingRate {
		rate = protocol.MinPacingRate
	}
	if p.nextSendTime.IsZero() {
		p.nextSendTime = sendTime
	}
	next := p.nextSendTime.Add(time.Duration(float64(time.Second) / rate))
	if next.Before(sendTime) {
		next = sendTime
	}
	p.nextSendTime = next
}
