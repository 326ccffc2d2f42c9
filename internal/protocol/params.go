package protocol

import "time"

// AckBatchSize is the number of pending selective acks that forces an
// immediate DataAck, regardless of the delayed-ack timer.
const AckBatchSize = 16

// DelayedAckTime is the maximum time a received segment waits before it is
// acknowledged.
const DelayedAckTime = time.Millisecond

// DefaultIdleTimeout is the time without any connection activity after which
// the connection is torn down.
const DefaultIdleTimeout = 600 * time.Second

// MinPacingRate is the floor on the pacing rate, in segments per second.
const MinPacingRate = 200

// TimerGranularity is the granularity of connection timers.
const TimerGranularity = time.Millisecond

// DefaultInitialRTT is the RTT assumed before the first measurement.
const DefaultInitialRTT = 100 * time.Millisecond

// InitialCongestionWindow is the initial congestion window, in segments.
const InitialCongestionWindow = 32

// MinCongestionWindow is the lowest value the congestion window can reach,
// in segments.
const MinCongestionWindow = 2

// DefaultMaxCongestionWindow is the default cap on the congestion window,
// in segments.
const DefaultMaxCongestionWindow = 1000

// DefaultRTO is the retransmission timeout used before any RTT samples
// exist.
const DefaultRTO = time.Second

// MinRTO bounds the adaptive retransmission timeout from below.
const MinRTO = 200 * time.Millisecond

// MaxRTO bounds the adaptive retransmission timeout from above.
const MaxRTO = time.Minute

// MaxRTOBackoff caps the exponential backoff applied to retransmitted
// segments, as a shift count.
const MaxRTOBackoff = 6

// ReordererWindow is how far (in seqnos) a received segment may be ahead of
// the lowest unseen seqno before it is dropped. It bounds the memory of the
// reorder buffer.
const ReordererWindow = 10000
