package utils

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
)

const (
	rttAlpha = 0.125
	rttBeta  = 0.25
)

// RTTStats provides round-trip statistics
type RTTStats struct {
	hasMeasurement bool

	minRTT        time.Duration
	latestRTT     time.Duration
	smoothedRTT   time.Duration
	meanDeviation time.Duration
}

// MinRTT returns the lowest RTT observed on the connection, or 0 if no valid
// samples exist yet.
func (r *RTTStats) MinRTT() time.Duration { return r.minRTT }

// LatestRTT returns the most recent RTT sample.
func (r *RTTStats) LatestRTT() time.Duration { return r.latestRTT }

// SmoothedRTT returns the EWMA smoothed RTT.
func (r *RTTStats) SmoothedRTT() time.Duration { return r.smoothedRTT }

// MeanDeviation returns the EWMA smoothed mean deviation of the RTT.
func (r *RTTStats) MeanDeviation() time.Duration { return r.meanDeviation }

// HasMeasurement says whether a valid RTT sample was taken.
func (r *RTTStats) HasMeasurement() bool { return r.hasMeasurement }

// UpdateRTT updates the statistics with a new sample. Samples that are zero
// or negative (from clock anomalies) are dropped.
func (r *RTTStats) UpdateRTT(sample time.Duration) {
	if sample <= 0 {
		return
	}

	if r.minRTT == 0 || r.minRTT > sample {
		r.minRTT = sample
	}
	r.latestRTT = sample

	if !r.hasMeasurement {
		r.hasMeasurement = true
		r.smoothedRTT = sample
		r.meanDeviation = sample / 2
		return
	}
	deviation := r.smoothedRTT - sample
	if deviation < 0 {
		deviation = -deviation
	}
	r.meanDeviation = time.Duration((1-rttBeta)*float64(r.meanDeviation) + rttBeta*float64(deviation))
	r.smoothedRTT = time.Duration((1-rttAlpha)*float64(r.smoothedRTT) + rttAlpha*float64(sample))
}

// RTO returns the retransmission timeout: the smoothed RTT plus four times
// the mean deviation, clamped to [MinRTO, MaxRTO]. Before the first sample
// it returns DefaultRTO.
func (r *RTTStats) RTO() time.Duration {
	if !r.hasMeasurement {
		return protocol.DefaultRTO
	}
	rto := r.smoothedRTT + max(4*r.meanDeviation, protocol.TimerGranularity)
	if rto < protocol.MinRTO {
		return protocol.MinRTO
	}
	if rto > protocol.MaxRTO {
		return protocol.MaxRTO
	}
	return rto
}

// Reset forgets all samples.
func (r *RTTStats) Reset() {
	*r = RTTStats{}
}
