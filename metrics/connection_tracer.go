// Package metrics provides a Prometheus tracer for reliable-delivery
// connections.
package metrics

import (
	"errors"
	"time"

	"github.com/relmux-go/relmux-go/logging"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "relmux"

var (
	connStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "connections_started_total",
			Help:      "Connections Started",
		},
	)
	connClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "connections_closed_total",
			Help:      "Connections Closed",
		},
		[]string{"trigger"},
	)
	connDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "connection_duration_seconds",
			Help:      "Duration of a Connection",
			Buckets:   prometheus.ExponentialBuckets(1.0/16, 2, 25), // up to 24 days
		},
	)
	segmentsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "segments_sent_total",
			Help:      "Segments Sent",
		},
		[]string{"kind"},
	)
	segmentsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "segments_received_total",
			Help:      "Segments Received",
		},
		[]string{"kind"},
	)
	segmentsLost = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "segments_lost_total",
			Help:      "Segments declared lost by the retransmission timer",
		},
	)
	acksSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "acks_sent_total",
			Help:      "Acknowledgement Segments Sent",
		},
	)
	acksReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "acks_received_total",
			Help:      "Acknowledgement Segments Received",
		},
	)
	rttSamples = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "rtt_seconds",
			Help:      "Round trip time samples",
			Buckets:   prometheus.ExponentialBuckets(0.001, 1.3, 35),
		},
	)
	congestionStateChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "congestion_state_changes_total",
			Help:      "Congestion Controller State Changes",
		},
		[]string{"state"},
	)
)

// NewConnectionTracer creates a metrics ConnectionTracer using the default
// Prometheus registerer. The tracer can be set on the Config for a new
// connection.
func NewConnectionTracer() *logging.ConnectionTracer {
	return NewConnectionTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewConnectionTracerWithRegisterer creates a metrics ConnectionTracer using
// a given Prometheus registerer.
func NewConnectionTracerWithRegisterer(registerer prometheus.Registerer) *logging.ConnectionTracer {
	for _, c := range [...]prometheus.Collector{
		connStarted,
		connClosed,
		connDuration,
		segmentsSent,
		segmentsReceived,
		segmentsLost,
		acksSent,
		acksReceived,
		rttSamples,
		congestionStateChanges,
	} {
		if err := registerer.Register(c); err != nil {
			if ok := errors.As(err, &prometheus.AlreadyRegisteredError{}); !ok {
				panic(err)
			}
		}
	}

	var startTime time.Time
	return &logging.ConnectionTracer{
		StartedConnection: func(_ logging.StreamID) {
			startTime = time.Now()
			connStarted.Inc()
		},
		ClosedConnection: func(err error) {
			tags := getStringSlice()
			defer putStringSlice(tags)

			*tags = append(*tags, closeReason(err))
			connClosed.WithLabelValues(*tags...).Inc()
			if !startTime.IsZero() {
				connDuration.Observe(time.Since(startTime).Seconds())
			}
		},
		SentSegment: func(_ logging.Seqno, _ logging.ByteCount, retransmission bool) {
			tags := getStringSlice()
			defer putStringSlice(tags)

			kind := "initial"
			if retransmission {
				kind = "retransmission"
			}
			*tags = append(*tags, kind)
			segmentsSent.WithLabelValues(*tags...).Inc()
		},
		ReceivedSegment: func(_ logging.Seqno, _ logging.ByteCount, duplicate bool) {
			tags := getStringSlice()
			defer putStringSlice(tags)

			kind := "initial"
			if duplicate {
				kind = "duplicate"
			}
			*tags = append(*tags, kind)
			segmentsReceived.WithLabelValues(*tags...).Inc()
		},
		SentAck: func(_ []logging.Seqno, _ logging.Seqno) {
			acksSent.Inc()
		},
		ReceivedAck: func(_ []logging.Seqno, _ logging.Seqno) {
			acksReceived.Inc()
		},
		LostSegment: func(_ logging.Seqno) {
			segmentsLost.Inc()
		},
		UpdatedMetrics: func(rttStats *logging.RTTStats, _, _ int) {
			if rttStats.HasMeasurement() {
				rttSamples.Observe(rttStats.LatestRTT().Seconds())
			}
		},
		UpdatedCongestionState: func(state logging.CongestionState) {
			tags := getStringSlice()
			defer putStringSlice(tags)

			*tags = append(*tags, state.String())
			congestionStateChanges.WithLabelValues(*tags...).Inc()
		},
	}
}
