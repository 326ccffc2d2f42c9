package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/relmux-go/relmux-go/internal/qerr"
	"github.com/relmux-go/relmux-go/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func histogramSampleCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestConnectionLifecycleMetrics(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())
	startedBefore := testutil.ToFloat64(connStarted)
	closedBefore := testutil.ToFloat64(connClosed.WithLabelValues("graceful_drain"))
	durationBefore := histogramSampleCount(t, connDuration)

	tracer.StartedConnection(1)
	tracer.ClosedConnection(&qerr.DrainedError{})

	require.Equal(t, startedBefore+1, testutil.ToFloat64(connStarted))
	require.Equal(t, closedBefore+1, testutil.ToFloat64(connClosed.WithLabelValues("graceful_drain")))
	require.Equal(t, durationBefore+1, histogramSampleCount(t, connDuration))
}

func TestConnectionCloseWithoutStart(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())
	closedBefore := testutil.ToFloat64(connClosed.WithLabelValues("reset_remote"))
	durationBefore := histogramSampleCount(t, connDuration)

	tracer.ClosedConnection(&qerr.ResetError{Remote: true})

	require.Equal(t, closedBefore+1, testutil.ToFloat64(connClosed.WithLabelValues("reset_remote")))
	require.Equal(t, durationBefore, histogramSampleCount(t, connDuration))
}

func TestSegmentMetrics(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())
	sentBefore := testutil.ToFloat64(segmentsSent.WithLabelValues("initial"))
	retransmittedBefore := testutil.ToFloat64(segmentsSent.WithLabelValues("retransmission"))
	receivedBefore := testutil.ToFloat64(segmentsReceived.WithLabelValues("initial"))
	duplicateBefore := testutil.ToFloat64(segmentsReceived.WithLabelValues("duplicate"))
	lostBefore := testutil.ToFloat64(segmentsLost)

	tracer.SentSegment(0, 1200, false)
	tracer.SentSegment(1, 1200, false)
	tracer.SentSegment(0, 1200, true)
	tracer.ReceivedSegment(0, 600, false)
	tracer.ReceivedSegment(0, 600, true)
	tracer.LostSegment(1)

	require.Equal(t, sentBefore+2, testutil.ToFloat64(segmentsSent.WithLabelValues("initial")))
	require.Equal(t, retransmittedBefore+1, testutil.ToFloat64(segmentsSent.WithLabelValues("retransmission")))
	require.Equal(t, receivedBefore+1, testutil.ToFloat64(segmentsReceived.WithLabelValues("initial")))
	require.Equal(t, duplicateBefore+1, testutil.ToFloat64(segmentsReceived.WithLabelValues("duplicate")))
	require.Equal(t, lostBefore+1, testutil.ToFloat64(segmentsLost))
}

func TestAckMetrics(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())
	sentBefore := testutil.ToFloat64(acksSent)
	receivedBefore := testutil.ToFloat64(acksReceived)

	tracer.SentAck([]logging.Seqno{1, 2}, 1)
	tracer.ReceivedAck(nil, 3)

	require.Equal(t, sentBefore+1, testutil.ToFloat64(acksSent))
	require.Equal(t, receivedBefore+1, testutil.ToFloat64(acksReceived))
}

func TestRTTMetrics(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())
	samplesBefore := histogramSampleCount(t, rttSamples)

	tracer.UpdatedMetrics(&logging.RTTStats{}, 4, 2)
	require.Equal(t, samplesBefore, histogramSampleCount(t, rttSamples))

	var rttStats logging.RTTStats
	rttStats.UpdateRTT(20 * time.Millisecond)
	tracer.UpdatedMetrics(&rttStats, 4, 2)
	require.Equal(t, samplesBefore+1, histogramSampleCount(t, rttSamples))
}

func TestCongestionStateMetrics(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())
	before := testutil.ToFloat64(congestionStateChanges.WithLabelValues("recovery"))

	tracer.UpdatedCongestionState(logging.CongestionStateRecovery)

	require.Equal(t, before+1, testutil.ToFloat64(congestionStateChanges.WithLabelValues("recovery")))
}

func TestRepeatedRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		NewConnectionTracerWithRegisterer(registry)
		NewConnectionTracerWithRegisterer(registry)
	})
}

func TestCloseReasonMapping(t *testing.T) {
	require.Equal(t, "graceful_drain", closeReason(&qerr.DrainedError{}))
	require.Equal(t, "reset_local", closeReason(&qerr.ResetError{}))
	require.Equal(t, "reset_remote", closeReason(&qerr.ResetError{Remote: true}))
	require.Equal(t, "idle_timeout", closeReason(&qerr.IdleTimeoutError{}))
	require.Equal(t, "delivery_failure", closeReason(&qerr.DeliveryError{Cause: errors.New("disk full")}))
	require.Equal(t, "decode_failure", closeReason(&qerr.DecodeError{Cause: errors.New("bad varint")}))
	require.Equal(t, "error", closeReason(errors.New("oops")))
}
