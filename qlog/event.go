package qlog

import (
	"errors"
	"time"

	"github.com/relmux-go/relmux-go/internal/qerr"
	"github.com/relmux-go/relmux-go/logging"

	"github.com/francoispqt/gojay"
)

func milliseconds(dur time.Duration) float64 { return float64(dur.Nanoseconds()) / 1e6 }

type eventDetails interface {
	Category() category
	Name() string
	gojay.MarshalerJSONObject
}

type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONObject = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONObject(enc *gojay.Encoder) {
	enc.FloatKey("time", milliseconds(e.RelativeTime))
	enc.StringKey("name", e.Category().String()+":"+e.Name())
	enc.ObjectKey("data", e.eventDetails)
}

type seqnos []logging.Seqno

var _ gojay.MarshalerJSONArray = seqnos{}

func (s seqnos) IsNil() bool { return len(s) == 0 }
func (s seqnos) MarshalJSONArray(enc *gojay.Encoder) {
	for _, sn := range s {
		enc.Uint64(uint64(sn))
	}
}

type eventConnectionStarted struct {
	StreamID logging.StreamID
}

var _ eventDetails = &eventConnectionStarted{}

func (e eventConnectionStarted) Category() category { return categoryTransport }
func (e eventConnectionStarted) Name() string       { return "connection_started" }
func (e eventConnectionStarted) IsNil() bool        { return false }

func (e eventConnectionStarted) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("stream_id", uint64(e.StreamID))
}

func closeTrigger(e error) string {
	var (
		drainedErr     *qerr.DrainedError
		resetErr       *qerr.ResetError
		idleTimeoutErr *qerr.IdleTimeoutError
		deliveryErr    *qerr.DeliveryError
		decodeErr      *qerr.DecodeError
	)
	switch {
	case errors.As(e, &drainedErr):
		return "graceful_drain"
	case errors.As(e, &resetErr):
		if resetErr.Remote {
			return "reset_remote"
		}
		return "reset_local"
	case errors.As(e, &idleTimeoutErr):
		return "idle_timeout"
	case errors.As(e, &deliveryErr):
		return "delivery_failure"
	case errors.As(e, &decodeErr):
		return "decode_failure"
	default:
		return "error"
	}
}

type eventConnectionClosed struct {
	e error
}

func (e eventConnectionClosed) Category() category { return categoryTransport }
func (e eventConnectionClosed) Name() string       { return "connection_closed" }
func (e eventConnectionClosed) IsNil() bool        { return false }

func (e eventConnectionClosed) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("trigger", closeTrigger(e.e))
	enc.StringKey("reason", e.e.Error())
}

type eventSegmentSent struct {
	Seqno          logging.Seqno
	Length         logging.ByteCount
	Retransmission bool
}

var _ eventDetails = eventSegmentSent{}

func (e eventSegmentSent) Category() category { return categoryTransport }
func (e eventSegmentSent) Name() string       { return "segment_sent" }
func (e eventSegmentSent) IsNil() bool        { return false }

func (e eventSegmentSent) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("seqno", uint64(e.Seqno))
	enc.Uint64Key("length", uint64(e.Length))
	enc.BoolKeyOmitEmpty("retransmission", e.Retransmission)
}

type eventSegmentReceived struct {
	Seqno     logging.Seqno
	Length    logging.ByteCount
	Duplicate bool
}

var _ eventDetails = eventSegmentReceived{}

func (e eventSegmentReceived) Category() category { return categoryTransport }
func (e eventSegmentReceived) Name() string       { return "segment_received" }
func (e eventSegmentReceived) IsNil() bool        { return false }

func (e eventSegmentReceived) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("seqno", uint64(e.Seqno))
	enc.Uint64Key("length", uint64(e.Length))
	enc.BoolKeyOmitEmpty("duplicate", e.Duplicate)
}

type eventSegmentLost struct {
	Seqno logging.Seqno
}

func (e eventSegmentLost) Category() category { return categoryRecovery }
func (e eventSegmentLost) Name() string       { return "segment_lost" }
func (e eventSegmentLost) IsNil() bool        { return false }

func (e eventSegmentLost) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("seqno", uint64(e.Seqno))
}

type eventAckSent struct {
	Acked      seqnos
	Cumulative logging.Seqno
}

func (e eventAckSent) Category() category { return categoryTransport }
func (e eventAckSent) Name() string       { return "ack_sent" }
func (e eventAckSent) IsNil() bool        { return false }

func (e eventAckSent) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ArrayKeyOmitEmpty("acked", e.Acked)
	enc.Uint64Key("cumulative", uint64(e.Cumulative))
}

type eventAckReceived struct {
	Acked      seqnos
	Cumulative logging.Seqno
}

func (e eventAckReceived) Category() category { return categoryTransport }
func (e eventAckReceived) Name() string       { return "ack_received" }
func (e eventAckReceived) IsNil() bool        { return false }

func (e eventAckReceived) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ArrayKeyOmitEmpty("acked", e.Acked)
	enc.Uint64Key("cumulative", uint64(e.Cumulative))
}

type eventMetricsUpdated struct {
	MinRTT      time.Duration
	SmoothedRTT time.Duration
	LatestRTT   time.Duration
	RTTVariance time.Duration

	CongestionWindow int
	SegmentsInFlight int
}

func (e eventMetricsUpdated) Category() category { return categoryRecovery }
func (e eventMetricsUpdated) Name() string       { return "metrics_updated" }
func (e eventMetricsUpdated) IsNil() bool        { return false }

func (e eventMetricsUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.FloatKey("min_rtt", milliseconds(e.MinRTT))
	enc.FloatKey("smoothed_rtt", milliseconds(e.SmoothedRTT))
	enc.FloatKey("latest_rtt", milliseconds(e.LatestRTT))
	enc.FloatKey("rtt_variance", milliseconds(e.RTTVariance))

	enc.Uint64Key("congestion_window", uint64(e.CongestionWindow))
	enc.Uint64KeyOmitEmpty("segments_in_flight", uint64(e.SegmentsInFlight))
}

type eventCongestionStateUpdated struct {
	state logging.CongestionState
}

func (e eventCongestionStateUpdated) Category() category { return categoryRecovery }
func (e eventCongestionStateUpdated) Name() string       { return "congestion_state_updated" }
func (e eventCongestionStateUpdated) IsNil() bool        { return false }

func (e eventCongestionStateUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("new", e.state.String())
}

type eventTimerSet struct {
	TimerType logging.TimerType
	Delta     time.Duration
}

func (e eventTimerSet) Category() category { return categoryRecovery }
func (e eventTimerSet) Name() string       { return "timer_updated" }
func (e eventTimerSet) IsNil() bool        { return false }

func (e eventTimerSet) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("event_type", "set")
	enc.StringKey("timer_type", e.TimerType.String())
	enc.FloatKey("delta", milliseconds(e.Delta))
}

type eventTimerExpired struct {
	TimerType logging.TimerType
}

func (e eventTimerExpired) Category() category { return categoryRecovery }
func (e eventTimerExpired) Name() string       { return "timer_updated" }
func (e eventTimerExpired) IsNil() bool        { return false }

func (e eventTimerExpired) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("event_type", "expired")
	enc.StringKey("timer_type", e.TimerType.String())
}

type eventGeneric struct {
	name string
	msg  string
}

func (e eventGeneric) Category() category { return categoryTransport }
func (e eventGeneric) Name() string       { return e.name }
func (e eventGeneric) IsNil() bool        { return false }

func (e eventGeneric) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("details", e.msg)
}
