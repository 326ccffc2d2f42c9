package relmux

import (
	"errors"
	"fmt"
	"io"
	"net"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/relmux-go/relmux-go/internal/ackhandler"
	"github.com/relmux-go/relmux-go/internal/congestion"
	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/qerr"
	"github.com/relmux-go/relmux-go/internal/utils"
	"github.com/relmux-go/relmux-go/internal/wire"
	"github.com/relmux-go/relmux-go/logging"
)

// A Conn is the reliable delivery engine for one virtual substream of a
// packet multiplexer. It owns no sockets: outgoing segments are handed to
// the transmit callback, incoming segments are fed through the inbound
// channel, and application data flows from src through the peer back into
// dst.
//
// All connection state is confined to the run loop goroutine. The
// transmit callback is only invoked from there.
type Conn struct {
	streamID protocol.StreamID
	config   *Config

	transmit func(wire.Message)
	inbound  <-chan wire.Message
	src      io.Reader
	dst      io.Writer

	rttStats    *utils.RTTStats
	sentHandler ackhandler.SentSegmentHandler
	rcvdHandler ackhandler.ReceivedSegmentHandler
	congestion  congestion.SendAlgorithm
	pacer       *congestion.Pacer
	reorderer   *reorderer
	timer       *connectionTimer

	nextSeqno protocol.Seqno
	// lostQueue holds the seqnos of segments whose retransmission timeout
	// expired, in the order they are to be retransmitted. A segment in the
	// queue occupies no congestion window until it is retransmitted.
	lostQueue []protocol.Seqno
	lastLoss  time.Time

	// closing is set once the write side is closed. No new segments are
	// sent; the connection drains until everything in flight is acked.
	closing  bool
	outbound <-chan []byte

	idleDeadline time.Time

	closeOnce sync.Once
	closeChan chan struct{}

	retransCount atomic.Uint64

	lastTimerDeadline     time.Time
	lastCongestionState   logging.CongestionState
	congestionStateTraced bool

	tracer *logging.ConnectionTracer
	logger utils.Logger
}

// NewConn creates the engine for one substream. Segments the engine wants
// on the wire are passed to transmit; segments the multiplexer routed to
// this substream are read from inbound. Application data is read from src
// and fragmented into segments; data received from the peer is written to
// dst, in order and without gaps.
//
// The engine does nothing until Run is called.
func NewConn(
	streamID StreamID,
	conf *Config,
	transmit func(Message),
	inbound <-chan Message,
	src io.Reader,
	dst io.Writer,
) (*Conn, error) {
	if transmit == nil {
		return nil, errors.New("transmit callback must not be nil")
	}
	if inbound == nil {
		return nil, errors.New("inbound channel must not be nil")
	}
	if src == nil || dst == nil {
		return nil, errors.New("src and dst must not be nil")
	}
	if err := validateConfig(conf); err != nil {
		return nil, err
	}
	conf = populateConfig(conf)

	c := &Conn{
		streamID:  streamID,
		config:    conf,
		transmit:  transmit,
		inbound:   inbound,
		src:       src,
		dst:       dst,
		rttStats:  &utils.RTTStats{},
		reorderer: newReorderer(),
		timer:     newTimer(),
		closeChan: make(chan struct{}),
		tracer:    conf.Tracer,
		logger:    utils.DefaultLogger.WithPrefix(fmt.Sprintf("conn %d", streamID)),
	}
	c.sentHandler, c.rcvdHandler = ackhandler.NewAckHandler(c.rttStats, c.logger)
	c.congestion = congestion.NewSendAlgorithm(
		conf.CongestionControl,
		c.rttStats,
		conf.InitialCongestionWindow,
		conf.MaxCongestionWindow,
	)
	c.pacer = congestion.NewPacer(c.pacingRate)
	return c, nil
}

// StreamID returns the substream this engine serves.
func (c *Conn) StreamID() StreamID { return c.streamID }

// RetransmissionCount returns the number of segments retransmitted over
// the lifetime of the connection.
func (c *Conn) RetransmissionCount() uint64 { return c.retransCount.Load() }

// Close aborts the connection immediately: a reset is sent to the peer
// and queued segments are dropped. For a graceful shutdown, close the
// write side (src) instead and wait for Run to return.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.closeChan) })
	return nil
}

// Run services the connection until it terminates. It always returns a
// non-nil error: a DrainedError after a graceful drain, or the reason the
// connection died. Run must be called at most once.
func (c *Conn) Run() error {
	c.logger.Debugf("Starting connection (congestion control: %s)", c.config.CongestionControl)
	if c.tracer != nil && c.tracer.StartedConnection != nil {
		c.tracer.StartedConnection(c.streamID)
	}
	c.traceCongestionState(logging.CongestionStateSlowStart)
	err := c.run()
	if c.tracer != nil {
		if c.tracer.ClosedConnection != nil {
			c.tracer.ClosedConnection(err)
		}
		if c.tracer.Close != nil {
			c.tracer.Close()
		}
	}
	c.logger.Debugf("Connection closed: %s", err)
	return err
}

func (c *Conn) run() error {
	defer c.timer.Stop()

	done := make(chan struct{})
	defer close(done)
	outbound := make(chan []byte, 1)
	go c.pumpOutbound(outbound, done)
	c.outbound = outbound

	c.resetIdleDeadline(time.Now())

	for {
		// close immediately if requested
		select {
		case <-c.closeChan:
			return c.closeLocal()
		default:
		}

		now := time.Now()
		if !c.idleDeadline.After(now) {
			c.traceTimerExpired(logging.TimerTypeIdle)
			return &qerr.IdleTimeoutError{}
		}

		// Retransmissions take priority over everything else, but only
		// while they fit into the congestion window: a segment marked
		// lost stays queued until there is room for it.
		if len(c.lostQueue) > 0 && c.sentHandler.Inflight() <= c.congestion.Cwnd() {
			c.retransmitNext(now)
			c.resetIdleDeadline(now)
			continue
		}
		if c.rcvdHandler.ShouldForceAck() {
			c.sendAck()
			c.resetIdleDeadline(now)
			continue
		}
		if alarm := c.rcvdHandler.AckAlarm(); !alarm.IsZero() && !alarm.After(now) {
			c.traceTimerExpired(logging.TimerTypeAck)
			c.sendAck()
			c.resetIdleDeadline(now)
			continue
		}
		if sn, deadline, ok := c.sentHandler.FirstRTO(); ok && !deadline.After(now) {
			c.traceTimerExpired(logging.TimerTypeRTO)
			c.onRTO(sn, now)
			c.resetIdleDeadline(now)
			continue
		}

		outboundCh, pacingDeadline := c.outboundState(now)
		c.maybeResetTimer(pacingDeadline)

		select {
		case <-c.closeChan:
			return c.closeLocal()
		case msg, ok := <-c.inbound:
			if !ok {
				// the multiplexer went away
				return net.ErrClosed
			}
			now = time.Now()
			if err := c.handleMessage(msg, now); err != nil {
				return err
			}
			c.resetIdleDeadline(now)
		case data, ok := <-outboundCh:
			now = time.Now()
			if !ok {
				c.closing = true
				c.outbound = nil
				c.logger.Debugf("Write side closed, draining %d unacked segments", c.sentHandler.Unacked())
				if c.drained() {
					return &qerr.DrainedError{}
				}
			} else {
				c.sendNewSegment(data, now)
			}
			c.resetIdleDeadline(now)
		case <-c.timer.Chan():
			c.timer.SetRead()
			// deadlines are dispatched at the top of the loop
		}
	}
}

// pumpOutbound reads application data from src and chops it into segment
// sized chunks. The channel is closed when src is exhausted, which starts
// the graceful drain.
func (c *Conn) pumpOutbound(outbound chan<- []byte, done <-chan struct{}) {
	for {
		buf := make([]byte, protocol.MaxSegmentSize)
		n, err := c.src.Read(buf)
		if n > 0 {
			select {
			case outbound <- buf[:n]:
			case <-done:
				return
			}
		}
		if err != nil {
			close(outbound)
			return
		}
	}
}

// outboundState decides whether a new segment may be sent right now. It
// returns the channel to receive application data from, or the pacing
// deadline to wait for if sending is allowed but paced.
func (c *Conn) outboundState(now time.Time) (<-chan []byte, time.Time) {
	if c.closing || c.outbound == nil {
		return nil, time.Time{}
	}
	cwnd := c.congestion.Cwnd()
	if c.sentHandler.Inflight() > cwnd || c.sentHandler.Unacked() > cwnd {
		return nil, time.Time{}
	}
	if nextSend := c.pacer.TimeUntilSend(); nextSend.After(now) {
		return nil, nextSend
	}
	return c.outbound, time.Time{}
}

func (c *Conn) maybeResetTimer(pacingDeadline time.Time) {
	var ackAlarm, rtoDeadline time.Time
	ackAlarm = c.rcvdHandler.AckAlarm()
	if _, deadline, ok := c.sentHandler.FirstRTO(); ok {
		rtoDeadline = deadline
	}

	earliest, tt := c.idleDeadline, logging.TimerTypeIdle
	if !ackAlarm.IsZero() && ackAlarm.Before(earliest) {
		earliest, tt = ackAlarm, logging.TimerTypeAck
	}
	if !rtoDeadline.IsZero() && rtoDeadline.Before(earliest) {
		earliest, tt = rtoDeadline, logging.TimerTypeRTO
	}
	if !pacingDeadline.IsZero() && pacingDeadline.Before(earliest) {
		earliest, tt = pacingDeadline, logging.TimerTypePacing
	}
	if earliest != c.lastTimerDeadline {
		c.lastTimerDeadline = earliest
		if c.tracer != nil && c.tracer.SetTimer != nil {
			c.tracer.SetTimer(tt, earliest)
		}
	}

	c.timer.SetTimer(c.idleDeadline, ackAlarm, rtoDeadline, pacingDeadline)
}

func (c *Conn) handleMessage(msg wire.Message, now time.Time) error {
	switch msg.Kind {
	case wire.KindReset:
		c.logger.Debugf("Received RST")
		return &qerr.ResetError{Remote: true}
	case wire.KindDataAck:
		return c.handleDataAck(msg, now)
	case wire.KindData:
		return c.handleData(msg, now)
	default:
		c.logger.Debugf("Ignoring segment of unknown kind %d", uint8(msg.Kind))
		return nil
	}
}

func (c *Conn) handleDataAck(msg wire.Message, now time.Time) error {
	acked, err := wire.ParseAckList(msg.Payload)
	if err != nil {
		return &qerr.DecodeError{Cause: err}
	}
	if c.logger.Debug() {
		c.logger.Debugf("Received ACK for %d seqnos, cumulative %d", len(acked), msg.Seqno)
	}
	var newlyAcked bool
	for _, sn := range acked {
		c.lostQueue = slices.DeleteFunc(c.lostQueue, func(v protocol.Seqno) bool { return v == sn })
		if c.sentHandler.MarkAcked(sn, now) {
			c.congestion.OnAck(now)
			newlyAcked = true
		}
	}
	c.sentHandler.MarkAckedBelow(msg.Seqno)
	if c.tracer != nil && c.tracer.ReceivedAck != nil {
		c.tracer.ReceivedAck(acked, msg.Seqno)
	}
	if newlyAcked {
		if c.congestion.InSlowStart() {
			c.traceCongestionState(logging.CongestionStateSlowStart)
		} else {
			c.traceCongestionState(logging.CongestionStateCongestionAvoidance)
		}
	}
	c.traceMetrics()
	if c.drained() {
		return &qerr.DrainedError{}
	}
	return nil
}

func (c *Conn) handleData(msg wire.Message, now time.Time) error {
	c.rcvdHandler.ReceivedSegment(now)
	isNew := c.reorderer.Insert(msg.Seqno, msg.Payload)
	if isNew {
		c.rcvdHandler.QueueAck(msg.Seqno)
	}
	if c.tracer != nil && c.tracer.ReceivedSegment != nil {
		c.tracer.ReceivedSegment(msg.Seqno, protocol.ByteCount(len(msg.Payload)), !isNew)
	}
	for _, payload := range c.reorderer.Drain() {
		if _, err := c.dst.Write(payload); err != nil {
			return &qerr.DeliveryError{Cause: err}
		}
	}
	return nil
}

func (c *Conn) sendAck() {
	acked := c.rcvdHandler.DequeueAcks()
	payload := wire.AppendAckList(nil, acked)
	if len(payload) > 1000 {
		c.logger.Infof("Encoded ack list is %d bytes", len(payload))
	}
	cumulative := c.reorderer.LowestUnseen()
	c.transmit(wire.Message{
		Kind:     wire.KindDataAck,
		StreamID: c.streamID,
		Seqno:    cumulative,
		Payload:  payload,
	})
	if c.tracer != nil && c.tracer.SentAck != nil {
		c.tracer.SentAck(acked, cumulative)
	}
}

func (c *Conn) sendNewSegment(data []byte, now time.Time) {
	sn := c.nextSeqno
	c.nextSeqno++
	msg := wire.Message{
		Kind:     wire.KindData,
		StreamID: c.streamID,
		Seqno:    sn,
		Payload:  data,
	}
	c.sentHandler.SentSegment(msg, now)
	c.pacer.SentSegment(now)
	c.transmit(msg)
	if c.tracer != nil && c.tracer.SentSegment != nil {
		c.tracer.SentSegment(sn, protocol.ByteCount(len(data)), false)
	}
	c.traceMetrics()
}

func (c *Conn) retransmitNext(now time.Time) {
	sn := c.lostQueue[0]
	c.lostQueue = c.lostQueue[1:]
	msg, ok := c.sentHandler.Retransmit(sn, now)
	if !ok {
		// the segment was acked after it was marked lost
		return
	}
	c.retransCount.Add(1)
	if c.logger.Debug() {
		c.logger.Debugf("Retransmitting segment %d (inflight: %d, cwnd: %d, lost: %d)",
			sn, c.sentHandler.Inflight(), c.congestion.Cwnd(), c.sentHandler.LostCount())
	}
	c.transmit(msg)
	if c.tracer != nil && c.tracer.SentSegment != nil {
		c.tracer.SentSegment(sn, protocol.ByteCount(len(msg.Payload)), true)
	}
}

func (c *Conn) onRTO(sn protocol.Seqno, now time.Time) {
	if c.logger.Debug() {
		c.logger.Debugf("Marking segment %d as lost (unacked: %d, inflight: %d, cwnd: %d, lost: %d)",
			sn, c.sentHandler.Unacked(), c.sentHandler.Inflight(), c.congestion.Cwnd(), c.sentHandler.LostCount())
	}
	// Repeated timeouts within one RTO belong to the same congestion
	// event: the controller is only punished once per event.
	if c.lastLoss.IsZero() || now.Sub(c.lastLoss) > c.rttStats.RTO() {
		c.congestion.OnLoss(now)
		c.traceCongestionState(logging.CongestionStateRecovery)
		c.traceMetrics()
	}
	c.lastLoss = now
	c.sentHandler.MarkLost(sn)
	c.lostQueue = append(c.lostQueue, sn)
	if c.tracer != nil && c.tracer.LostSegment != nil {
		c.tracer.LostSegment(sn)
	}
}

func (c *Conn) closeLocal() error {
	c.logger.Debugf("Closing connection locally")
	c.transmit(wire.Message{Kind: wire.KindReset, StreamID: c.streamID})
	return &qerr.ResetError{}
}

// pacingRate is the transmission rate for new segments, in segments per
// second: one congestion window per smallest observed RTT.
func (c *Conn) pacingRate() float64 {
	minRTT := c.rttStats.MinRTT()
	if minRTT <= 0 {
		minRTT = protocol.DefaultInitialRTT
	}
	return float64(c.congestion.Cwnd()) / minRTT.Seconds()
}

func (c *Conn) drained() bool {
	return c.closing && c.sentHandler.Unacked() == 0
}

func (c *Conn) resetIdleDeadline(now time.Time) {
	c.idleDeadline = now.Add(c.config.MaxIdleTimeout)
}

func (c *Conn) traceMetrics() {
	if c.tracer != nil && c.tracer.UpdatedMetrics != nil {
		c.tracer.UpdatedMetrics(c.rttStats, c.congestion.Cwnd(), c.sentHandler.Inflight())
	}
}

func (c *Conn) traceCongestionState(state logging.CongestionState) {
	if c.congestionStateTraced && state == c.lastCongestionState {
		return
	}
	c.congestionStateTraced = true
	c.lastCongestionState = state
	if c.tracer != nil && c.tracer.UpdatedCongestionState != nil {
		c.tracer.UpdatedCongestionState(state)
	}
}

func (c *Conn) traceTimerExpired(tt logging.TimerType) {
	if c.tracer != nil && c.tracer.TimerExpired != nil {
		c.tracer.TimerExpired(tt)
	}
}
