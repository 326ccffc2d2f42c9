package relmux

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/relmux-go/relmux-go/internal/wire"

	"github.com/stretchr/testify/require"
)

// timing-sensitive tests set short timers and make assertions when the run
// loop reacts; on the CIs, the timing is a lot less precise, so scale every
// duration by this factor
func scaleDuration(d time.Duration) time.Duration {
	scaleFactor := 1
	if f, err := strconv.Atoi(os.Getenv("TIMESCALE_FACTOR")); err == nil { // parsing "" errors, so this works fine if the env is not set
		scaleFactor = f
	}
	if scaleFactor == 0 {
		panic("TIMESCALE_FACTOR is 0")
	}
	return time.Duration(scaleFactor) * d
}

// a safeBuffer collects everything written to it. It can be read while the
// run loop is still writing.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *safeBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Bytes()
}

// A connTestEnv wires a Conn to in-memory endpoints: transmitted messages
// are captured on a channel, inbound messages are injected by the test, and
// application data flows through an io.Pipe into a buffer.
type connTestEnv struct {
	conn      *Conn
	transmit  chan wire.Message
	inbound   chan wire.Message
	srcWriter *io.PipeWriter
	dst       *safeBuffer
	errChan   chan error
}

const testStreamID StreamID = 42

func newTestConn(t *testing.T, conf *Config) *connTestEnv {
	t.Helper()
	env := &connTestEnv{
		transmit: make(chan wire.Message, 64),
		inbound:  make(chan wire.Message, 64),
		dst:      &safeBuffer{},
		errChan:  make(chan error, 1),
	}
	srcReader, srcWriter := io.Pipe()
	env.srcWriter = srcWriter
	conn, err := NewConn(
		testStreamID,
		conf,
		func(msg wire.Message) { env.transmit <- msg },
		env.inbound,
		srcReader,
		env.dst,
	)
	require.NoError(t, err)
	env.conn = conn
	t.Cleanup(func() {
		srcWriter.Close()
		conn.Close()
	})
	return env
}

// startTestConn additionally runs the connection's event loop. The error
// Run returns is delivered on errChan.
func startTestConn(t *testing.T, conf *Config) *connTestEnv {
	t.Helper()
	env := newTestConn(t, conf)
	go func() { env.errChan <- env.conn.Run() }()
	return env
}

func (e *connTestEnv) expectMessage(t *testing.T, timeout time.Duration) wire.Message {
	t.Helper()
	select {
	case msg := <-e.transmit:
		return msg
	case <-time.After(timeout):
		t.Fatal("timeout waiting for a transmitted message")
		return wire.Message{}
	}
}

func (e *connTestEnv) waitDone(t *testing.T, timeout time.Duration) error {
	t.Helper()
	select {
	case err := <-e.errChan:
		return err
	case <-time.After(timeout):
		t.Fatal("timeout waiting for the run loop to exit")
		return nil
	}
}

// sendData injects a data segment, as if it had arrived from the wire.
func (e *connTestEnv) sendData(sn Seqno, payload string) {
	e.inbound <- wire.Message{Kind: wire.KindData, StreamID: testStreamID, Seqno: sn, Payload: []byte(payload)}
}

// sendAck injects a DataAck selectively acking the given seqnos, with the
// given cumulative boundary.
func (e *connTestEnv) sendAck(cumulative Seqno, seqnos ...Seqno) {
	e.inbound <- wire.Message{
		Kind:     wire.KindDataAck,
		StreamID: testStreamID,
		Seqno:    cumulative,
		Payload:  wire.AppendAckList(nil, seqnos),
	}
}
