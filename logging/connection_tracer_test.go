package logging_test

import (
	"errors"
	"testing"

	"github.com/relmux-go/relmux-go/logging"

	"github.com/stretchr/testify/require"
)

func TestConnectionTracerMultiplexing(t *testing.T) {
	var err1, err2 error
	t1 := &logging.ConnectionTracer{ClosedConnection: func(e error) { err1 = e }}
	t2 := &logging.ConnectionTracer{ClosedConnection: func(e error) { err2 = e }}
	tracer := logging.NewMultiplexedConnectionTracer(t1, t2)

	e := errors.New("test err")
	tracer.ClosedConnection(e)
	require.Equal(t, e, err1)
	require.Equal(t, e, err2)
}

func TestConnectionTracerMultiplexingSkipsNilCallbacks(t *testing.T) {
	var sn1, sn2 logging.Seqno
	t1 := &logging.ConnectionTracer{LostSegment: func(sn logging.Seqno) { sn1 = sn }}
	t2 := &logging.ConnectionTracer{SentSegment: func(sn logging.Seqno, _ logging.ByteCount, _ bool) { sn2 = sn }}
	tracer := logging.NewMultiplexedConnectionTracer(t1, t2)

	tracer.LostSegment(42)
	tracer.SentSegment(7, 1100, false)
	require.Equal(t, logging.Seqno(42), sn1)
	require.Equal(t, logging.Seqno(7), sn2)
}

func TestConnectionTracerMultiplexingClose(t *testing.T) {
	var closed1, closed2 bool
	t1 := &logging.ConnectionTracer{Close: func() { closed1 = true }}
	t2 := &logging.ConnectionTracer{Close: func() { closed2 = true }}
	tracer := logging.NewMultiplexedConnectionTracer(t1, t2)

	tracer.Close()
	require.True(t, closed1)
	require.True(t, closed2)
}

func TestConnectionTracerMultiplexingSingleTracer(t *testing.T) {
	tr := &logging.ConnectionTracer{}
	require.Same(t, tr, logging.NewMultiplexedConnectionTracer(tr))
	require.Nil(t, logging.NewMultiplexedConnectionTracer())
}
