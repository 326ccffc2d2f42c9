// A demo that pushes random data through a pair of reliable-delivery
// engines connected by a lossy in-process link.
//
// Set QLOGDIR to write a qlog trace of the sending side.
package main

import (
	"bytes"
	crand "crypto/rand"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	mrand "math/rand/v2"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	relmux "github.com/relmux-go/relmux-go"
	"github.com/relmux-go/relmux-go/logging"
	"github.com/relmux-go/relmux-go/metrics"
	"github.com/relmux-go/relmux-go/qlog"
)

func forward(from <-chan relmux.Message, to chan<- relmux.Message, lossRate float64) {
	for m := range from {
		if mrand.Float64() < lossRate {
			continue
		}
		to <- m
	}
}

func newTracer(streamID relmux.StreamID, withQlog bool) *logging.ConnectionTracer {
	tracers := []*logging.ConnectionTracer{metrics.NewConnectionTracer()}
	if withQlog {
		if t := qlog.DefaultConnectionTracer(streamID); t != nil {
			tracers = append(tracers, t)
		}
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return logging.NewMultiplexedConnectionTracer(tracers...)
}

func main() {
	size := flag.Int("size", 4<<20, "number of bytes to transfer")
	loss := flag.Float64("loss", 0.05, "per-direction segment loss rate")
	cc := flag.String("cc", "cubic", "congestion controller (cubic or reno)")
	flag.Parse()

	alg, ok := relmux.ParseCongestionControlAlgorithm(*cc)
	if !ok {
		log.Fatalf("unknown congestion controller: %q", *cc)
	}

	data := make([]byte, *size)
	if _, err := crand.Read(data); err != nil {
		log.Fatal(err)
	}

	// The two engines serve the two ends of the same substream. The
	// forwarders in between play the part of the multiplexer and the
	// network.
	aToB := make(chan relmux.Message, 1024)
	bToA := make(chan relmux.Message, 1024)
	aInbound := make(chan relmux.Message, 1024)
	bInbound := make(chan relmux.Message, 1024)
	go forward(aToB, bInbound, *loss)
	go forward(bToA, aInbound, *loss)

	sender, err := relmux.NewConn(
		1,
		&relmux.Config{CongestionControl: alg, Tracer: newTracer(1, true)},
		func(m relmux.Message) { aToB <- m },
		aInbound,
		bytes.NewReader(data),
		io.Discard,
	)
	if err != nil {
		log.Fatal(err)
	}

	recvSrcReader, recvSrcWriter := io.Pipe()
	var received bytes.Buffer
	receiver, err := relmux.NewConn(
		1,
		&relmux.Config{CongestionControl: alg, Tracer: newTracer(1, false)},
		func(m relmux.Message) { bToA <- m },
		bInbound,
		recvSrcReader,
		&received,
	)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	senderDone := make(chan error, 1)
	receiverDone := make(chan error, 1)
	go func() { senderDone <- sender.Run() }()
	go func() { receiverDone <- receiver.Run() }()

	var drained *relmux.DrainedError
	if err := <-senderDone; !errors.As(err, &drained) {
		log.Fatalf("sender failed: %v", err)
	}
	// The sender only drains once every segment was acked, so the receiver
	// has the complete data and its write side can be closed.
	recvSrcWriter.Close()
	if err := <-receiverDone; !errors.As(err, &drained) {
		log.Fatalf("receiver failed: %v", err)
	}
	elapsed := time.Since(start)

	if !bytes.Equal(data, received.Bytes()) {
		log.Fatal("received data differs from sent data")
	}
	fmt.Printf("transferred %d bytes in %s (%.2f MB/s), %d retransmissions\n",
		*size, elapsed, float64(*size)/1e6/elapsed.Seconds(), sender.RetransmissionCount())

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		log.Fatal(err)
	}
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "relmux_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			c := m.GetCounter()
			if c == nil {
				continue
			}
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Printf("%s{%s} %v\n", mf.GetName(), strings.Join(labels, ","), c.GetValue())
		}
	}
}
