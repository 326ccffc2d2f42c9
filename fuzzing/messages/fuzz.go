package messages

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/wire"
)

// Fuzz fuzzes the message codec.
//
//go:generate go run ./cmd/corpus.go
func Fuzz(data []byte) int {
	m, n, err := wire.ParseMessage(data)
	if err != nil {
		return 0
	}
	if n > len(data) {
		panic(fmt.Sprintf("consumed %d bytes from a %d byte input", n, len(data)))
	}

	b, err := m.Append(nil)
	if err != nil {
		panic(fmt.Sprintf("error writing message %#v: %s", m, err))
	}
	// The input may use non-minimal varints, so b can be shorter than n.
	if m.Length() != protocol.ByteCount(len(b)) {
		panic(fmt.Sprintf("inconsistent message length for %#v: expected %d, got %d", m, len(b), m.Length()))
	}
	m2, n2, err := wire.ParseMessage(b)
	if err != nil {
		panic(fmt.Sprintf("error parsing written message %#v: %s", m, err))
	}
	if n2 != len(b) {
		panic(fmt.Sprintf("message reparse consumed %d of %d bytes", n2, len(b)))
	}
	if m2.Kind != m.Kind || m2.StreamID != m.StreamID || m2.Seqno != m.Seqno || !bytes.Equal(m2.Payload, m.Payload) {
		panic(fmt.Sprintf("message roundtrip mismatch: %#v vs %#v", m, m2))
	}

	if m.Kind == wire.KindDataAck {
		seqnos, err := wire.ParseAckList(m.Payload)
		if err != nil {
			return 1
		}
		if !slices.IsSorted(seqnos) {
			panic(fmt.Sprintf("ack list not sorted: %v", seqnos))
		}
		reencoded := wire.AppendAckList(nil, seqnos)
		seqnos2, err := wire.ParseAckList(reencoded)
		if err != nil {
			panic(fmt.Sprintf("error parsing written ack list %v: %s", seqnos, err))
		}
		if !slices.Equal(seqnos, seqnos2) {
			panic(fmt.Sprintf("ack list roundtrip mismatch: %v vs %v", seqnos, seqnos2))
		}
	}
	return 1
}
