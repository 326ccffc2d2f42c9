package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/relmux-go/relmux-go/internal/protocol"
)

// A MessageKind distinguishes the message types exchanged on a substream.
type MessageKind uint8

const (
	// KindData carries one payload segment.
	KindData MessageKind = 1 + iota
	// KindDataAck acknowledges received segments.
	KindDataAck
	// KindReset aborts the substream.
	KindReset
)

func (k MessageKind) String() string {
	switch k {
	case KindData:
		return "DATA"
	case KindDataAck:
		return "DATA_ACK"
	case KindReset:
		return "RESET"
	default:
		return fmt.Sprintf("unknown kind (%d)", uint8(k))
	}
}

// A Message is one unit exchanged between the reliable engine and the
// multiplexer.
//
// For Data messages, Seqno is the segment's sequence number and Payload
// holds the segment bytes. For DataAck messages, Seqno is the cumulative
// ack boundary (every seqno below it was received in full) and Payload
// holds the encoded list of selectively acked seqnos. Reset messages carry
// neither seqno nor payload.
type Message struct {
	Kind     MessageKind
	StreamID protocol.StreamID
	Seqno    protocol.Seqno
	Payload  []byte
}

// Append serializes the message and appends it to b.
func (m *Message) Append(b []byte) ([]byte, error) {
	switch m.Kind {
	case KindData, KindDataAck, KindReset:
	default:
		return nil, fmt.Errorf("invalid message kind: %d", uint8(m.Kind))
	}
	if protocol.ByteCount(len(m.Payload)) > protocol.MaxSegmentSize {
		return nil, fmt.Errorf("message payload too large: %d bytes", len(m.Payload))
	}
	b = append(b, uint8(m.Kind))
	b = binary.BigEndian.AppendUint16(b, uint16(m.StreamID))
	b = appendVarint(b, uint64(m.Seqno))
	b = appendVarint(b, uint64(len(m.Payload)))
	return append(b, m.Payload...), nil
}

// Length returns the number of bytes Append will write.
func (m *Message) Length() protocol.ByteCount {
	return 1 + 2 + varintLen(uint64(m.Seqno)) + varintLen(uint64(len(m.Payload))) +
		protocol.ByteCount(len(m.Payload))
}

// ParseMessage parses a single message from the beginning of b. It returns
// the message and the number of bytes consumed. The payload is copied, so
// the message stays valid after b is reused.
func ParseMessage(b []byte) (Message, int, error) {
	if len(b) < 3 {
		return Message{}, 0, io.ErrUnexpectedEOF
	}
	var m Message
	m.Kind = MessageKind(b[0])
	switch m.Kind {
	case KindData, KindDataAck, KindReset:
	default:
		return Message{}, 0, fmt.Errorf("invalid message kind: %d", b[0])
	}
	m.StreamID = protocol.StreamID(binary.BigEndian.Uint16(b[1:3]))
	n := 3
	seqno, l, err := parseVarint(b[n:])
	if err != nil {
		return Message{}, 0, err
	}
	m.Seqno = protocol.Seqno(seqno)
	n += l
	payloadLen, l, err := parseVarint(b[n:])
	if err != nil {
		return Message{}, 0, err
	}
	n += l
	if protocol.ByteCount(payloadLen) > protocol.MaxSegmentSize {
		return Message{}, 0, fmt.Errorf("message payload too large: %d bytes", payloadLen)
	}
	if uint64(len(b[n:])) < payloadLen {
		return Message{}, 0, io.ErrUnexpectedEOF
	}
	if payloadLen > 0 {
		m.Payload = make([]byte, payloadLen)
		copy(m.Payload, b[n:n+int(payloadLen)])
		n += int(payloadLen)
	}
	return m, n, nil
}
