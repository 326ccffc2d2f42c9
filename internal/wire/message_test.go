package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/relmux-go/relmux-go/internal/protocol"

	"github.com/stretchr/testify/require"
)

func TestMessageRoundtrip(t *testing.T) {
	for _, m := range []Message{
		{Kind: KindData, StreamID: 42, Seqno: 0, Payload: []byte("foobar")},
		{Kind: KindData, StreamID: 65535, Seqno: 1337, Payload: bytes.Repeat([]byte{'a'}, int(protocol.MaxSegmentSize))},
		{Kind: KindDataAck, StreamID: 7, Seqno: 100, Payload: AppendAckList(nil, []protocol.Seqno{100, 102, 105})},
		{Kind: KindReset, StreamID: 9},
	} {
		b, err := m.Append(nil)
		require.NoError(t, err)
		require.Equal(t, m.Length(), protocol.ByteCount(len(b)))

		parsed, n, err := ParseMessage(b)
		require.NoError(t, err)
		require.Equal(t, len(b), n)
		require.Equal(t, m.Kind, parsed.Kind)
		require.Equal(t, m.StreamID, parsed.StreamID)
		require.Equal(t, m.Seqno, parsed.Seqno)
		require.Equal(t, m.Payload, parsed.Payload)
	}
}

func TestMessageParsingConsumesOneMessage(t *testing.T) {
	m1 := Message{Kind: KindData, StreamID: 1, Seqno: 5, Payload: []byte("foo")}
	m2 := Message{Kind: KindData, StreamID: 1, Seqno: 6, Payload: []byte("bar")}
	b, err := m1.Append(nil)
	require.NoError(t, err)
	b, err = m2.Append(b)
	require.NoError(t, err)

	parsed1, n, err := ParseMessage(b)
	require.NoError(t, err)
	require.Equal(t, protocol.Seqno(5), parsed1.Seqno)
	parsed2, n2, err := ParseMessage(b[n:])
	require.NoError(t, err)
	require.Equal(t, protocol.Seqno(6), parsed2.Seqno)
	require.Equal(t, len(b), n+n2)
}

func TestMessageParsingCopiesPayload(t *testing.T) {
	m := Message{Kind: KindData, StreamID: 1, Seqno: 1, Payload: []byte("foobar")}
	b, err := m.Append(nil)
	require.NoError(t, err)
	parsed, _, err := ParseMessage(b)
	require.NoError(t, err)
	for i := range b {
		b[i] = 'x'
	}
	require.Equal(t, []byte("foobar"), parsed.Payload)
}

func TestMessageInvalidKind(t *testing.T) {
	m := Message{Kind: 42, StreamID: 1}
	_, err := m.Append(nil)
	require.ErrorContains(t, err, "invalid message kind")

	_, _, err = ParseMessage([]byte{0x2a, 0, 1, 0, 0})
	require.ErrorContains(t, err, "invalid message kind")
}

func TestMessagePayloadTooLarge(t *testing.T) {
	m := Message{
		Kind:    KindData,
		Payload: make([]byte, protocol.MaxSegmentSize+1),
	}
	_, err := m.Append(nil)
	require.ErrorContains(t, err, "payload too large")
}

func TestMessageParsingErrors(t *testing.T) {
	m := Message{Kind: KindData, StreamID: 3, Seqno: 1000, Payload: []byte("foobar")}
	b, err := m.Append(nil)
	require.NoError(t, err)
	// any truncation must be detected
	for i := range b {
		_, _, err := ParseMessage(b[:i])
		require.Error(t, err, "length %d", i)
	}
	_, _, err = ParseMessage(nil)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestMessageKindStringer(t *testing.T) {
	require.Equal(t, "DATA", KindData.String())
	require.Equal(t, "DATA_ACK", KindDataAck.String())
	require.Equal(t, "RESET", KindReset.String())
	require.Equal(t, "unknown kind (99)", MessageKind(99).String())
}
