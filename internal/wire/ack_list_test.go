package wire

import (
	"io"
	"testing"

	"github.com/relmux-go/relmux-go/internal/protocol"

	"github.com/stretchr/testify/require"
)

func TestAckListRoundtrip(t *testing.T) {
	for _, seqnos := range [][]protocol.Seqno{
		{0},
		{42},
		{0, 1, 2, 3},
		{10, 100, 1000, 10000, 100000},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, // a full batch
	} {
		b := AppendAckList(nil, seqnos)
		parsed, err := ParseAckList(b)
		require.NoError(t, err)
		require.Equal(t, seqnos, parsed)
	}
}

func TestAckListEmpty(t *testing.T) {
	require.Empty(t, AppendAckList(nil, nil))
	parsed, err := ParseAckList(nil)
	require.NoError(t, err)
	require.Empty(t, parsed)
}

func TestAckListDeterministic(t *testing.T) {
	seqnos := []protocol.Seqno{3, 7, 19, 22}
	require.Equal(t, AppendAckList(nil, seqnos), AppendAckList(nil, seqnos))
}

func TestAckListCompact(t *testing.T) {
	// a full batch of adjacent seqnos takes one byte per entry
	seqnos := make([]protocol.Seqno, protocol.AckBatchSize)
	for i := range seqnos {
		seqnos[i] = 1000000 + protocol.Seqno(i)
	}
	b := AppendAckList(nil, seqnos)
	require.Len(t, b, 4+protocol.AckBatchSize-1)
}

func TestAckListRejectsUnsortedInput(t *testing.T) {
	require.Panics(t, func() { AppendAckList(nil, []protocol.Seqno{2, 1}) })
	require.Panics(t, func() { AppendAckList(nil, []protocol.Seqno{1, 1}) })
}

func TestAckListParsingRejectsZeroDelta(t *testing.T) {
	b := appendVarint(nil, 5)
	b = appendVarint(b, 0)
	_, err := ParseAckList(b)
	require.ErrorContains(t, err, "not strictly ascending")
}

func TestAckListParsingRejectsTooManyEntries(t *testing.T) {
	b := appendVarint(nil, 0)
	for i := 0; i < protocol.MaxAckListSize; i++ {
		b = appendVarint(b, 1)
	}
	_, err := ParseAckList(b)
	require.ErrorContains(t, err, "too long")
}

func TestAckListParsingRejectsTruncatedList(t *testing.T) {
	b := AppendAckList(nil, []protocol.Seqno{100000, 200000})
	_, err := ParseAckList(b[:len(b)-1])
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestAckListParsingRejectsOverflow(t *testing.T) {
	b := appendVarint(nil, maxVarInt8)
	for i := 0; i < 4; i++ {
		b = appendVarint(b, maxVarInt8)
	}
	_, err := ParseAckList(b)
	require.ErrorContains(t, err, "overflow")
}
