package wire

import (
	"errors"

	"github.com/relmux-go/relmux-go/internal/protocol"
)

// Ack lists are the payload of DataAck messages: the seqnos being
// selectively acknowledged, in strictly ascending order. The first seqno
// is encoded as is, every following one as the (positive) delta to its
// predecessor. The encoding is deterministic: equal lists produce equal
// bytes.

// AppendAckList appends the encoding of seqnos to b. The seqnos must be
// strictly ascending.
func AppendAckList(b []byte, seqnos []protocol.Seqno) []byte {
	if len(seqnos) == 0 {
		return b
	}
	b = appendVarint(b, uint64(seqnos[0]))
	prev := seqnos[0]
	for _, sn := range seqnos[1:] {
		if sn <= prev {
			panic("ack list not strictly ascending")
		}
		b = appendVarint(b, uint64(sn-prev))
		prev = sn
	}
	return b
}

// ParseAckList decodes an ack list. It rejects lists that are not strictly
// ascending, truncated, or longer than MaxAckListSize entries.
func ParseAckList(b []byte) ([]protocol.Seqno, error) {
	if len(b) == 0 {
		return nil, nil
	}
	first, n, err := parseVarint(b)
	if err != nil {
		return nil, err
	}
	b = b[n:]
	seqnos := make([]protocol.Seqno, 1, protocol.MaxAckListSize)
	seqnos[0] = protocol.Seqno(first)
	for len(b) > 0 {
		if len(seqnos) == protocol.MaxAckListSize {
			return nil, errors.New("ack list too long")
		}
		delta, n, err := parseVarint(b)
		if err != nil {
			return nil, err
		}
		if delta == 0 {
			return nil, errors.New("ack list not strictly ascending")
		}
		b = b[n:]
		sn := seqnos[len(seqnos)-1] + protocol.Seqno(delta)
		if sn < seqnos[len(seqnos)-1] {
			return nil, errors.New("ack list seqno overflow")
		}
		seqnos = append(seqnos, sn)
	}
	return seqnos, nil
}
