package main

import (
	crand "crypto/rand"
	"log"
	mrand "math/rand/v2"

	"github.com/relmux-go/relmux-go/fuzzing/internal/helper"
	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/wire"
)

func getRandomData(l int) []byte {
	b := make([]byte, l)
	crand.Read(b)
	return b
}

func main() {
	for i := 0; i < 30; i++ {
		m := wire.Message{StreamID: protocol.StreamID(mrand.IntN(1 << 16))}
		switch mrand.IntN(3) {
		case 0:
			m.Kind = wire.KindData
			m.Seqno = protocol.Seqno(mrand.Uint64N(1 << 20))
			m.Payload = getRandomData(mrand.IntN(int(protocol.MaxSegmentSize) + 1))
		case 1:
			m.Kind = wire.KindDataAck
			m.Seqno = protocol.Seqno(mrand.Uint64N(1 << 20))
			sn := m.Seqno
			var seqnos []protocol.Seqno
			for range mrand.IntN(protocol.MaxAckListSize + 1) {
				sn += 1 + protocol.Seqno(mrand.Uint64N(16))
				seqnos = append(seqnos, sn)
			}
			m.Payload = wire.AppendAckList(nil, seqnos)
		case 2:
			m.Kind = wire.KindReset
		}
		data, err := m.Append(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err := helper.WriteCorpusFile("corpus", data); err != nil {
			log.Fatal(err)
		}
	}
}
