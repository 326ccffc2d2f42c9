package protocol

// A Seqno is the sequence number of a data segment. Seqnos start at 0 and
// increase by one for every segment sent on a connection. They are never
// reused.
type Seqno uint64

// A StreamID identifies one virtual substream of the multiplexer.
type StreamID uint16

// A ByteCount in relmux
type ByteCount int64

// MaxSegmentSize is the maximum payload size of a Data segment.
const MaxSegmentSize ByteCount = 1100

// MaxAckListSize is the maximum number of seqnos carried in a single
// DataAck payload. It equals AckBatchSize: the sender flushes its pending
// acks before the set can grow any further.
const MaxAckListSize = AckBatchSize
