package congestion

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/utils"
)

// A SendAlgorithm performs congestion control for one connection.
// Implementations are not safe for concurrent use.
type SendAlgorithm interface {
	// OnAck is called when a sent segment is acked for the first time.
	// It is called at most once per seqno.
	OnAck(now time.Time)
	// OnLoss is called on a congestion event. It never grows the window.
	OnLoss(now time.Time)
	// Cwnd returns the congestion window, in segments. It is always at
	// least MinCongestionWindow.
	Cwnd() int
	// InSlowStart says if the sender is still in slow start.
	InSlowStart() bool
}

// NewSendAlgorithm creates the congestion controller selected by alg.
func NewSendAlgorithm(alg protocol.CongestionControlAlgorithm, rttStats *utils.RTTStats, initialCongestionWindow, maxCongestionWindow int) SendAlgorithm {
	switch alg {
	case protocol.CongestionReno:
		return newCubicSender(rttStats, true, initialCongestionWindow, maxCongestionWindow)
	default:
		return newCubicSender(rttStats, false, initialCongestionWindow, maxCongestionWindow)
	}
}
