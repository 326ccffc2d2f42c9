package congestion

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/protocol"
	"github.com/relmux-go/relmux-go/internal/utils"
)

// renoBeta is the multiplicative decrease factor in Reno mode.
const renoBeta = 0.5

type cubicSender struct {
	cubic    *cubic
	rttStats *utils.RTTStats
	reno     bool

	congestionWindow    int
	slowStartThreshold  int
	minCongestionWindow int
	maxCongestionWindow int

	// ackedSinceIncrease counts acks in Reno congestion avoidance: the
	// window grows by one segment per window of acks.
	ackedSinceIncrease int
}

var _ SendAlgorithm = &cubicSender{}

// newCubicSender makes a new sender, using CUBIC or Reno.
func newCubicSender(rttStats *utils.RTTStats, reno bool, initialCongestionWindow, maxCongestionWindow int) *cubicSender {
	return &cubicSender{
		cubic:               newCubic(cubicBeta, cubicC),
		rttStats:            rttStats,
		reno:                reno,
		congestionWindow:    initialCongestionWindow,
		slowStartThreshold:  maxCongestionWindow,
		minCongestionWindow: protocol.MinCongestionWindow,
		maxCongestionWindow: maxCongestionWindow,
	}
}

func (c *cubicSender) Cwnd() int { return c.congestionWindow }

func (c *cubicSender) InSlowStart() bool { return c.congestionWindow < c.slowStartThreshold }

func (c *cubicSender) OnAck(now time.Time) {
	if c.congestionWindow >= c.maxCongestionWindow {
		return
	}
	if c.InSlowStart() {
		c.congestionWindow++
		return
	}
	if c.reno {
		c.ackedSinceIncrease++
		if c.ackedSinceIncrease >= c.congestionWindow {
			c.congestionWindow++
			c.ackedSinceIncrease = 0
		}
		return
	}
	cwnd := c.cubic.WindowAfterAck(now, c.congestionWindow, c.rttStats.MinRTT())
	if cwnd > c.maxCongestionWindow {
		cwnd = c.maxCongestionWindow
	}
	c.congestionWindow = cwnd
}

func (c *cubicSender) OnLoss(time.Time) {
	var cwnd int
	if c.reno {
		cwnd = int(float64(c.congestionWindow) * renoBeta)
	} else {
		cwnd = c.cubic.WindowAfterLoss(c.congestionWindow)
	}
	if cwnd < c.minCongestionWindow {
		cwnd = c.minCongestionWindow
	}
	c.congestionWindow = cwnd
	c.slowStartThreshold = cwnd
	c.ackedSinceIncrease = 0
}
