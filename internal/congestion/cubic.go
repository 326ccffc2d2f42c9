package congestion

import (
	"math"
	"time"
)

const (
	// cubicBeta is the multiplicative decrease factor applied to the
	// window on a congestion event.
	cubicBeta = 0.7
	// cubicC is the cubic scaling constant, in segments per second cubed.
	cubicC = 0.4
)

// cubic implements the window growth function from RFC 8312. All windows
// are measured in segments, not bytes.
type cubic struct {
	beta float64
	c    float64

	// epoch is the start of the current growth epoch. It is cleared on
	// loss and set again by the first ack afterwards.
	epoch             time.Time
	lastMaxWindow     float64
	originPointWindow float64
	// timeToOriginPoint is the number of seconds until the window regrows
	// to originPointWindow.
	timeToOriginPoint float64
	// estimatedRenoWindow is the window a Reno sender would have, the
	// lower bound of the TCP-friendly region.
	estimatedRenoWindow float64
}

func newCubic(beta, c float64) *cubic {
	return &cubic{beta: beta, c: c}
}

// WindowAfterLoss returns the reduced window after a congestion event.
func (c *cubic) WindowAfterLoss(cwnd int) int {
	w := float64(cwnd)
	if w < c.lastMaxWindow {
		// fast convergence: when losses repeat below the previous
		// maximum, release capacity to competing flows faster
		c.lastMaxWindow = w * (1 + c.beta) / 2
	} else {
		c.lastMaxWindow = w
	}
	c.epoch = time.Time{}
	return int(w * c.beta)
}

// WindowAfterAck returns the window to use after a segment was newly
// acked. delayMin is the connection's minimum RTT. Growth is limited to
// one segment per ack, keeping the window ack-clocked.
func (c *cubic) WindowAfterAck(now time.Time, cwnd int, delayMin time.Duration) int {
	w := float64(cwnd)
	if c.epoch.IsZero() {
		c.epoch = now
		c.estimatedRenoWindow = w
		if w < c.lastMaxWindow {
			c.timeToOriginPoint = math.Cbrt((c.lastMaxWindow - w) / c.c)
			c.originPointWindow = c.lastMaxWindow
		} else {
			c.timeToOriginPoint = 0
			c.originPointWindow = w
		}
	}
	t := now.Add(delayMin).Sub(c.epoch).Seconds()
	dt := t - c.timeToOriginPoint
	target := c.originPointWindow + c.c*dt*dt*dt

	alpha := 3 * (1 - c.beta) / (1 + c.beta)
	c.estimatedRenoWindow += alpha / c.estimatedRenoWindow
	if target < c.estimatedRenoWindow {
		target = c.estimatedRenoWindow
	}

	if target < w {
		target = w
	} else if target > w+1 {
		target = w + 1
	}
	return int(target)
}
