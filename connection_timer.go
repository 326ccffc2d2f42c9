package relmux

import (
	"time"

	"github.com/relmux-go/relmux-go/internal/utils"
)

type connectionTimer struct {
	timer *utils.Timer
}

func newTimer() *connectionTimer {
	return &connectionTimer{timer: utils.NewTimer()}
}

func (t *connectionTimer) SetRead() {
	t.timer.SetRead()
}

func (t *connectionTimer) Chan() <-chan time.Time {
	return t.timer.Chan()
}

// SetTimer resets the timer to the earliest of the given deadlines. The
// idle deadline is always set; the other deadlines may be zero.
func (t *connectionTimer) SetTimer(idle, ackAlarm, rto, pacing time.Time) {
	deadline := idle
	if !ackAlarm.IsZero() && ackAlarm.Before(deadline) {
		deadline = ackAlarm
	}
	if !rto.IsZero() && rto.Before(deadline) {
		deadline = rto
	}
	if !pacing.IsZero() && pacing.Before(deadline) {
		deadline = pacing
	}
	t.timer.Reset(deadline)
}

func (t *connectionTimer) Stop() {
	t.timer.Stop()
}
