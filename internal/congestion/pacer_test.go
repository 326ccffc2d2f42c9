package congestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPacerFirstSegmentSendsImmediately(t *testing.T) {
	p := NewPacer(func() float64 { return 1000 })
	require.True(t, p.TimeUntilSend().IsZero())
}

func TestPacerSpacesOutSegments(t *testing.T) {
	p := NewPacer(func() float64 { return 1000 })
	t0 := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)

	p.SentSegment(t0)
	require.Equal(t, t0.Add(time.Millisecond), p.TimeUntilSend())
	p.SentSegment(t0.Add(time.Millisecond))
	require.Equal(t, t0.Add(2*time.Millisecond), p.TimeUntilSend())
}

func TestPacerEnforcesMinimumRate(t *testing.T) {
	// 50 segments per second is below the floor of 200
	p := NewPacer(func() float64 { return 50 })
	t0 := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)

	p.SentSegment(t0)
	require.Equal(t, t0.Add(5*time.Millisecond), p.TimeUntilSend())
}

func TestPacerDoesNotAccumulateIdleCredit(t *testing.T) {
	p := NewPacer(func() float64 { return 1000 })
	t0 := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)

	p.SentSegment(t0)
	// a send long after the allowed time doesn't entitle the next one
	// to go out early
	t1 := t0.Add(10 * time.Second)
	p.SentSegment(t1)
	require.Equal(t, t1, p.TimeUntilSend())
	p.SentSegment(t1)
	require.Equal(t, t1.Add(time.Millisecond), p.TimeUntilSend())
}

func TestPacerSamplesRatePerSegment(t *testing.T) {
	rate := 1000.0
	p := NewPacer(func() float64 { return rate })
	t0 := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)

	p.SentSegment(t0)
	require.Equal(t, t0.Add(time.Millisecond), p.TimeUntilSend())

	rate = 500
	p.SentSegment(t0.Add(time.Millisecond))
	require.Equal(t, t0.Add(3*time.Millisecond), p.TimeUntilSend())
}
