package qerr

import (
	"fmt"
	"net"
)

// A DrainedError is returned when the connection closed gracefully: the
// write side was closed and every outstanding segment acked.
type DrainedError struct{}

func (e *DrainedError) Error() string { return "connection drained" }

func (e *DrainedError) Is(target error) bool {
	_, ok := target.(*DrainedError)
	return ok || target == net.ErrClosed
}

// A ResetError is returned when the connection was torn down by a reset
// segment.
type ResetError struct {
	// Remote says if the reset was received from the peer, as opposed to
	// being initiated locally.
	Remote bool
}

func (e *ResetError) Error() string {
	if e.Remote {
		return "connection reset (remote)"
	}
	return "connection reset (local)"
}

func (e *ResetError) Is(target error) bool {
	_, ok := target.(*ResetError)
	return ok || target == net.ErrClosed
}

// An IdleTimeoutError is returned when nothing at all happened on the
// connection for the idle interval.
type IdleTimeoutError struct{}

var _ net.Error = &IdleTimeoutError{}

func (e *IdleTimeoutError) Error() string   { return "timeout: no recent network activity" }
func (e *IdleTimeoutError) Timeout() bool   { return true }
func (e *IdleTimeoutError) Temporary() bool { return false }

func (e *IdleTimeoutError) Is(target error) bool {
	_, ok := target.(*IdleTimeoutError)
	return ok || target == net.ErrClosed
}

// A DeliveryError is returned when received data could not be handed to
// the receiver.
type DeliveryError struct {
	Cause error
}

func (e *DeliveryError) Error() string { return fmt.Sprintf("delivery failed: %s", e.Cause) }
func (e *DeliveryError) Unwrap() error { return e.Cause }

func (e *DeliveryError) Is(target error) bool {
	_, ok := target.(*DeliveryError)
	return ok || target == net.ErrClosed
}

// A DecodeError is returned when a received segment could not be decoded.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("segment decoding failed: %s", e.Cause) }
func (e *DecodeError) Unwrap() error { return e.Cause }

func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok || target == net.ErrClosed
}
