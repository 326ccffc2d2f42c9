package metrics

import (
	"errors"

	"github.com/relmux-go/relmux-go/internal/qerr"
)

func closeReason(e error) string {
	var (
		drainedErr     *qerr.DrainedError
		resetErr       *qerr.ResetError
		idleTimeoutErr *qerr.IdleTimeoutError
		deliveryErr    *qerr.DeliveryError
		decodeErr      *qerr.DecodeError
	)
	switch {
	case errors.As(e, &drainedErr):
		return "graceful_drain"
	case errors.As(e, &resetErr):
		if resetErr.Remote {
			return "reset_remote"
		}
		return "reset_local"
	case errors.As(e, &idleTimeoutErr):
		return "idle_timeout"
	case errors.As(e, &deliveryErr):
		return "delivery_failure"
	case errors.As(e, &decodeErr):
		return "decode_failure"
	default:
		return "error"
	}
}
