package relmux

import (
	"github.com/relmux-go/relmux-go/internal/qerr"
)

type (
	DrainedError     = qerr.DrainedError
	ResetError       = qerr.ResetError
	IdleTimeoutError = qerr.IdleTimeoutError
	DeliveryError    = qerr.DeliveryError
	DecodeError      = qerr.DecodeError
)
