package relmux

import (
	"errors"
	"fmt"

	"github.com/relmux-go/relmux-go/internal/protocol"
)

func validateConfig(config *Config) error {
	if config == nil {
		return nil
	}
	switch config.CongestionControl {
	case 0, protocol.CongestionCubic, protocol.CongestionReno:
	default:
		return fmt.Errorf("unknown congestion control algorithm: %d", config.CongestionControl)
	}
	if config.InitialCongestionWindow < 0 {
		return errors.New("InitialCongestionWindow must not be negative")
	}
	if config.MaxCongestionWindow < 0 {
		return errors.New("MaxCongestionWindow must not be negative")
	}
	if config.MaxIdleTimeout < 0 {
		return errors.New("MaxIdleTimeout must not be negative")
	}
	return nil
}

// populateConfig populates fields in the Config with default values, if none are set.
func populateConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	cc := config.CongestionControl
	if cc == 0 {
		cc = protocol.CongestionCubic
	}
	initialWindow := config.InitialCongestionWindow
	if initialWindow == 0 {
		initialWindow = protocol.InitialCongestionWindow
	}
	if initialWindow < protocol.MinCongestionWindow {
		initialWindow = protocol.MinCongestionWindow
	}
	maxWindow := config.MaxCongestionWindow
	if maxWindow == 0 {
		maxWindow = protocol.DefaultMaxCongestionWindow
	}
	if maxWindow < initialWindow {
		maxWindow = initialWindow
	}
	idleTimeout := config.MaxIdleTimeout
	if idleTimeout == 0 {
		idleTimeout = protocol.DefaultIdleTimeout
	}
	return &Config{
		CongestionControl:       cc,
		InitialCongestionWindow: initialWindow,
		MaxCongestionWindow:     maxWindow,
		MaxIdleTimeout:          idleTimeout,
		Tracer:                  config.Tracer,
	}
}
