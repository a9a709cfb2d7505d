package servos

import (
	"fmt"

	"github.com/markusressel/fin2go/internal/configuration"
)

// PwmOutput drives the servo pulse outputs. Channels are numbered
// [0, Channels()); the caller decides which channel belongs to which
// fin ray.
type PwmOutput interface {
	GetId() string

	// Init prepares the underlying device for writes.
	Init() error

	// SetPulse commands the pulse width (in PWM counts) of a single channel.
	SetPulse(channel int, pulse int) error

	// Channels returns the number of usable output channels.
	Channels() int

	Close() error
}

func NewPwmOutput(config configuration.OutputConfig, channels int) (PwmOutput, error) {
	if config.Pca9685 != nil {
		return &Pca9685Output{
			Config:   *config.Pca9685,
			channels: channels,
		}, nil
	}

	if config.File != nil {
		return &FileOutput{
			Config:   *config.File,
			channels: channels,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdOutput{
			Config:   *config.Cmd,
			channels: channels,
		}, nil
	}

	return nil, fmt.Errorf("no matching output type in output configuration")
}
