package servos

import (
	"fmt"
	"sync"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/ui"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

const (
	// DefaultPca9685Frequency is the refresh rate analog servos expect.
	DefaultPca9685Frequency = 50

	pca9685ChannelCount = 16
)

// Pca9685Output drives servos through a PCA9685 16-channel PWM
// controller on an I2C bus.
type Pca9685Output struct {
	Config   configuration.Pca9685OutputConfig
	channels int

	mu  sync.Mutex
	bus i2c.BusCloser
	dev *pca9685.Dev
}

func (o *Pca9685Output) GetId() string {
	return "pca9685"
}

func (o *Pca9685Output) Init() error {
	if o.channels > pca9685ChannelCount {
		return fmt.Errorf("pca9685 provides %d channels, %d requested", pca9685ChannelCount, o.channels)
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	bus, err := i2creg.Open(o.Config.Bus)
	if err != nil {
		return err
	}

	address := uint16(o.Config.Address)
	if address == 0 {
		address = pca9685.I2CAddr
	}

	dev, err := pca9685.NewI2C(bus, address)
	if err != nil {
		_ = bus.Close()
		return err
	}

	frequency := o.Config.Frequency
	if frequency == 0 {
		frequency = DefaultPca9685Frequency
	}
	if err = dev.SetPwmFreq(physic.Frequency(frequency) * physic.Hertz); err != nil {
		_ = bus.Close()
		return err
	}

	ui.Debug("Initialized pca9685 at %s on bus '%s'", configuration.HexAddress(address), bus.String())

	o.mu.Lock()
	defer o.mu.Unlock()
	o.bus = bus
	o.dev = dev
	return nil
}

func (o *Pca9685Output) SetPulse(channel int, pulse int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.dev == nil {
		return fmt.Errorf("pca9685 is not initialized")
	}
	if channel < 0 || channel >= o.channels {
		return fmt.Errorf("channel %d is out of range", channel)
	}

	return o.dev.SetPwm(channel, 0, gpio.Duty(pulse))
}

func (o *Pca9685Output) Channels() int {
	return o.channels
}

func (o *Pca9685Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.bus == nil {
		return nil
	}
	err := o.bus.Close()
	o.bus = nil
	o.dev = nil
	return err
}
