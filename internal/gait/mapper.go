package gait

import (
	"math"
	"sync"

	"github.com/markusressel/fin2go/internal/servos"
	"github.com/markusressel/fin2go/internal/util"
	"github.com/markusressel/fin2go/internal/waveform"
)

type Side int

const (
	SidePort Side = iota
	SideStarboard
	SideBoth
)

func (s Side) String() string {
	switch s {
	case SidePort:
		return "port"
	case SideStarboard:
		return "starboard"
	case SideBoth:
		return "both"
	}
	return "unknown"
}

type MapperParams struct {
	RaysPerSide int
	// Mechanical neutral offsets in degrees, one per ray. Empty
	// slices mean all neutrals are zero.
	NeutralsPort      []float64
	NeutralsStarboard []float64
	// Pulse values corresponding to -90 and +90 degrees.
	MinPulse int
	MaxPulse int
}

// Mapper converts waveform angles into pulse widths on the output
// port. Every ray angle passes through neutral calibration and the
// rate limiter before it is mapped.
type Mapper struct {
	params   MapperParams
	registry *waveform.Registry
	limiter  *RateLimiter
	output   servos.PwmOutput

	mu         sync.Mutex
	lastPulses map[int]int
}

func NewMapper(params MapperParams, registry *waveform.Registry, limiter *RateLimiter, output servos.PwmOutput) *Mapper {
	if len(params.NeutralsPort) == 0 {
		params.NeutralsPort = make([]float64, params.RaysPerSide)
	}
	if len(params.NeutralsStarboard) == 0 {
		params.NeutralsStarboard = make([]float64, params.RaysPerSide)
	}

	return &Mapper{
		params:     params,
		registry:   registry,
		limiter:    limiter,
		output:     output,
		lastPulses: map[int]int{},
	}
}

// Apply drives one actuation cycle for the given side. SideBoth drives
// both banks independently from the same raw waveform angle.
//
// A failed write does not stop the cycle, the remaining rays are still
// driven and the first error is returned.
func (m *Mapper) Apply(amplitude float64, wavelength float64, phase float64, mode waveform.Mode, side Side) error {
	var firstErr error

	for ray := 0; ray < m.params.RaysPerSide; ray++ {
		rawAngle := m.registry.Angle(mode, amplitude, wavelength, phase, ray)

		if side == SidePort || side == SideBoth {
			if err := m.applyRay(SidePort, ray, rawAngle); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if side == SideStarboard || side == SideBoth {
			if err := m.applyRay(SideStarboard, ray, rawAngle); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (m *Mapper) applyRay(side Side, ray int, rawAngle float64) error {
	proposed := rawAngle + m.neutral(side, ray)
	bounded := m.limiter.Limit(side, ray, proposed)

	pulse := m.PulseForAngle(bounded, side)
	channel := m.Channel(side, ray)

	m.recordPulse(channel, pulse)
	return m.output.SetPulse(channel, pulse)
}

// PulseForAngle maps an angle in degrees linearly onto the configured
// pulse range, where -90 degrees hits MinPulse and +90 degrees hits
// MaxPulse. Starboard servos are mounted mirrored, their angle is
// negated before mapping. Angles beyond +-90 degrees are coerced, the
// result always lies within the pulse range.
func (m *Mapper) PulseForAngle(angle float64, side Side) int {
	if side == SideStarboard {
		angle = -angle
	}
	ratio := util.Ratio(util.Coerce(angle, -90, 90), -90, 90)
	pulse := float64(m.params.MinPulse) + ratio*float64(m.params.MaxPulse-m.params.MinPulse)
	return int(math.Round(pulse))
}

// Channel returns the output channel of a fin ray. Port rays occupy
// channels [0, raysPerSide), starboard rays the block above.
func (m *Mapper) Channel(side Side, ray int) int {
	if side == SideStarboard {
		return ray + m.params.RaysPerSide
	}
	return ray
}

// Neutral returns the configured neutral offset of a fin ray in degrees.
func (m *Mapper) Neutral(side Side, ray int) float64 {
	return m.neutral(side, ray)
}

func (m *Mapper) neutral(side Side, ray int) float64 {
	if side == SideStarboard {
		return m.params.NeutralsStarboard[ray]
	}
	return m.params.NeutralsPort[ray]
}

// RaysPerSide returns the number of fin rays on each bank.
func (m *Mapper) RaysPerSide() int {
	return m.params.RaysPerSide
}

// LastPulses returns a copy of the pulse widths commanded most
// recently, keyed by output channel.
func (m *Mapper) LastPulses() map[int]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	pulses := make(map[int]int, len(m.lastPulses))
	for channel, pulse := range m.lastPulses {
		pulses[channel] = pulse
	}
	return pulses
}

func (m *Mapper) recordPulse(channel int, pulse int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPulses[channel] = pulse
}
