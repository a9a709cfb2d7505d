package gait

import (
	"math"

	"github.com/markusressel/fin2go/internal/util"
	"github.com/markusressel/fin2go/internal/waveform"
)

// Deadband is the magnitude below which surge and yaw are treated as
// zero, avoiding mode-thrashing around the stick center.
const Deadband = 0.05

// PhaseClock holds the wave phase time of both fins in milliseconds.
// Phase time only moves as commands demand it, it is not wall time.
type PhaseClock struct {
	Port      float64 `json:"port"`
	Starboard float64 `json:"starboard"`
}

type Params struct {
	// Largest advance of either phase clock per cycle (ms).
	MaxTimeIncrement float64
	// Wave period while swimming (ms).
	Wavelength float64
	// Wave period of the settle routine (ms).
	SettleWavelength float64
}

// Controller blends locomotion commands into the two phase clocks and
// drives both fin banks through the Mapper, once per cycle.
type Controller struct {
	params Params
	mapper *Mapper
}

func NewController(params Params, mapper *Mapper) *Controller {
	return &Controller{
		params: params,
		mapper: mapper,
	}
}

// Step advances the phase clocks according to cmd and drives both fin
// banks once. The returned clock must be fed into the next call.
//
// When surge and yaw are both within the deadband the command is pure
// sway: one fin paddles in flat mode while the other is parked with
// its clock reset. Everything else blends surge and yaw into both
// clocks and sway into the per-side amplitudes, in sine mode.
//
// The returned clock is valid even when the output port reported a
// write error.
func (c *Controller) Step(cmd Command, clock PhaseClock) (PhaseClock, waveform.Mode, error) {
	maxInc := c.params.MaxTimeIncrement

	var mode waveform.Mode
	ampPort := cmd.Amplitude
	ampStarboard := cmd.Amplitude

	if math.Abs(cmd.Surge) <= Deadband && math.Abs(cmd.Yaw) <= Deadband {
		mode = waveform.ModeFlat

		if cmd.Sway > 0 {
			clock.Port += c.clampTimeInc(cmd.Sway * maxInc)
			clock.Starboard = 0
		} else if cmd.Sway < 0 {
			clock.Starboard += c.clampTimeInc(cmd.Sway * maxInc)
			clock.Port = 0
		}
		// sway == 0: both clocks hold
	} else {
		mode = waveform.ModeSine

		incPort := cmd.Surge * maxInc
		incStarboard := cmd.Surge * maxInc

		if cmd.Yaw > 0 {
			incPort += cmd.Yaw * maxInc
			incStarboard -= cmd.Yaw * maxInc
		} else if cmd.Yaw < 0 {
			incPort -= cmd.Yaw * maxInc
			incStarboard += cmd.Yaw * maxInc
		}

		if cmd.Sway > 0 {
			ampStarboard = cmd.Amplitude * (1 - cmd.Sway)
		} else if cmd.Sway < 0 {
			ampPort = cmd.Amplitude * (1 - cmd.Sway)
		}

		clock.Port += c.clampTimeInc(incPort)
		clock.Starboard += c.clampTimeInc(incStarboard)
	}

	errPort := c.mapper.Apply(ampPort, c.params.Wavelength, clock.Port, mode, SidePort)
	errStarboard := c.mapper.Apply(ampStarboard, c.params.Wavelength, clock.Starboard, mode, SideStarboard)

	if errPort != nil {
		return clock, mode, errPort
	}
	return clock, mode, errStarboard
}

// ApplyNeutral drives both banks one cycle with zero amplitude, which
// lets the rate limiter walk every ray toward its neutral offset. The
// startup settle routine calls this repeatedly.
func (c *Controller) ApplyNeutral() error {
	return c.mapper.Apply(0, c.params.SettleWavelength, 0, waveform.ModeSine, SideBoth)
}

// clampTimeInc restricts a phase-clock increment to +-MaxTimeIncrement.
// The bound applies to the combined increment of all command axes.
func (c *Controller) clampTimeInc(timeInc float64) float64 {
	return util.Coerce(timeInc, -c.params.MaxTimeIncrement, c.params.MaxTimeIncrement)
}
