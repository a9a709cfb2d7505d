package gait

import (
	"math"
	"testing"

	"github.com/markusressel/fin2go/internal/waveform"
	"github.com/stretchr/testify/assert"
)

const testMaxTimeIncrement = 20.0

func createController(output *MockPwmOutput, neutralsPort []float64, neutralsStarboard []float64, maxAngleDelta float64) (*Controller, *RateLimiter) {
	mapper, limiter := createMapper(output, neutralsPort, neutralsStarboard, maxAngleDelta)
	params := Params{
		MaxTimeIncrement: testMaxTimeIncrement,
		Wavelength:       testWavelength,
		SettleWavelength: 240.0,
	}
	return NewController(params, mapper), limiter
}

func TestController_Step_PureSwayEngagesPortFin(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, _ := createController(output, nil, nil, 5.0)
	command := Command{Sway: 0.5, Amplitude: 1}

	// WHEN
	clock, mode, err := controller.Step(command, PhaseClock{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, waveform.ModeFlat, mode)
	assert.Equal(t, 10.0, clock.Port)
	assert.Equal(t, 0.0, clock.Starboard)
}

func TestController_Step_PureSwayNegativeParksPortClock(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, _ := createController(output, nil, nil, 5.0)
	command := Command{Sway: -0.5, Amplitude: 1}

	// WHEN
	clock, mode, err := controller.Step(command, PhaseClock{Port: 37, Starboard: 5})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, waveform.ModeFlat, mode)
	assert.Equal(t, 0.0, clock.Port)
	assert.Equal(t, -5.0, clock.Starboard)
}

func TestController_Step_ZeroSwayHoldsBothClocks(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, _ := createController(output, nil, nil, 5.0)
	// surge and yaw sit within the deadband
	command := Command{Surge: 0.02, Yaw: -0.04, Amplitude: 1}

	// WHEN
	clock, mode, err := controller.Step(command, PhaseClock{Port: 12, Starboard: 34})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, waveform.ModeFlat, mode)
	assert.Equal(t, 12.0, clock.Port)
	assert.Equal(t, 34.0, clock.Starboard)
	// the fins are still driven at the held phase
	assert.Len(t, output.Pulses, 2*testRaysPerSide)
}

func TestController_Step_AllZeroCommandFreezesAtZero(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, limiter := createController(output, nil, nil, 5.0)

	// WHEN
	clock, mode, err := controller.Step(Command{}, PhaseClock{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, waveform.ModeFlat, mode)
	assert.Equal(t, PhaseClock{}, clock)
	for ray := 0; ray < testRaysPerSide; ray++ {
		assert.Equal(t, 0.0, limiter.Last(SidePort, ray))
		assert.Equal(t, 0.0, limiter.Last(SideStarboard, ray))
	}
}

func TestController_Step_StraightSwim(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, limiter := createController(output, nil, nil, 1000.0)
	command := Command{Surge: 1, Amplitude: 1}

	// WHEN
	clock, mode, err := controller.Step(command, PhaseClock{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, waveform.ModeSine, mode)
	assert.Equal(t, 20.0, clock.Port)
	assert.Equal(t, 20.0, clock.Starboard)

	// equal amplitudes and phases produce mirrored motion, so the
	// pulses of a ray pair always sum to MinPulse + MaxPulse
	for ray := 0; ray < testRaysPerSide; ray++ {
		assert.Equal(t, limiter.Last(SidePort, ray), limiter.Last(SideStarboard, ray))
		pulseSum := output.Pulses[ray] + output.Pulses[ray+testRaysPerSide]
		assert.InDelta(t, testMinPulse+testMaxPulse, pulseSum, 1)
	}
}

func TestController_Step_SurgeWithPositiveYaw(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, _ := createController(output, nil, nil, 5.0)
	command := Command{Surge: 0.5, Yaw: 0.5, Amplitude: 1}

	// WHEN
	clock, mode, err := controller.Step(command, PhaseClock{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, waveform.ModeSine, mode)
	assert.Greater(t, clock.Port, clock.Starboard)
	assert.Equal(t, 20.0, clock.Port)
	assert.Equal(t, 0.0, clock.Starboard)
}

func TestController_Step_SurgeWithNegativeYaw(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, _ := createController(output, nil, nil, 5.0)
	command := Command{Surge: 0.5, Yaw: -0.5, Amplitude: 1}

	// WHEN
	clock, mode, err := controller.Step(command, PhaseClock{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, waveform.ModeSine, mode)
	assert.Equal(t, 20.0, clock.Port)
	assert.Equal(t, 0.0, clock.Starboard)
}

func TestController_Step_PositiveSwayAttenuatesStarboardAmplitude(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, limiter := createController(output, nil, nil, 1000.0)
	command := Command{Surge: 1, Sway: 0.5, Amplitude: 1}

	// WHEN
	_, mode, err := controller.Step(command, PhaseClock{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, waveform.ModeSine, mode)

	portAngle := limiter.Last(SidePort, 0)
	starboardAngle := limiter.Last(SideStarboard, 0)
	assert.Greater(t, portAngle, 0.0)
	assert.InDelta(t, portAngle*0.5, starboardAngle, 1e-9)
}

func TestController_Step_NegativeSwayScalesPortAmplitude(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, limiter := createController(output, nil, nil, 1000.0)
	command := Command{Surge: 1, Sway: -0.5, Amplitude: 1}

	// WHEN
	_, _, err := controller.Step(command, PhaseClock{})

	// THEN
	assert.NoError(t, err)

	portAngle := limiter.Last(SidePort, 0)
	starboardAngle := limiter.Last(SideStarboard, 0)
	assert.Greater(t, starboardAngle, 0.0)
	assert.InDelta(t, starboardAngle*1.5, portAngle, 1e-9)
}

func TestController_Step_ClockIncrementsNeverExceedBound(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, _ := createController(output, nil, nil, 5.0)
	commands := []Command{
		{Surge: 3, Yaw: 2, Amplitude: 1},
		{Surge: -3, Amplitude: 1},
		{Surge: 1, Yaw: -1, Amplitude: 1},
		{Sway: 5, Amplitude: 1},
		{Sway: -5, Amplitude: 1},
		{Surge: 100, Yaw: -100, Sway: 100, Amplitude: 1},
	}

	clock := PhaseClock{}
	for _, command := range commands {
		// WHEN
		next, _, err := controller.Step(command, clock)
		assert.NoError(t, err)

		// THEN
		// clock resets aside, no single increment may exceed the bound
		portDelta := math.Abs(next.Port - clock.Port)
		starboardDelta := math.Abs(next.Starboard - clock.Starboard)
		if next.Port != 0 {
			assert.LessOrEqual(t, portDelta, testMaxTimeIncrement)
		}
		if next.Starboard != 0 {
			assert.LessOrEqual(t, starboardDelta, testMaxTimeIncrement)
		}
		clock = next
	}
}

func TestController_Step_DeadbandBoundary(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	controller, _ := createController(output, nil, nil, 5.0)

	// WHEN
	_, modeInside, err := controller.Step(Command{Surge: 0.05, Yaw: 0.05, Amplitude: 1}, PhaseClock{})
	assert.NoError(t, err)
	_, modeOutside, err := controller.Step(Command{Surge: 0.06, Amplitude: 1}, PhaseClock{})
	assert.NoError(t, err)

	// THEN
	assert.Equal(t, waveform.ModeFlat, modeInside)
	assert.Equal(t, waveform.ModeSine, modeOutside)
}

func TestController_Step_WriteErrorStillAdvancesTheClock(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	output.FailChannel = 0
	controller, _ := createController(output, nil, nil, 5.0)
	command := Command{Surge: 1, Amplitude: 1}

	// WHEN
	clock, mode, err := controller.Step(command, PhaseClock{})

	// THEN
	assert.EqualError(t, err, "write failed on channel 0")
	assert.Equal(t, waveform.ModeSine, mode)
	assert.Equal(t, 20.0, clock.Port)
	assert.Equal(t, 20.0, clock.Starboard)
}

func TestController_ApplyNeutral_WalksRaysTowardNeutral(t *testing.T) {
	// GIVEN
	output := NewMockPwmOutput()
	neutralsPort := []float64{12, 0, 0, 0, 0}
	controller, limiter := createController(output, neutralsPort, nil, 5.0)

	// WHEN
	assert.NoError(t, controller.ApplyNeutral())

	// THEN
	assert.Equal(t, 5.0, limiter.Last(SidePort, 0))

	// WHEN
	assert.NoError(t, controller.ApplyNeutral())
	assert.NoError(t, controller.ApplyNeutral())

	// THEN
	assert.Equal(t, 12.0, limiter.Last(SidePort, 0))
	assert.Len(t, output.Pulses, 2*testRaysPerSide)
}

func TestController_Step_RateLimitHoldsAcrossTicks(t *testing.T) {
	// GIVEN
	maxAngleDelta := 5.0
	output := NewMockPwmOutput()
	controller, limiter := createController(output, nil, nil, maxAngleDelta)

	previous := make(map[Side][]float64)
	previous[SidePort] = make([]float64, testRaysPerSide)
	previous[SideStarboard] = make([]float64, testRaysPerSide)

	clock := PhaseClock{}
	commands := []Command{
		{Surge: 1, Amplitude: 1},
		{Surge: 1, Yaw: 1, Amplitude: 1},
		{Sway: 1, Amplitude: 1},
		{Surge: -1, Amplitude: 1},
		{Sway: -1, Amplitude: 1},
		{Surge: 1, Sway: 0.8, Amplitude: 1},
	}

	for _, command := range commands {
		// WHEN
		next, _, err := controller.Step(command, clock)
		assert.NoError(t, err)
		clock = next

		// THEN
		for _, side := range []Side{SidePort, SideStarboard} {
			for ray := 0; ray < testRaysPerSide; ray++ {
				current := limiter.Last(side, ray)
				delta := math.Abs(current - previous[side][ray])
				assert.LessOrEqual(t, delta, maxAngleDelta,
					"side %s ray %d", side, ray)
				previous[side][ray] = current
			}
		}
	}
}
