package configuration

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return Configuration{
		DbPath:      "/tmp/fin2go.db",
		TickRate:    20 * time.Millisecond,
		SettleTicks: 30,
		SettleDelay: 100 * time.Millisecond,
		Gait: GaitConfig{
			MaxTimeIncrement: 20.0,
			MaxAngleDelta:    5.0,
			Wavelength:       480.0,
			SettleWavelength: 240.0,
			MaxDeflection:    40.0,
		},
		Servos: ServoConfig{
			CountPerSide: 5,
			MinPulse:     150,
			MaxPulse:     600,
			Neutrals: NeutralConfig{
				Port:      []float64{0, 0, 0, 0, 0},
				Starboard: []float64{0, 0, 0, 0, 0},
			},
		},
		Output: OutputConfig{
			File: &FileOutputConfig{
				Path: "/tmp/fin2go",
			},
		},
		Command: CommandConfig{
			Active: "bench",
			Sources: []CommandSourceConfig{
				{
					ID: "bench",
					Static: &StaticSourceConfig{
						Surge:     0.5,
						Amplitude: 1.0,
					},
				},
			},
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateDuplicateSourceId(t *testing.T) {
	// GIVEN
	sourceId := "remote"
	config := createValidConfig()
	config.Command.Active = sourceId
	config.Command.Sources = []CommandSourceConfig{
		{
			ID:     sourceId,
			Static: &StaticSourceConfig{},
		},
		{
			ID:     sourceId,
			Static: &StaticSourceConfig{},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, fmt.Sprintf("duplicate command source id detected: %s", sourceId))
}

func TestValidateSourceSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Sources = []CommandSourceConfig{
		{
			ID: "bench",
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "command source bench: sub-configuration for source is missing, use one of: static | file | serial | api | shape")
}

func TestValidateSourceMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Sources = []CommandSourceConfig{
		{
			ID:     "bench",
			Static: &StaticSourceConfig{},
			File: &FileSourceConfig{
				Path: "/tmp/command.json",
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "command source bench: only one source type can be used per source definition block")
}

func TestValidateShapeSourceReferencesItself(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Active = "shaped"
	config.Command.Sources = append(config.Command.Sources, CommandSourceConfig{
		ID: "shaped",
		Shape: &ShapeSourceConfig{
			Source: "shaped",
		},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "command source shaped: a shape source cannot reference itself")
}

func TestValidateShapeSourceUnknownReference(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Active = "shaped"
	config.Command.Sources = append(config.Command.Sources, CommandSourceConfig{
		ID: "shaped",
		Shape: &ShapeSourceConfig{
			Source: "missing",
		},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "command source shaped: no source definition with id 'missing' found")
}

func TestValidateShapeSourceCycle(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Active = "a"
	config.Command.Sources = append(config.Command.Sources,
		CommandSourceConfig{
			ID: "a",
			Shape: &ShapeSourceConfig{
				Source: "b",
			},
		},
		CommandSourceConfig{
			ID: "b",
			Shape: &ShapeSourceConfig{
				Source: "a",
			},
		},
	)

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "command source dependency cycle")
}

func TestValidateShapeSourceUnsupportedAxis(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Active = "shaped"
	config.Command.Sources = append(config.Command.Sources, CommandSourceConfig{
		ID: "shaped",
		Shape: &ShapeSourceConfig{
			Source: "bench",
			Axes: map[string]AxisShapeConfig{
				"roll": {},
			},
		},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "command source shaped: unsupported axis 'roll', use one of: surge | sway | pitch | yaw | amplitude")
}

func TestValidateShapeSourceExpoOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Active = "shaped"
	config.Command.Sources = append(config.Command.Sources, CommandSourceConfig{
		ID: "shaped",
		Shape: &ShapeSourceConfig{
			Source: "bench",
			Axes: map[string]AxisShapeConfig{
				AxisYaw: {
					Expo: 1.5,
				},
			},
		},
	})

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "command source shaped: axis yaw: expo must be within [0, 1]")
}

func TestValidateActiveSourceMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Active = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "command: no active source configured")
}

func TestValidateActiveSourceUnknown(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Command.Active = "missing"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "command: no source definition with id 'missing' found")
}

func TestValidateOutputSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Output = OutputConfig{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output: sub-configuration for output is missing, use one of: pca9685 | file | cmd")
}

func TestValidateOutputMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Output = OutputConfig{
		Pca9685: &Pca9685OutputConfig{},
		File: &FileOutputConfig{
			Path: "/tmp/fin2go",
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output: only one output type can be used")
}

func TestValidateOutputInvalidI2cAddress(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Output = OutputConfig{
		Pca9685: &Pca9685OutputConfig{
			Address: 0x90,
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "output: i2c address 0x90 is not a valid 7-bit address")
}

func TestValidateServoNeutralsLengthMismatch(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Servos.Neutrals.Port = []float64{0, 0}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "servos: port neutrals must have countPerSide (5) entries, got 2")
}

func TestValidateServoNeutralOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Servos.Neutrals.Starboard = []float64{0, 0, 120, 0, 0}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "servos: starboard neutral 2 is outside [-90, 90]")
}

func TestValidateServoPulseRangeInverted(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Servos.MinPulse = 600
	config.Servos.MaxPulse = 150

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "servos: minPulse must be smaller than maxPulse")
}

func TestValidateGaitInvalidMaxTimeIncrement(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Gait.MaxTimeIncrement = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "gait: maxTimeIncrement must be > 0")
}

func TestValidateGaitInvalidMaxAngleDelta(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Gait.MaxAngleDelta = -1

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "gait: maxAngleDelta must be > 0")
}

func TestValidateGaitInvalidMaxDeflection(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Gait.MaxDeflection = 135

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "gait: maxDeflection must be within (0, 90]")
}
