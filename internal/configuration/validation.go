package configuration

import (
	"fmt"
	"strings"

	"github.com/looplab/tarjan"
	"github.com/markusressel/fin2go/internal/ui"
	"github.com/markusressel/fin2go/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateTiming(config)
	if err != nil {
		return err
	}
	err = validateGait(config)
	if err != nil {
		return err
	}
	err = validateServos(config)
	if err != nil {
		return err
	}
	err = validateOutput(config)
	if err != nil {
		return err
	}
	err = validateCommandSources(config)
	if err != nil {
		return err
	}

	if config.Output.Cmd != nil {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func validateTiming(config *Configuration) error {
	if config.TickRate <= 0 {
		return fmt.Errorf("tickRate must be > 0")
	}
	if config.SettleTicks < 0 {
		return fmt.Errorf("settleTicks must be >= 0")
	}
	if config.SettleDelay < 0 {
		return fmt.Errorf("settleDelay must be >= 0")
	}
	return nil
}

func validateGait(config *Configuration) error {
	gaitConfig := config.Gait
	if gaitConfig.MaxTimeIncrement <= 0 {
		return fmt.Errorf("gait: maxTimeIncrement must be > 0")
	}
	if gaitConfig.MaxAngleDelta <= 0 {
		return fmt.Errorf("gait: maxAngleDelta must be > 0")
	}
	if gaitConfig.Wavelength <= 0 {
		return fmt.Errorf("gait: wavelength must be > 0")
	}
	if gaitConfig.SettleWavelength <= 0 {
		return fmt.Errorf("gait: settleWavelength must be > 0")
	}
	if gaitConfig.MaxDeflection <= 0 || gaitConfig.MaxDeflection > 90 {
		return fmt.Errorf("gait: maxDeflection must be within (0, 90]")
	}
	return nil
}

func validateServos(config *Configuration) error {
	servoConfig := config.Servos
	if servoConfig.CountPerSide < 1 {
		return fmt.Errorf("servos: countPerSide must be >= 1")
	}
	if servoConfig.MinPulse < 0 {
		return fmt.Errorf("servos: minPulse must be >= 0")
	}
	if servoConfig.MinPulse >= servoConfig.MaxPulse {
		return fmt.Errorf("servos: minPulse must be smaller than maxPulse")
	}

	err := validateNeutrals("port", servoConfig.Neutrals.Port, servoConfig.CountPerSide)
	if err != nil {
		return err
	}
	return validateNeutrals("starboard", servoConfig.Neutrals.Starboard, servoConfig.CountPerSide)
}

func validateNeutrals(side string, neutrals []float64, countPerSide int) error {
	if len(neutrals) == 0 {
		// all neutrals default to zero
		return nil
	}
	if len(neutrals) != countPerSide {
		return fmt.Errorf("servos: %s neutrals must have countPerSide (%d) entries, got %d", side, countPerSide, len(neutrals))
	}
	for i, neutral := range neutrals {
		if neutral < -90 || neutral > 90 {
			return fmt.Errorf("servos: %s neutral %d is outside [-90, 90]", side, i)
		}
	}
	return nil
}

func validateOutput(config *Configuration) error {
	outputConfig := config.Output

	subConfigs := 0
	if outputConfig.Pca9685 != nil {
		subConfigs++
	}
	if outputConfig.File != nil {
		subConfigs++
	}
	if outputConfig.Cmd != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("output: only one output type can be used")
	}
	if subConfigs <= 0 {
		return fmt.Errorf("output: sub-configuration for output is missing, use one of: pca9685 | file | cmd")
	}

	if outputConfig.Pca9685 != nil {
		if outputConfig.Pca9685.Address > 0x7F {
			return fmt.Errorf("output: i2c address %s is not a valid 7-bit address", outputConfig.Pca9685.Address)
		}
		if outputConfig.Pca9685.Frequency < 0 {
			return fmt.Errorf("output: pwm frequency must be >= 0")
		}
	}

	if outputConfig.File != nil {
		if len(outputConfig.File.Path) <= 0 {
			return fmt.Errorf("output: no file path provided")
		}
	}

	if outputConfig.Cmd != nil {
		if len(outputConfig.Cmd.Exec) <= 0 {
			return fmt.Errorf("output: cmd executable is missing")
		}
	}

	return nil
}

func validateCommandSources(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	for _, sourceConfig := range config.Command.Sources {
		if sourceIdCount(sourceConfig.ID, config) > 1 {
			return fmt.Errorf("duplicate command source id detected: %s", sourceConfig.ID)
		}

		subConfigs := 0
		if sourceConfig.Static != nil {
			subConfigs++
		}
		if sourceConfig.File != nil {
			subConfigs++
		}
		if sourceConfig.Serial != nil {
			subConfigs++
		}
		if sourceConfig.Api != nil {
			subConfigs++
		}
		if sourceConfig.Shape != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("command source %s: only one source type can be used per source definition block", sourceConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("command source %s: sub-configuration for source is missing, use one of: static | file | serial | api | shape", sourceConfig.ID)
		}

		if !isSourceConfigInUse(sourceConfig, config) {
			ui.Warning("Unused command source configuration: %s", sourceConfig.ID)
		}

		if sourceConfig.File != nil {
			if len(sourceConfig.File.Path) <= 0 {
				return fmt.Errorf("command source %s: no file path provided", sourceConfig.ID)
			}
		}

		if sourceConfig.Serial != nil {
			if len(sourceConfig.Serial.Port) <= 0 {
				return fmt.Errorf("command source %s: no serial port provided", sourceConfig.ID)
			}
			if sourceConfig.Serial.BaudRate < 0 {
				return fmt.Errorf("command source %s: baud rate must be >= 0", sourceConfig.ID)
			}
		}

		if sourceConfig.Shape != nil {
			shapeConfig := sourceConfig.Shape
			if len(shapeConfig.Source) <= 0 {
				return fmt.Errorf("command source %s: missing source id", sourceConfig.ID)
			}
			if shapeConfig.Source == sourceConfig.ID {
				return fmt.Errorf("command source %s: a shape source cannot reference itself", sourceConfig.ID)
			}
			if !sourceIdExists(shapeConfig.Source, config) {
				return fmt.Errorf("command source %s: no source definition with id '%s' found", sourceConfig.ID, shapeConfig.Source)
			}

			supportedAxes := []string{AxisSurge, AxisSway, AxisPitch, AxisYaw, AxisAmplitude}
			for axis, axisConfig := range shapeConfig.Axes {
				if !slices.Contains(supportedAxes, axis) {
					return fmt.Errorf("command source %s: unsupported axis '%s', use one of: %s", sourceConfig.ID, axis, strings.Join(supportedAxes, " | "))
				}
				if axisConfig.Expo < 0 || axisConfig.Expo > 1 {
					return fmt.Errorf("command source %s: axis %s: expo must be within [0, 1]", sourceConfig.ID, axis)
				}
			}

			graph[sourceConfig.ID] = []interface{}{shapeConfig.Source}
		}
	}

	if len(config.Command.Active) <= 0 {
		return fmt.Errorf("command: no active source configured")
	}
	if !sourceIdExists(config.Command.Active, config) {
		return fmt.Errorf("command: no source definition with id '%s' found", config.Command.Active)
	}

	return validateNoLoops(graph)
}

func sourceIdExists(sourceId string, config *Configuration) bool {
	for _, source := range config.Command.Sources {
		if source.ID == sourceId {
			return true
		}
	}

	return false
}

func sourceIdCount(sourceId string, config *Configuration) int {
	count := 0
	for _, source := range config.Command.Sources {
		if source.ID == sourceId {
			count++
		}
	}

	return count
}

func isSourceConfigInUse(config CommandSourceConfig, configuration *Configuration) bool {
	if configuration.Command.Active == config.ID {
		return true
	}

	for _, sourceConfig := range configuration.Command.Sources {
		if sourceConfig.Shape != nil && sourceConfig.Shape.Source == config.ID {
			return true
		}
	}

	return false
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("you have created a command source dependency cycle: %v", items)
		}
	}
	return nil
}
