package command

import (
	"fmt"

	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/util"
)

// ShapeSource reshapes the commands of another source axis by axis.
// Each configured axis is transformed in this order:
//
//	invert -> scale -> expo -> trim
//
// and finally coerced into [-1, 1]. Axes without a shape entry pass
// through untouched.
type ShapeSource struct {
	Config configuration.CommandSourceConfig `json:"configuration"`
}

func (source ShapeSource) GetId() string {
	return source.Config.ID
}

func (source ShapeSource) GetConfig() configuration.CommandSourceConfig {
	return source.Config
}

func (source ShapeSource) Get() (gait.Command, error) {
	inner, exists := SourceMap.Get(source.Config.Shape.Source)
	if !exists {
		return gait.Command{}, fmt.Errorf("command source %s: source '%s' not found", source.GetId(), source.Config.Shape.Source)
	}

	command, err := inner.Get()
	if err != nil {
		return gait.Command{}, err
	}

	command.Surge = source.shapeAxis(configuration.AxisSurge, command.Surge)
	command.Sway = source.shapeAxis(configuration.AxisSway, command.Sway)
	command.Pitch = source.shapeAxis(configuration.AxisPitch, command.Pitch)
	command.Yaw = source.shapeAxis(configuration.AxisYaw, command.Yaw)
	command.Amplitude = source.shapeAxis(configuration.AxisAmplitude, command.Amplitude)

	return command, nil
}

func (source ShapeSource) shapeAxis(axis string, value float64) float64 {
	shape, ok := source.Config.Shape.Axes[axis]
	if !ok {
		return value
	}

	if shape.Invert {
		value = -value
	}

	scale := 1.0
	if shape.Scale != nil {
		scale = *shape.Scale
	}
	value *= scale

	// expo bends the axis toward x^3 while preserving the endpoints
	value = (1-shape.Expo)*value + shape.Expo*value*value*value

	value += shape.Trim

	return util.Coerce(value, -1, 1)
}
