package command

import (
	"github.com/markusressel/fin2go/internal/configuration"
	"github.com/markusressel/fin2go/internal/gait"
)

// StaticSource always returns the command from its configuration.
// Useful for bench runs and as the inner source of a shape source.
type StaticSource struct {
	Config configuration.CommandSourceConfig `json:"configuration"`
}

func (source StaticSource) GetId() string {
	return source.Config.ID
}

func (source StaticSource) GetConfig() configuration.CommandSourceConfig {
	return source.Config
}

func (source StaticSource) Get() (gait.Command, error) {
	static := source.Config.Static
	return gait.Command{
		Surge:     static.Surge,
		Sway:      static.Sway,
		Pitch:     static.Pitch,
		Yaw:       static.Yaw,
		Amplitude: static.Amplitude,
	}, nil
}
